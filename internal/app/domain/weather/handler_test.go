package weather

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/FACorreiaa/wanderai/internal/app/models"
)

type MockWeatherService struct {
	mock.Mock
}

func (m *MockWeatherService) Fetch(ctx context.Context, city string) (*models.WeatherSnapshot, error) {
	args := m.Called(ctx, city)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.WeatherSnapshot), args.Error(1)
}

func (m *MockWeatherService) Watch(ctx context.Context, city string, interval time.Duration) (*Watcher, error) {
	args := m.Called(ctx, city, interval)
	if rf, ok := args.Get(0).(func(context.Context, string, time.Duration) *Watcher); ok {
		return rf(ctx, city, interval), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Watcher), args.Error(1)
}

// closeNotifyingRecorder lets gin's Stream run against a recorder.
type closeNotifyingRecorder struct {
	*httptest.ResponseRecorder
	closed chan bool
}

func (r *closeNotifyingRecorder) CloseNotify() <-chan bool {
	return r.closed
}

func newWeatherRouter(svc WeatherService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(svc, time.Hour, zap.NewNop())
	r := gin.New()
	r.GET("/api/weather", h.GetWeather)
	r.GET("/api/weather/stream", h.StreamWeather)
	return r
}

func TestHandler_GetWeather(t *testing.T) {
	snapshot := &models.WeatherSnapshot{
		Current: models.CurrentWeather{
			City:      "Lisbon",
			Temp:      18,
			WindDeg:   90,
			Condition: "Clear",
			Icon:      "01d",
			Sunrise:   1709274000,
		},
		Forecast: []models.DailyForecast{{DateKey: "2024-03-01", Temp: 19}},
	}

	tests := []struct {
		name       string
		query      string
		setupMock  func(*MockWeatherService)
		wantStatus int
		wantBody   string
	}{
		{
			name:  "Success",
			query: "?city=Lisbon",
			setupMock: func(m *MockWeatherService) {
				m.On("Fetch", mock.Anything, "Lisbon").Return(snapshot, nil).Once()
			},
			wantStatus: http.StatusOK,
			wantBody:   `"windDirection":"E"`,
		},
		{
			name:  "Unknown city",
			query: "?city=Atlantis",
			setupMock: func(m *MockWeatherService) {
				m.On("Fetch", mock.Anything, "Atlantis").
					Return(nil, &models.ProviderError{Provider: "openweather", Status: 404, Message: "city not found"}).Once()
			},
			wantStatus: http.StatusBadGateway,
			wantBody:   `{"error":"city not found"}`,
		},
		{
			name:  "Missing city",
			query: "",
			setupMock: func(m *MockWeatherService) {
				m.On("Fetch", mock.Anything, "").Return(nil, models.ErrBadRequest).Once()
			},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := new(MockWeatherService)
			tc.setupMock(svc)
			r := newWeatherRouter(svc)

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/api/weather"+tc.query, nil)
			r.ServeHTTP(w, req)

			assert.Equal(t, tc.wantStatus, w.Code)
			if tc.wantBody != "" {
				assert.Contains(t, w.Body.String(), tc.wantBody)
			}
			svc.AssertExpectations(t)
		})
	}
}

func TestHandler_GetWeather_ResponseShape(t *testing.T) {
	svc := new(MockWeatherService)
	svc.On("Fetch", mock.Anything, "Lisbon").Return(&models.WeatherSnapshot{
		Current: models.CurrentWeather{City: "Lisbon", Condition: "Rain", Icon: "10d"},
	}, nil)
	r := newWeatherRouter(svc)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/weather?city=Lisbon", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Contains(t, body, "current")
	assert.Contains(t, body, "forecast")
	assert.Contains(t, body, "fetchedAt")
	display := body["display"].(map[string]any)
	assert.Equal(t, "https://openweathermap.org/img/wn/10d@2x.png", display["iconUrl"])
}

func TestHandler_StreamWeather(t *testing.T) {
	fetcher := fetchFunc(func(ctx context.Context, city string) (*models.WeatherSnapshot, error) {
		return &models.WeatherSnapshot{Current: models.CurrentWeather{City: city}}, nil
	})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	svc := new(MockWeatherService)
	svc.On("Watch", mock.Anything, "Lisbon", time.Hour).
		Return(func(ctx context.Context, city string, interval time.Duration) *Watcher {
			w := NewWatcher(fetcher, city, interval, zap.NewNop())
			require.NoError(t, w.Start(ctx))
			// Close the stream once the first event has been written.
			go func() {
				time.Sleep(200 * time.Millisecond)
				w.Stop()
			}()
			return w
		}, nil).Once()
	r := newWeatherRouter(svc)

	w := &closeNotifyingRecorder{ResponseRecorder: httptest.NewRecorder(), closed: make(chan bool, 1)}
	req := httptest.NewRequest(http.MethodGet, "/api/weather/stream?city=Lisbon", nil).WithContext(ctx)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.True(t, strings.Contains(body, "event:weather"), body)
	assert.Contains(t, body, `"city":"Lisbon"`)
}

func TestHandler_StreamWeather_BadCity(t *testing.T) {
	svc := new(MockWeatherService)
	svc.On("Watch", mock.Anything, "", time.Hour).Return(nil, models.ErrBadRequest).Once()
	r := newWeatherRouter(svc)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/weather/stream", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
