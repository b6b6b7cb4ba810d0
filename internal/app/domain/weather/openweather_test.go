package weather

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sony/gobreaker"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/FACorreiaa/wanderai/internal/app/models"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *OpenWeatherClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewOpenWeatherClient("test-key", srv.URL, zap.NewNop(), WithHTTPClient(srv.Client()))
}

func TestOpenWeatherClient_Current(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/weather", r.URL.Path)
		assert.Equal(t, "Lisbon", r.URL.Query().Get("q"))
		assert.Equal(t, "test-key", r.URL.Query().Get("appid"))
		assert.Equal(t, "metric", r.URL.Query().Get("units"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(currentPayload))
	})

	got, err := client.Current(context.Background(), "Lisbon")

	require.NoError(t, err)
	assert.Equal(t, "Lisbon", got.Name)
	assert.Equal(t, 17.6, got.Main.Temp)
	require.NotNil(t, got.Visibility)
	assert.Equal(t, 8000, *got.Visibility)
}

func TestOpenWeatherClient_Forecast(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/forecast", r.URL.Path)
		assert.Equal(t, "40", r.URL.Query().Get("cnt"))
		_, _ = w.Write([]byte(`{"list":[{"dt":1,"main":{"temp":3.5},"weather":[{"main":"Snow"}],"pop":0.9}],"city":{"name":"Oslo","country":"NO"}}`))
	})

	got, err := client.Forecast(context.Background(), "Oslo")

	require.NoError(t, err)
	require.Len(t, got.List, 1)
	assert.Equal(t, "Oslo", got.City.Name)
	assert.Equal(t, 0.9, got.List[0].Pop)
}

func TestOpenWeatherClient_Errors(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantStatus  int
		wantMessage string
	}{
		{
			name:        "unknown city uses provider message",
			status:      http.StatusNotFound,
			body:        `{"cod":"404","message":"city not found"}`,
			wantStatus:  http.StatusNotFound,
			wantMessage: "city not found",
		},
		{
			name:        "bad key",
			status:      http.StatusUnauthorized,
			body:        `{"cod":401,"message":"Invalid API key."}`,
			wantStatus:  http.StatusUnauthorized,
			wantMessage: "Invalid API key.",
		},
		{
			name:        "server error without body",
			status:      http.StatusInternalServerError,
			body:        ``,
			wantStatus:  http.StatusInternalServerError,
			wantMessage: "Could not fetch weather data.",
		},
		{
			name:        "malformed success body",
			status:      http.StatusOK,
			body:        `{"name":`,
			wantStatus:  http.StatusOK,
			wantMessage: "Could not read weather data.",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			})

			_, err := client.Current(context.Background(), "Atlantis")

			require.Error(t, err)
			assert.True(t, errors.Is(err, models.ErrProvider))
			var pe *models.ProviderError
			require.True(t, errors.As(err, &pe))
			assert.Equal(t, tc.wantStatus, pe.Status)
			assert.Equal(t, tc.wantMessage, pe.Message)
		})
	}
}

func TestOpenWeatherClient_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()
	client := NewOpenWeatherClient("k", srv.URL, zap.NewNop())

	_, err := client.Current(context.Background(), "Lisbon")

	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrProvider)
}

func TestOpenWeatherClient_CancelledContext(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(currentPayload))
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Current(ctx, "Lisbon")

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestOpenWeatherClient_CallerTimeoutsDoNotTripBreaker(t *testing.T) {
	var slow atomic.Bool
	slow.Store(true)
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if slow.Load() {
			select {
			case <-r.Context().Done():
			case <-time.After(2 * time.Second):
			}
			return
		}
		_, _ = w.Write([]byte(currentPayload))
	})

	for i := 0; i < 6; i++ {
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		_, err := client.Current(ctx, "Lisbon")
		cancel()
		require.Error(t, err)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	}
	assert.Equal(t, gobreaker.StateClosed, client.breaker.State())

	slow.Store(false)
	got, err := client.Current(context.Background(), "Lisbon")
	require.NoError(t, err)
	assert.Equal(t, "Lisbon", got.Name)
}

func TestOpenWeatherClient_ServerErrorsTripBreaker(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	})

	for i := 0; i < 5; i++ {
		_, err := client.Current(context.Background(), "Lisbon")
		assert.ErrorIs(t, err, models.ErrProvider)
	}
	assert.Equal(t, gobreaker.StateOpen, client.breaker.State())

	_, err := client.Current(context.Background(), "Lisbon")
	assert.ErrorIs(t, err, models.ErrProvider)
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.EqualValues(t, 5, calls.Load())
}
