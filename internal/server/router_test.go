package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/FACorreiaa/wanderai/internal/app/domain/llmchat"
	"github.com/FACorreiaa/wanderai/internal/app/domain/trips"
	"github.com/FACorreiaa/wanderai/internal/app/domain/weather"
	"github.com/FACorreiaa/wanderai/internal/app/models"
	"github.com/FACorreiaa/wanderai/internal/pkg/config"
	"github.com/FACorreiaa/wanderai/internal/routes"
)

type failingWeather struct{}

func (failingWeather) Fetch(context.Context, string) (*models.WeatherSnapshot, error) {
	return nil, &models.ProviderError{Provider: "openweather", Status: http.StatusNotFound, Message: "city not found"}
}

func (failingWeather) Watch(context.Context, string, time.Duration) (*weather.Watcher, error) {
	return nil, models.ErrBadRequest
}

func testHandlers(t *testing.T) *routes.AppHandlers {
	t.Helper()
	log := zap.NewNop()
	return &routes.AppHandlers{
		Weather: weather.NewHandler(failingWeather{}, time.Minute, log),
		AI:      llmchat.NewHandler(llmchat.NewService(nil, log), log),
		Trips:   trips.NewHandler(trips.NewService(trips.NewStore(trips.NewMemoryKV(), log), log), log),
	}
}

func TestSetupRouter_MiddlewareChain(t *testing.T) {
	cfg := &config.Config{AllowedOrigins: []string{"https://wander.app"}}
	cfg.Observability.ServiceName = "wanderai-test"
	r := SetupRouter(cfg, testHandlers(t), zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "https://wander.app")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "https://wander.app", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
}

func TestSetupRouter_ProviderErrorMapsTo502(t *testing.T) {
	cfg := &config.Config{}
	r := SetupRouter(cfg, testHandlers(t), zap.NewNop())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/weather?city=Atlantis", nil))

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.JSONEq(t, `{"error":"city not found"}`, w.Body.String())
}

func TestSetupRouter_BadRequestBeforeProvider(t *testing.T) {
	r := SetupRouter(&config.Config{}, testHandlers(t), zap.NewNop())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/destinations/facts", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestServer_MemoryStoreSkipsDatabase(t *testing.T) {
	cfg := &config.Config{ServerPort: "0"}
	cfg.Repositories.TripsStore = config.TripsStoreMemory

	srv, err := New(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	defer srv.Close()

	assert.Nil(t, srv.GetDBPool())
	httpSrv := srv.HTTPServer()
	assert.Equal(t, ":0", httpSrv.Addr)
	assert.Zero(t, httpSrv.WriteTimeout)
}
