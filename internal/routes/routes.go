package routes

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/FACorreiaa/wanderai/internal/app/domain/llmchat"
	"github.com/FACorreiaa/wanderai/internal/app/domain/trips"
	"github.com/FACorreiaa/wanderai/internal/app/domain/weather"
	"github.com/FACorreiaa/wanderai/internal/pkg/config"
)

type AppHandlers struct {
	Weather *weather.Handler
	AI      *llmchat.Handler
	Trips   *trips.Handler
}

// NewAppHandlers wires providers, services and handlers. dbPool may be nil,
// in which case saved trips are kept in memory.
func NewAppHandlers(ctx context.Context, cfg *config.Config, dbPool *pgxpool.Pool, log *zap.Logger) (*AppHandlers, error) {
	loc, err := cfg.Weather.DisplayLocation()
	if err != nil {
		return nil, fmt.Errorf("invalid WEATHER_DISPLAY_TZ: %w", err)
	}
	weatherClient := weather.NewOpenWeatherClient(cfg.Weather.APIKey, cfg.Weather.BaseURL, log,
		weather.WithRateLimit(cfg.Weather.RateLimitRPS, cfg.Weather.RateLimitBurst))
	weatherService := weather.NewService(weatherClient, loc, log)

	llmClient, err := llmchat.NewLLMClient(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create AI client: %w", err)
	}
	aiService := llmchat.NewService(llmClient, log)

	var kv trips.KVStore = trips.NewMemoryKV()
	if dbPool != nil {
		kv = trips.NewPostgresKV(dbPool, log)
	}
	tripService := trips.NewService(trips.NewStore(kv, log), log)

	return &AppHandlers{
		Weather: weather.NewHandler(weatherService, cfg.Weather.RefreshInterval, log),
		AI:      llmchat.NewHandler(aiService, log),
		Trips:   trips.NewHandler(tripService, log),
	}, nil
}

func Setup(r *gin.Engine, h *AppHandlers) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")

	weatherGroup := api.Group("/weather")
	{
		weatherGroup.GET("", h.Weather.GetWeather)
		weatherGroup.GET("/stream", h.Weather.StreamWeather)
	}

	api.POST("/itineraries", h.AI.GenerateItinerary)

	chatGroup := api.Group("/chat")
	{
		chatGroup.POST("", h.AI.Chat)
		chatGroup.GET("/greeting", h.AI.Greeting)
	}

	placesGroup := api.Group("/places")
	{
		placesGroup.GET("", h.AI.ListPlaces)
		placesGroup.GET("/details", h.AI.GetPlaceDetails)
	}

	api.GET("/destinations/facts", h.AI.QuickFacts)

	tripsGroup := api.Group("/trips")
	{
		tripsGroup.GET("", h.Trips.ListTrips)
		tripsGroup.GET("/:id", h.Trips.GetTrip)
		tripsGroup.POST("", h.Trips.SaveTrip)
		tripsGroup.DELETE("/:id", h.Trips.DeleteTrip)
	}
}
