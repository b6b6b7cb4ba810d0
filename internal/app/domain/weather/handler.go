package weather

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/FACorreiaa/wanderai/internal/app/handlers"
	"github.com/FACorreiaa/wanderai/internal/app/models"
)

// WeatherService is what the HTTP layer needs from Service.
type WeatherService interface {
	Fetch(ctx context.Context, city string) (*models.WeatherSnapshot, error)
	Watch(ctx context.Context, city string, interval time.Duration) (*Watcher, error)
}

type Handler struct {
	*handlers.BaseHandler
	service  WeatherService
	interval time.Duration
}

func NewHandler(service WeatherService, interval time.Duration, logger *zap.Logger) *Handler {
	return &Handler{
		BaseHandler: handlers.NewBaseHandler(logger),
		service:     service,
		interval:    interval,
	}
}

type currentDisplay struct {
	WindDirection string `json:"windDirection"`
	IconURL       string `json:"iconUrl"`
	Emoji         string `json:"emoji"`
	Sunrise       string `json:"sunrise"`
	Sunset        string `json:"sunset"`
}

type snapshotResponse struct {
	*models.WeatherSnapshot
	Display currentDisplay `json:"display"`
}

func newSnapshotResponse(s *models.WeatherSnapshot) snapshotResponse {
	cur := s.Current
	return snapshotResponse{
		WeatherSnapshot: s,
		Display: currentDisplay{
			WindDirection: WindDirection(cur.WindDeg),
			IconURL:       IconURL(cur.Icon),
			Emoji:         ConditionEmoji(cur.Condition),
			Sunrise:       FormatLocalTime(cur.Sunrise, cur.Timezone),
			Sunset:        FormatLocalTime(cur.Sunset, cur.Timezone),
		},
	}
}

// GetWeather handles GET /api/weather?city=.
func (h *Handler) GetWeather(c *gin.Context) {
	snapshot, err := h.service.Fetch(c.Request.Context(), c.Query("city"))
	if err != nil {
		h.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newSnapshotResponse(snapshot))
}

// StreamWeather handles GET /api/weather/stream?city= as server-sent events.
// A "weather" event is sent per refresh, an "error" event when one fails. The
// watcher lives as long as the client connection.
func (h *Handler) StreamWeather(c *gin.Context) {
	city := c.Query("city")
	watcher, err := h.service.Watch(c.Request.Context(), city, h.interval)
	if err != nil {
		h.RespondError(c, err)
		return
	}
	defer watcher.Stop()

	h.Logger.Info("Weather stream opened", zap.String("city", city))
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	c.Stream(func(w io.Writer) bool {
		upd, ok := <-watcher.Updates()
		if !ok {
			return false
		}
		if upd.Err != nil {
			c.SSEvent("error", gin.H{"error": handlers.MessageFor(upd.Err)})
			return true
		}
		c.SSEvent("weather", newSnapshotResponse(upd.Snapshot))
		return true
	})
	h.Logger.Info("Weather stream closed", zap.String("city", city))
}
