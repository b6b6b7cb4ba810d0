package llmchat

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/FACorreiaa/wanderai/internal/app/handlers"
	"github.com/FACorreiaa/wanderai/internal/app/models"
)

// AIService is what the HTTP layer needs from Service.
type AIService interface {
	GenerateItinerary(ctx context.Context, req models.ItineraryRequest) (*models.Itinerary, error)
	Chat(ctx context.Context, messages []models.ChatMessage, destination, country string) (string, error)
	GetPlaceDetails(ctx context.Context, name, category string) (*models.PlaceDetail, error)
	ListPlaces(ctx context.Context, category, region string) ([]models.PlaceSummary, error)
	QuickFacts(ctx context.Context, destination, country string) []string
}

var _ AIService = (*Service)(nil)

type Handler struct {
	*handlers.BaseHandler
	service AIService
}

func NewHandler(service AIService, logger *zap.Logger) *Handler {
	return &Handler{
		BaseHandler: handlers.NewBaseHandler(logger),
		service:     service,
	}
}

// GenerateItinerary handles POST /api/itineraries.
func (h *Handler) GenerateItinerary(c *gin.Context) {
	var req models.ItineraryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "destination and days are required")
		return
	}

	itinerary, err := h.service.GenerateItinerary(c.Request.Context(), req)
	if err != nil {
		h.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, itinerary)
}

type chatResponse struct {
	Reply    string               `json:"reply"`
	Messages []models.ChatMessage `json:"messages"`
	Fallback bool                 `json:"fallback"`
}

// Chat handles POST /api/chat. The client sends the whole log with the new
// user message last. A failed model call still answers 200 with the fallback
// reply appended, the way the chat panel shows it.
func (h *Handler) Chat(c *gin.Context) {
	var req models.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "destination and messages are required")
		return
	}
	if len(req.Messages) == 0 {
		h.BadRequest(c, "at least one message is required")
		return
	}
	last := req.Messages[len(req.Messages)-1]
	if last.Role != models.RoleUser || strings.TrimSpace(last.Content) == "" {
		h.BadRequest(c, "the last message must be a non-empty user message")
		return
	}
	for _, m := range req.Messages {
		if !m.Role.Valid() {
			h.BadRequest(c, "message roles must be user or assistant")
			return
		}
	}

	conv := ResumeConversation(req.Destination, req.Country, req.Messages[:len(req.Messages)-1])
	reply, err := conv.Send(c.Request.Context(), h.service, last.Content)
	if err != nil {
		if errors.Is(err, models.ErrBadRequest) {
			h.RespondError(c, err)
			return
		}
		h.Logger.Warn("Chat failed, answering with fallback",
			zap.String("destination", req.Destination),
			zap.Error(err))
	}

	c.JSON(http.StatusOK, chatResponse{
		Reply:    reply,
		Messages: conv.Messages(),
		Fallback: err != nil,
	})
}

// Greeting handles GET /api/chat/greeting and returns the opening log.
func (h *Handler) Greeting(c *gin.Context) {
	destination := c.Query("destination")
	if strings.TrimSpace(destination) == "" {
		h.BadRequest(c, "destination is required")
		return
	}
	conv := NewConversation(destination, c.Query("country"))
	c.JSON(http.StatusOK, gin.H{"messages": conv.Messages()})
}

// ListPlaces handles GET /api/places?category=&region=.
func (h *Handler) ListPlaces(c *gin.Context) {
	places, err := h.service.ListPlaces(c.Request.Context(), c.Query("category"), c.DefaultQuery("region", regionAll))
	if err != nil {
		h.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, places)
}

// GetPlaceDetails handles GET /api/places/details?name=&category=.
func (h *Handler) GetPlaceDetails(c *gin.Context) {
	detail, err := h.service.GetPlaceDetails(c.Request.Context(), c.Query("name"), c.Query("category"))
	if err != nil {
		h.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// QuickFacts handles GET /api/destinations/facts?destination=&country=.
func (h *Handler) QuickFacts(c *gin.Context) {
	destination := c.Query("destination")
	if strings.TrimSpace(destination) == "" {
		h.BadRequest(c, "destination is required")
		return
	}
	c.JSON(http.StatusOK, gin.H{"facts": h.service.QuickFacts(c.Request.Context(), destination, c.Query("country"))})
}
