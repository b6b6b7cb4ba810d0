package trips

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/FACorreiaa/wanderai/internal/app/handlers"
	"github.com/FACorreiaa/wanderai/internal/app/models"
)

type Handler struct {
	*handlers.BaseHandler
	service *Service
}

func NewHandler(service *Service, logger *zap.Logger) *Handler {
	return &Handler{
		BaseHandler: handlers.NewBaseHandler(logger),
		service:     service,
	}
}

// ListTrips handles GET /api/trips.
func (h *Handler) ListTrips(c *gin.Context) {
	list, err := h.service.List(c.Request.Context())
	if err != nil {
		h.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// GetTrip handles GET /api/trips/:id.
func (h *Handler) GetTrip(c *gin.Context) {
	trip, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, trip)
}

// SaveTrip handles POST /api/trips.
func (h *Handler) SaveTrip(c *gin.Context) {
	var req models.SaveTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "itinerary is required")
		return
	}

	trip, err := h.service.Save(c.Request.Context(), req.Itinerary, req.Image)
	if err != nil {
		h.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, trip)
}

// DeleteTrip handles DELETE /api/trips/:id.
func (h *Handler) DeleteTrip(c *gin.Context) {
	if err := h.service.Remove(c.Request.Context(), c.Param("id")); err != nil {
		h.RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
