package schedule

import (
	"errors"
	"net/http"
	"strconv"

	"photomarket/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes wires the public catalog listing and the
// photographer-only availability management endpoints.
func (h *Handler) RegisterRoutes(public, photographer *gin.RouterGroup) {
	public.GET("/schedule", h.ListCatalog)
	public.GET("/photographers/:id/availability", h.GetWeek)

	photographer.PUT("/photographer/availability", h.SetDay)
	photographer.GET("/photographer/availability", h.GetOwnWeek)
}

func (h *Handler) ListCatalog(c *gin.Context) {
	slots, err := h.service.ListCatalog(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load schedule catalog")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"intervals": slots})
}

func (h *Handler) SetDay(c *gin.Context) {
	photographerID := c.GetInt64("user_id")

	var req SetDayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	if err := h.service.SetDay(c.Request.Context(), photographerID, req); err != nil {
		switch {
		case errors.Is(err, ErrInvalidWeekday):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		case errors.Is(err, ErrUnknownInterval):
			response.Error(c, http.StatusBadRequest, "UNKNOWN_INTERVAL", err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update availability")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "availability updated"})
}

func (h *Handler) GetWeek(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid photographer ID")
		return
	}
	h.renderWeek(c, id)
}

func (h *Handler) GetOwnWeek(c *gin.Context) {
	h.renderWeek(c, c.GetInt64("user_id"))
}

func (h *Handler) renderWeek(c *gin.Context, photographerID int64) {
	week, err := h.service.GetWeek(c.Request.Context(), photographerID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load availability")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"week": week})
}
