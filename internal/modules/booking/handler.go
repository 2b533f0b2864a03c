package booking

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"photomarket/internal/domain"
	"photomarket/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes wires booking endpoints. All of them require auth; the
// photographer group additionally requires the photographer role.
func (h *Handler) RegisterRoutes(protected, photographer *gin.RouterGroup) {
	protected.POST("/availability/check", h.CheckAvailability)
	protected.POST("/bookings", h.CreateBooking)
	protected.POST("/bookings/:id/cancel", h.CancelBooking)
	protected.GET("/bookings/:id/images", h.GetSessionImages)
	protected.GET("/users/me/bookings", h.GetHistory)
	protected.GET("/users/me/pending-bookings", h.GetPendingClient)

	photographer.POST("/bookings/:id/confirm", h.ConfirmBooking)
	photographer.POST("/bookings/:id/complete", h.CompleteBooking)
	photographer.POST("/bookings/:id/images", h.AttachImages)
	photographer.GET("/photographer/pending-bookings", h.GetPendingPhotographer)
	photographer.GET("/photographer/agenda", h.GetAgenda)
	photographer.GET("/photographer/completed-without-images", h.GetCompletedWithoutImages)
}

func actorFromContext(c *gin.Context) domain.Actor {
	return domain.Actor{
		UserID: c.GetInt64("user_id"),
		Role:   domain.UserRole(c.GetString("role")),
	}
}

func (h *Handler) CheckAvailability(c *gin.Context) {
	var req CheckAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	slots, err := h.service.CheckAvailability(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrValidation) {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to compute availability")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"available_slots": slots})
}

func (h *Handler) CreateBooking(c *gin.Context) {
	clientID := c.GetInt64("user_id")

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	b, err := h.service.Create(c.Request.Context(), clientID, req)
	if err != nil {
		h.renderBookingError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"booking": toBookingResponse(b)})
}

func (h *Handler) ConfirmBooking(c *gin.Context) {
	h.transition(c, domain.BookingActive)
}

func (h *Handler) CancelBooking(c *gin.Context) {
	h.transition(c, domain.BookingCancelled)
}

func (h *Handler) CompleteBooking(c *gin.Context) {
	h.transition(c, domain.BookingDone)
}

func (h *Handler) transition(c *gin.Context, target domain.BookingState) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid booking ID")
		return
	}

	b, err := h.service.Transition(c.Request.Context(), id, actorFromContext(c), target)
	if err != nil {
		h.renderBookingError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"booking": toBookingResponse(b)})
}

func (h *Handler) GetHistory(c *gin.Context) {
	rows, err := h.service.ClientHistory(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load history")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"history": rows})
}

func (h *Handler) GetPendingPhotographer(c *gin.Context) {
	rows, err := h.service.PendingByPhotographer(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load pending bookings")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"bookings": rows})
}

func (h *Handler) GetPendingClient(c *gin.Context) {
	rows, err := h.service.PendingByClient(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load pending bookings")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"bookings": rows})
}

func (h *Handler) GetAgenda(c *gin.Context) {
	days := 0
	if s := c.Query("days"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v > 0 && v <= 30 {
			days = v
		}
	}

	agenda, err := h.service.Agenda(c.Request.Context(), c.GetInt64("user_id"), days)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load agenda")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"agenda": agenda})
}

func (h *Handler) GetCompletedWithoutImages(c *gin.Context) {
	rows, err := h.service.CompletedWithoutImages(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load bookings")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"bookings": rows})
}

func (h *Handler) GetSessionImages(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid booking ID")
		return
	}

	urls, err := h.service.SessionImages(c.Request.Context(), id, actorFromContext(c))
	if err != nil {
		h.renderBookingError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"images": urls})
}

type attachImagesRequest struct {
	URL string `json:"url" binding:"required"`
}

func (h *Handler) AttachImages(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid booking ID")
		return
	}

	var req attachImagesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	b, err := h.service.AttachImages(c.Request.Context(), id, actorFromContext(c), req.URL)
	if err != nil {
		h.renderBookingError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"booking": toBookingResponse(b)})
}

func (h *Handler) renderBookingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrClientNotFound),
		errors.Is(err, ErrServiceNotFound),
		errors.Is(err, ErrBookingNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, ErrPastDate),
		errors.Is(err, ErrTimeConflict),
		errors.Is(err, ErrInvalidTransition),
		errors.Is(err, ErrImagesAttached):
		response.Error(c, http.StatusConflict, "BOOKING_CONFLICT", err.Error())
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", err.Error())
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Booking operation failed")
	}
}

func toBookingResponse(b *domain.Booking) BookingResponse {
	resp := BookingResponse{
		BookingID:       b.ID,
		Price:           b.Price,
		Start:           b.ScheduledStart.Format(time.RFC3339),
		DurationMinutes: b.DurationMin,
		Status:          string(b.State),
	}
	if b.Service != nil {
		resp.ServiceName = b.Service.Name
	}
	if b.Client != nil {
		resp.ClientName = b.Client.Name
		resp.ClientEmail = b.Client.Email
	}
	return resp
}
