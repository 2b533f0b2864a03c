package catalog

import (
	"errors"
	"net/http"
	"strconv"

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

func (h *Handler) RegisterRoutes(public, photographer *gin.RouterGroup) {
	public.GET("/services/:id", h.GetService)
	public.GET("/photographers/:id/services", h.ListByPhotographer)

	photographer.POST("/services", h.CreateService)
	photographer.PUT("/services/:id", h.UpdateService)
}

func (h *Handler) CreateService(c *gin.Context) {
	photographerID := c.GetInt64("user_id")

	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	svc, err := h.service.Create(c.Request.Context(), photographerID, req)
	if err != nil {
		if errors.Is(err, ErrValidation) {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create service")
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"service": toServiceResponse(svc)})
}

func (h *Handler) UpdateService(c *gin.Context) {
	photographerID := c.GetInt64("user_id")

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid service ID")
		return
	}

	var req UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	svc, err := h.service.Update(c.Request.Context(), photographerID, id, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrServiceNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Service not found")
		case errors.Is(err, ErrNotOwner):
			response.Error(c, http.StatusForbidden, "FORBIDDEN", err.Error())
		case errors.Is(err, ErrValidation):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update service")
		}
		return
	}
	response.Success(c, http.StatusOK, gin.H{"service": toServiceResponse(svc)})
}

func (h *Handler) GetService(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid service ID")
		return
	}

	svc, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrServiceNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Service not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load service")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"service": toServiceResponse(svc)})
}

func (h *Handler) ListByPhotographer(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid photographer ID")
		return
	}

	services, err := h.service.ListByPhotographer(c.Request.Context(), id)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load services")
		return
	}

	out := make([]ServiceResponse, 0, len(services))
	for i := range services {
		out = append(out, toServiceResponse(&services[i]))
	}
	response.Success(c, http.StatusOK, gin.H{"services": out})
}

func toServiceResponse(s *domain.Service) ServiceResponse {
	return ServiceResponse{
		ID:             s.ID,
		PhotographerID: s.PhotographerID,
		Name:           s.Name,
		Description:    s.Description,
		Price:          s.Price,
		ImageURL:       s.ImageURL,
	}
}
