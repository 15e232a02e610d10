package settings

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"barbershop/internal/domain"
	"barbershop/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/settings", h.Get)
}

func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.PUT("/settings/working-hours", h.PutWorkingHours)
	rg.PUT("/settings/whatsapp", h.PutWhatsApp)
}

func (h *Handler) Get(c *gin.Context) {
	s, err := h.service.Get(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load settings")
		return
	}
	response.Success(c, http.StatusOK, s)
}

func (h *Handler) PutWorkingHours(c *gin.Context) {
	var wh domain.WorkingHours
	if err := c.ShouldBindJSON(&wh); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	s, err := h.service.UpdateWorkingHours(c.Request.Context(), wh)
	if err != nil {
		if errors.Is(err, ErrValidation) {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Working hours are inconsistent")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to save settings")
		return
	}
	response.Success(c, http.StatusOK, s)
}

func (h *Handler) PutWhatsApp(c *gin.Context) {
	var wa domain.WhatsApp
	if err := c.ShouldBindJSON(&wa); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	s, err := h.service.UpdateWhatsApp(c.Request.Context(), wa)
	if err != nil {
		if errors.Is(err, ErrValidation) {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "WhatsApp number is required")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to save settings")
		return
	}
	response.Success(c, http.StatusOK, s)
}
