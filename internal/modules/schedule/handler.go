package schedule

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"barbershop/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/slots", h.GetSlots)
	rg.GET("/availability", h.CheckAvailability)
	rg.GET("/blocked-dates", h.ListBlockedDates)
}

func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.GET("/schedule", h.GetDaySchedule)
	rg.POST("/blocked-dates", h.CreateBlockedDate)
	rg.DELETE("/blocked-dates/:id", h.DeleteBlockedDate)
	rg.GET("/slot-overrides", h.GetOverrides)
	rg.PUT("/slot-overrides", h.PutOverrides)
}

func (h *Handler) GetSlots(c *gin.Context) {
	date := c.Query("date")
	slots, err := h.service.AvailableSlots(c.Request.Context(), date)
	if err != nil {
		if errors.Is(err, ErrInvalidDate) {
			response.Error(c, http.StatusBadRequest, "INVALID_DATE", "Date must be YYYY-MM-DD")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to compute slots")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"date": date, "slots": slots})
}

func (h *Handler) GetDaySchedule(c *gin.Context) {
	sched, err := h.service.DaySchedule(c.Request.Context(), c.Query("date"))
	if err != nil {
		if errors.Is(err, ErrInvalidDate) {
			response.Error(c, http.StatusBadRequest, "INVALID_DATE", "Date must be YYYY-MM-DD")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to compute schedule")
		return
	}
	response.Success(c, http.StatusOK, sched)
}

func (h *Handler) CheckAvailability(c *gin.Context) {
	date := c.Query("date")
	clock := c.Query("time")
	duration, _ := strconv.Atoi(c.DefaultQuery("duration", "30"))

	ok, err := h.service.CheckAvailability(c.Request.Context(), date, clock, duration)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidDate):
			response.Error(c, http.StatusBadRequest, "INVALID_DATE", "Date must be YYYY-MM-DD")
		case errors.Is(err, ErrInvalidTime):
			response.Error(c, http.StatusBadRequest, "INVALID_TIME", "Time must be HH:MM")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to check availability")
		}
		return
	}
	response.Success(c, http.StatusOK, AvailabilityResponse{Date: date, Time: clock, Available: ok})
}

func (h *Handler) ListBlockedDates(c *gin.Context) {
	entries, err := h.service.BlockedDates(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list calendar entries")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"blockedDates": entries})
}

func (h *Handler) CreateBlockedDate(c *gin.Context) {
	var req CreateBlockedDateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	entry, err := h.service.AddBlockedDate(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrInvalidEntry) {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid calendar entry")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to save calendar entry")
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"blockedDate": entry})
}

func (h *Handler) DeleteBlockedDate(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid calendar entry id")
		return
	}

	if err := h.service.RemoveBlockedDate(c.Request.Context(), id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Calendar entry not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to delete calendar entry")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": id})
}

func (h *Handler) GetOverrides(c *gin.Context) {
	date := c.Query("date")
	times, err := h.service.Overrides(c.Request.Context(), date)
	if err != nil {
		if errors.Is(err, ErrInvalidDate) {
			response.Error(c, http.StatusBadRequest, "INVALID_DATE", "Date must be YYYY-MM-DD")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load overrides")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"date": date, "times": times})
}

func (h *Handler) PutOverrides(c *gin.Context) {
	var req PutOverridesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	if err := h.service.SetOverrides(c.Request.Context(), req.Date, req.Times); err != nil {
		switch {
		case errors.Is(err, ErrInvalidDate):
			response.Error(c, http.StatusBadRequest, "INVALID_DATE", "Date must be YYYY-MM-DD")
		case errors.Is(err, ErrInvalidTime):
			response.Error(c, http.StatusBadRequest, "INVALID_TIME", "Times must be HH:MM")
		case errors.Is(err, ErrSlotBooked):
			response.Error(c, http.StatusConflict, "SLOT_BOOKED", "A booked slot cannot be blocked")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to save overrides")
		}
		return
	}
	response.Success(c, http.StatusOK, gin.H{"date": req.Date, "times": req.Times})
}
