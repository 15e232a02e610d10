package booking

import "barbershop/internal/domain"

type CreateBookingRequest struct {
	Name    string `json:"name" binding:"required"`
	Phone   string `json:"phone" binding:"required"`
	Service string `json:"service" binding:"required"`
	Date    string `json:"date" binding:"required,day"`
	Time    string `json:"time" binding:"required,clock"`
	Notes   string `json:"notes"`

	// Admin-only fields; ignored on the public endpoint.
	Status    string `json:"status"`
	CreatedBy string `json:"created_by"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type ListFilters struct {
	Date   string `form:"date"`
	Status string `form:"status"`
}

type CreateBookingResponse struct {
	Booking  *domain.Booking `json:"booking"`
	WhatsApp string          `json:"whatsapp,omitempty"`
}
