package models

import (
	"time"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
)

// AppointmentResponse ответ с данными записи
type AppointmentResponse struct {
	ID          int64     `json:"id"`
	ClientName  string    `json:"clientName"`
	ClientEmail string    `json:"clientEmail"`
	Service     string    `json:"service"`
	Date        string    `json:"date"` // RFC 3339 со смещением салона
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}

// FromDomainAppointment конвертирует domain модель в DTO
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	if a == nil {
		return nil
	}

	return &AppointmentResponse{
		ID:          a.ID,
		ClientName:  a.ClientName,
		ClientEmail: a.ClientEmail,
		Service:     a.Service,
		Date:        a.Date.Format(time.RFC3339),
		Status:      string(a.Status),
		CreatedAt:   a.CreatedAt,
	}
}
