package ingest_appointment

import ingestAppointment "github.com/m04kA/SMC-BarberBooking/internal/usecase/ingest_appointment"

const (
	statusSuccess = "success"
	statusError   = "error"
)

// WebhookRequest запись от внешней системы бронирования
type WebhookRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	DateTime  string `json:"datetime"`
	Type      string `json:"type"`
}

// WebhookResponse ответ внешней системе
type WebhookResponse struct {
	Status        string `json:"status"`
	Message       string `json:"message,omitempty"`
	AppointmentID int64  `json:"appointmentId,omitempty"`
	Warning       string `json:"warning,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *WebhookRequest) ToUseCaseRequest() *ingestAppointment.Request {
	return &ingestAppointment.Request{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Email:     r.Email,
		DateTime:  r.DateTime,
		Type:      r.Type,
	}
}
