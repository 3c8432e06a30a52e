package create_booking

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	createBooking "github.com/m04kA/SMC-BarberBooking/internal/usecase/create_booking"
)

// Статусы успешного ответа
const (
	statusSuccess        = "success"
	statusPartialFailure = "partial_failure"
)

// Статусы отдельных писем
const (
	notificationSent   = "sent"
	notificationFailed = "failed"
)

// Имена полей формы
const (
	fieldClientName  = "client_name"
	fieldClientEmail = "client_email"
	fieldService     = "service"
	fieldDate        = "date"
)

// BookingForm поля формы записи, возвращаются клиенту при ошибке
type BookingForm struct {
	ClientName  string `json:"client_name"`
	ClientEmail string `json:"client_email"`
	Service     string `json:"service"`
	Date        string `json:"date"`
}

// BookingResponse ответ при успешной записи
type BookingResponse struct {
	Status       string           `json:"status"`
	Message      string           `json:"message"`
	Appointment  AppointmentView  `json:"appointment"`
	Notification NotificationView `json:"notification"`
}

// NotificationView какие письма ушли, без текста ошибок
type NotificationView struct {
	Customer string `json:"customer"`
	Admin    string `json:"admin"`
}

// AppointmentView созданная запись
type AppointmentView struct {
	ID          int64  `json:"id"`
	ClientName  string `json:"clientName"`
	ClientEmail string `json:"clientEmail"`
	Service     string `json:"service"`
	Date        string `json:"date"`
	Status      string `json:"status"`
}

// BookingErrorResponse ответ с ошибкой, форма возвращается для повторного заполнения
type BookingErrorResponse struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
	Input   BookingForm       `json:"input"`
}

// formFromValues читает поля формы
func formFromValues(values url.Values) BookingForm {
	return BookingForm{
		ClientName:  strings.TrimSpace(values.Get(fieldClientName)),
		ClientEmail: strings.TrimSpace(values.Get(fieldClientEmail)),
		Service:     strings.TrimSpace(values.Get(fieldService)),
		Date:        strings.TrimSpace(values.Get(fieldDate)),
	}
}

// ToUseCaseRequest конвертирует форму в модель use case
// Нечисловой service передается как 0 и отклоняется валидацией use case
func (f BookingForm) ToUseCaseRequest() *createBooking.Request {
	serviceID, err := strconv.ParseInt(f.Service, 10, 64)
	if err != nil {
		serviceID = 0
	}

	return &createBooking.Request{
		ClientName:  f.ClientName,
		ClientEmail: f.ClientEmail,
		ServiceID:   serviceID,
		DateTime:    f.Date,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	status, message := statusSuccess, msgBooked
	if resp.Outcome == createBooking.OutcomePartialFailure {
		status, message = statusPartialFailure, msgBookedEmailFailed
	}

	return &BookingResponse{
		Status:  status,
		Message: message,
		Appointment: AppointmentView{
			ID:          resp.ID,
			ClientName:  resp.ClientName,
			ClientEmail: resp.ClientEmail,
			Service:     resp.Service,
			Date:        resp.Date.Format(time.RFC3339),
			Status:      resp.Status,
		},
		Notification: NotificationView{
			Customer: notificationState(resp.CustomerNotified),
			Admin:    notificationState(resp.AdminNotified),
		},
	}
}

func notificationState(sent bool) string {
	if sent {
		return notificationSent
	}
	return notificationFailed
}
