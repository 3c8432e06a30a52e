package ingest_appointment

import "time"

// DefaultServiceLabel подставляется, если внешняя система не передала type
const DefaultServiceLabel = "Appointment"

// Request запись, уже принятая внешней системой
type Request struct {
	FirstName string
	LastName  string
	Email     string
	DateTime  string // ISO 8601
	Type      string // Название услуги во внешней системе
}

// Response модель ответа с сохраненной записью
type Response struct {
	ID          int64
	ClientName  string
	ClientEmail string
	Service     string
	Date        time.Time
	Status      string

	NotificationError error // Ошибка уведомлений, на результат не влияет
}
