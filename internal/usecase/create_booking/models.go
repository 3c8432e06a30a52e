package create_booking

import "time"

// Outcome итог бронирования
type Outcome string

const (
	// OutcomeSucceeded запись создана, оба письма отправлены
	OutcomeSucceeded Outcome = "succeeded"
	// OutcomePartialFailure запись создана, но хотя бы одно письмо не ушло
	OutcomePartialFailure Outcome = "partial_failure"
)

// Request модель запроса на запись через форму
type Request struct {
	ClientName  string // Имя клиента
	ClientEmail string // Email клиента
	ServiceID   int64  // ID услуги из каталога
	DateTime    string // Дата и время в ISO 8601 или "YYYY-MM-DD HH:MM"
}

// Response модель ответа с созданной записью
type Response struct {
	ID          int64
	ClientName  string
	ClientEmail string
	Service     string
	Date        time.Time // Время записи в часовом поясе салона
	Status      string
	CreatedAt   time.Time

	Outcome           Outcome
	CustomerNotified  bool  // Письмо клиенту отправлено
	AdminNotified     bool  // Письмо администратору отправлено
	NotificationError error // Заполнено при OutcomePartialFailure
}
