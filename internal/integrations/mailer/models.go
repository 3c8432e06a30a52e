package mailer

import (
	"fmt"
	"net/mail"
	"strings"
)

// Address адрес отправителя или получателя
type Address struct {
	Name  string
	Email string
}

// String форматирует адрес по RFC 5322 ("Stylish Cuts" <noreply@...>)
func (a Address) String() string {
	if a.Name == "" {
		return a.Email
	}
	return (&mail.Address{Name: a.Name, Address: a.Email}).String()
}

// Message письмо в текстовом формате
type Message struct {
	To      string
	Subject string
	Body    string
}

// Validate проверяет обязательные поля письма
func (m Message) Validate() error {
	if strings.TrimSpace(m.To) == "" {
		return fmt.Errorf("%w: recipient is required", ErrInvalidMessage)
	}
	if strings.TrimSpace(m.Subject) == "" {
		return fmt.Errorf("%w: subject is required", ErrInvalidMessage)
	}
	if strings.ContainsAny(m.To, "\r\n") || strings.ContainsAny(m.Subject, "\r\n") {
		return fmt.Errorf("%w: header injection", ErrInvalidMessage)
	}
	return nil
}
