package ingest_appointment

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// validateRequest проверяет обязательные поля: email и datetime
func validateRequest(req *Request) error {
	email := strings.TrimSpace(req.Email)
	if err := validate.Var(email, "required"); err != nil {
		return fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	if err := validate.Var(email, fmt.Sprintf("max=%d,email", domain.MaxClientEmailLength)); err != nil {
		return fmt.Errorf("%w: invalid email %q", ErrInvalidInput, email)
	}
	if strings.TrimSpace(req.DateTime) == "" {
		return fmt.Errorf("%w: datetime is required", ErrInvalidInput)
	}
	return nil
}

// clientName собирает имя клиента из имени и фамилии
func clientName(req *Request) string {
	name := strings.Join(strings.Fields(req.FirstName+" "+req.LastName), " ")
	return truncate(name, domain.MaxClientNameLength)
}

// serviceLabel название услуги из поля type
func serviceLabel(req *Request) string {
	label := strings.TrimSpace(req.Type)
	if label == "" {
		return DefaultServiceLabel
	}
	return truncate(label, domain.MaxServiceNameLength)
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) > max {
		return string(runes[:max])
	}
	return s
}
