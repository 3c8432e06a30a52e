package create_booking

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
)

// formInput поля формы с правилами валидации
type formInput struct {
	ClientName  string `field:"client_name" validate:"required,min=2,max=100"`
	ClientEmail string `field:"client_email" validate:"required,max=254,email"`
	ServiceID   int64  `field:"service" validate:"gt=0"`
	DateTime    string `field:"date" validate:"required"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// В ошибках используем имена полей формы
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return f.Tag.Get("field")
	})
	return v
}

// validateRequest валидирует поля формы
// Возвращает *ValidationError с сообщением по каждому некорректному полю
func validateRequest(req *Request) error {
	in := formInput{
		ClientName:  strings.TrimSpace(req.ClientName),
		ClientEmail: strings.TrimSpace(req.ClientEmail),
		ServiceID:   req.ServiceID,
		DateTime:    strings.TrimSpace(req.DateTime),
	}

	err := validate.Struct(in)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = fieldMessage(fe)
	}
	return &ValidationError{Fields: fields}
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "min":
		return fmt.Sprintf("Must be at least %s characters long.", fe.Param())
	case "max":
		return fmt.Sprintf("Must be at most %s characters long.", fe.Param())
	case "email":
		return "Invalid email address."
	case "gt":
		return "Please select a service."
	default:
		return "Invalid value."
	}
}

// normalizeRequest приводит текстовые поля к каноничному виду
func normalizeRequest(req *Request) {
	req.ClientName = strings.TrimSpace(req.ClientName)
	req.ClientEmail = strings.TrimSpace(req.ClientEmail)
	req.DateTime = strings.TrimSpace(req.DateTime)
}

// truncateServiceName ограничивает денормализованное имя услуги
func truncateServiceName(name string) string {
	runes := []rune(name)
	if len(runes) > domain.MaxServiceNameLength {
		return string(runes[:domain.MaxServiceNameLength])
	}
	return name
}
