package create_booking

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrInvalidInput возвращается при некорректных полях формы
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrMalformedTimestamp возвращается, когда дату не удалось разобрать
	ErrMalformedTimestamp = errors.New("create_booking: malformed date")

	// ErrOutsideBusinessHours возвращается, когда время вне рабочих часов салона
	ErrOutsideBusinessHours = errors.New("create_booking: outside business hours")

	// ErrSlotTaken возвращается, когда на это время уже есть запись
	ErrSlotTaken = errors.New("create_booking: slot is already booked")

	// ErrUnknownService возвращается, когда услуга не найдена в каталоге
	ErrUnknownService = errors.New("create_booking: unknown service")

	// ErrPersistence возвращается при ошибках хранилища
	ErrPersistence = errors.New("create_booking: persistence error")
)

// ValidationError ошибки по полям формы (ключ - имя поля формы)
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s: %s", name, e.Fields[name]))
	}
	return fmt.Sprintf("%v: %s", ErrInvalidInput, strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}
