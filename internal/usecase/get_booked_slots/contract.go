package get_booked_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	// GetInRange получает записи с date в [start, end], отсортированные по date
	GetInRange(ctx context.Context, start, end time.Time) ([]*domain.Appointment, error)
}

// Normalizer переводит входную строку даты во время салона
type Normalizer interface {
	Normalize(raw string) (time.Time, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
