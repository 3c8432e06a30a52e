package ingest_appointment

import (
	"context"
	"time"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/internal/service/notifications"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error)
}

// Normalizer переводит входную строку даты во время салона
type Normalizer interface {
	Normalize(raw string) (time.Time, error)
}

// Notifier отправляет письма клиенту и администратору
type Notifier interface {
	NotifyBooked(ctx context.Context, appt *domain.Appointment) notifications.Report
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// MetricsRecorder учет исходов бронирования
type MetricsRecorder interface {
	RecordBooking(path, outcome string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
