package notifications

import (
	"context"

	"github.com/m04kA/SMC-BarberBooking/internal/integrations/mailer"
)

// Sender транспорт доставки писем (mailer.SMTPSender, mailer.SendGridSender, mailer.LogSender)
type Sender interface {
	Send(ctx context.Context, msg mailer.Message) error
}

// MetricsRecorder учет результатов отправки
type MetricsRecorder interface {
	RecordNotification(kind string, err error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
