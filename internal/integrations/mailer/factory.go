package mailer

import (
	"fmt"
	"strings"
)

// Поддерживаемые транспорты
const (
	TransportSMTP     = "smtp"
	TransportSendGrid = "sendgrid"
	TransportLog      = "log"
)

// Options настройки транспорта, выбираемого при старте
type Options struct {
	Transport string
	From      Address

	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string

	SendGridAPIKey string
}

// New создает транспорт по имени из конфигурации
func New(opts Options, log Logger) (Sender, error) {
	transport := strings.ToLower(strings.TrimSpace(opts.Transport))

	switch transport {
	case TransportSMTP:
		if opts.SMTPHost == "" || opts.SMTPPort <= 0 {
			return nil, fmt.Errorf("%w: smtp host and port are required", ErrMisconfigured)
		}
		if opts.From.Email == "" {
			return nil, fmt.Errorf("%w: sender address is required", ErrMisconfigured)
		}
		log.Info("Mailer: using SMTP transport %s:%d", opts.SMTPHost, opts.SMTPPort)
		return NewSMTPSender(opts.SMTPHost, opts.SMTPPort, opts.SMTPUsername, opts.SMTPPassword, opts.From), nil

	case TransportSendGrid:
		if opts.SendGridAPIKey == "" {
			return nil, fmt.Errorf("%w: sendgrid api key is required", ErrMisconfigured)
		}
		if opts.From.Email == "" {
			return nil, fmt.Errorf("%w: sender address is required", ErrMisconfigured)
		}
		log.Info("Mailer: using SendGrid transport")
		return NewSendGridSender(opts.SendGridAPIKey, opts.From), nil

	case TransportLog, "":
		log.Warn("Mailer: using log transport, emails will not be delivered")
		return NewLogSender(log), nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownTransport, opts.Transport)
	}
}
