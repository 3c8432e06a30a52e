package mailer

import "errors"

var (
	// ErrUnknownTransport возвращается при неизвестном значении notifier.transport
	ErrUnknownTransport = errors.New("mailer: unknown transport")

	// ErrInvalidMessage возвращается, если у письма нет получателя или темы
	ErrInvalidMessage = errors.New("mailer: invalid message")

	// ErrSendFailed возвращается, когда транспорт не смог доставить письмо
	ErrSendFailed = errors.New("mailer: send failed")

	// ErrMisconfigured возвращается при неполной конфигурации транспорта
	ErrMisconfigured = errors.New("mailer: transport misconfigured")
)
