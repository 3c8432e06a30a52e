package notifications

import "errors"

var (
	// ErrNotificationFailure возвращается, когда письмо не удалось отправить
	ErrNotificationFailure = errors.New("notifications: failed to send notification")

	// ErrRender возвращается при ошибке шаблона письма
	ErrRender = errors.New("notifications: failed to render template")
)
