package mailer

import "context"

// LogSender пишет письма в лог вместо отправки (локальная разработка, тесты)
type LogSender struct {
	log Logger
}

func NewLogSender(log Logger) *LogSender {
	return &LogSender{log: log}
}

func (s *LogSender) Send(ctx context.Context, msg Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	s.log.Info("Mail (log transport): to=%s subject=%q body_len=%d", msg.To, msg.Subject, len(msg.Body))
	return nil
}
