package mailer

import (
	"context"
	"fmt"
	"net/http"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

// sendGridClient часть *sendgrid.Client, используемая транспортом
type sendGridClient interface {
	SendWithContext(ctx context.Context, email *sgmail.SGMailV3) (*rest.Response, error)
}

// SendGridSender отправляет письма через SendGrid v3 Mail Send API
type SendGridSender struct {
	client sendGridClient
	from   Address
}

// NewSendGridSender создает транспорт SendGrid
func NewSendGridSender(apiKey string, from Address) *SendGridSender {
	return &SendGridSender{
		client: sendgrid.NewSendClient(apiKey),
		from:   from,
	}
}

func (s *SendGridSender) Send(ctx context.Context, msg Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}

	email := sgmail.NewV3MailInit(
		sgmail.NewEmail(s.from.Name, s.from.Email),
		msg.Subject,
		sgmail.NewEmail("", msg.To),
		sgmail.NewContent("text/plain", msg.Body),
	)

	resp, err := s.client.SendWithContext(ctx, email)
	if err != nil {
		return fmt.Errorf("%w: sendgrid request: %v", ErrSendFailed, err)
	}

	// 202 Accepted - письмо поставлено в очередь
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("%w: sendgrid status %d: %s", ErrSendFailed, resp.StatusCode, resp.Body)
	}

	return nil
}
