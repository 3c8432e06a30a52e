package mailer

import (
	"context"
	"crypto/tls"
	"fmt"
	"mime"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"
)

// SMTPSender отправляет письма через SMTP с STARTTLS и PLAIN-аутентификацией
type SMTPSender struct {
	host     string
	port     int
	username string
	password string
	from     Address
	now      func() time.Time
}

// NewSMTPSender создает SMTP-транспорт
// Если username пустой, аутентификация не выполняется (Mailpit, локальный relay)
func NewSMTPSender(host string, port int, username, password string, from Address) *SMTPSender {
	return &SMTPSender{
		host:     strings.TrimSpace(host),
		port:     port,
		username: strings.TrimSpace(username),
		password: password,
		from:     from,
		now:      time.Now,
	}
}

// Send доставляет письмо, соблюдая дедлайн контекста на всех этапах SMTP-диалога
func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}

	addr := net.JoinHostPort(s.host, strconv.Itoa(s.port))

	var dialer net.Dialer
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("%w: dial %s: %v", ErrSendFailed, addr, err)
	}

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	client, err := smtp.NewClient(conn, s.host)
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("%w: smtp handshake: %v", ErrSendFailed, err)
	}
	defer client.Close()

	if ok, _ := client.Extension("STARTTLS"); ok {
		if err := client.StartTLS(&tls.Config{ServerName: s.host, MinVersion: tls.VersionTLS12}); err != nil {
			return fmt.Errorf("%w: starttls: %v", ErrSendFailed, err)
		}
	}

	if s.username != "" {
		if ok, _ := client.Extension("AUTH"); !ok {
			return fmt.Errorf("%w: server %s does not support AUTH", ErrSendFailed, addr)
		}
		if err := client.Auth(smtp.PlainAuth("", s.username, s.password, s.host)); err != nil {
			return fmt.Errorf("%w: auth: %v", ErrSendFailed, err)
		}
	}

	if err := client.Mail(s.from.Email); err != nil {
		return fmt.Errorf("%w: MAIL FROM: %v", ErrSendFailed, err)
	}
	if err := client.Rcpt(msg.To); err != nil {
		return fmt.Errorf("%w: RCPT TO %s: %v", ErrSendFailed, msg.To, err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("%w: DATA: %v", ErrSendFailed, err)
	}
	if _, err := w.Write([]byte(s.buildMessage(msg))); err != nil {
		_ = w.Close()
		return fmt.Errorf("%w: write body: %v", ErrSendFailed, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("%w: end DATA: %v", ErrSendFailed, err)
	}

	if err := client.Quit(); err != nil {
		return fmt.Errorf("%w: QUIT: %v", ErrSendFailed, err)
	}
	return nil
}

// buildMessage минимальное RFC 5322 письмо в text/plain
func (s *SMTPSender) buildMessage(msg Message) string {
	body := strings.ReplaceAll(msg.Body, "\r\n", "\n")
	body = strings.ReplaceAll(body, "\n", "\r\n")

	return fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nDate: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n%s\r\n",
		s.from.String(),
		msg.To,
		mime.QEncoding.Encode("utf-8", msg.Subject),
		s.now().Format(time.RFC1123Z),
		body,
	)
}
