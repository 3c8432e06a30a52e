package mailer

import (
	"context"
	"errors"
	"net"
	"net/textproto"
	"strings"
	"testing"
	"time"

	"github.com/sendgrid/rest"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var shop = Address{Name: "Stylish Cuts", Email: "noreply@stylishcuts.com"}

// startFakeSMTP поднимает минимальный SMTP-сервер на одно соединение
func startFakeSMTP(t *testing.T, rejectRcpt bool) (int, <-chan string) {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = ln.Close() })

	received := make(chan string, 1)

	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()

		tp := textproto.NewConn(conn)
		_ = tp.PrintfLine("220 localhost ESMTP fake")

		for {
			line, err := tp.ReadLine()
			if err != nil {
				return
			}
			cmd := strings.ToUpper(line)
			switch {
			case strings.HasPrefix(cmd, "EHLO"), strings.HasPrefix(cmd, "HELO"):
				_ = tp.PrintfLine("250-localhost")
				_ = tp.PrintfLine("250 HELP")
			case strings.HasPrefix(cmd, "MAIL FROM"):
				_ = tp.PrintfLine("250 OK")
			case strings.HasPrefix(cmd, "RCPT TO"):
				if rejectRcpt {
					_ = tp.PrintfLine("550 mailbox unavailable")
					continue
				}
				_ = tp.PrintfLine("250 OK")
			case cmd == "DATA":
				_ = tp.PrintfLine("354 end with .")
				data, err := tp.ReadDotBytes()
				if err != nil {
					return
				}
				received <- string(data)
				_ = tp.PrintfLine("250 queued")
			case cmd == "QUIT":
				_ = tp.PrintfLine("221 bye")
				return
			default:
				_ = tp.PrintfLine("502 not implemented")
			}
		}
	}()

	return ln.Addr().(*net.TCPAddr).Port, received
}

func TestSMTPSender_Send(t *testing.T) {
	port, received := startFakeSMTP(t, false)
	sender := NewSMTPSender("127.0.0.1", port, "", "", shop)
	sender.now = func() time.Time { return time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC) }

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := sender.Send(ctx, Message{
		To:      "a@x.com",
		Subject: "Appointment Confirmation - Stylish Cuts",
		Body:    "Dear Alice,\nsee you soon",
	})
	require.NoError(t, err)

	select {
	case data := <-received:
		assert.Contains(t, data, "To: a@x.com")
		assert.Contains(t, data, `From: "Stylish Cuts" <noreply@stylishcuts.com>`)
		assert.Contains(t, data, "Subject: Appointment Confirmation - Stylish Cuts")
		assert.Contains(t, data, "Dear Alice,")
		assert.Contains(t, data, "see you soon")
	case <-time.After(5 * time.Second):
		t.Fatal("fake smtp server did not receive data")
	}
}

func TestSMTPSender_RecipientRejected(t *testing.T) {
	port, _ := startFakeSMTP(t, true)
	sender := NewSMTPSender("127.0.0.1", port, "", "", shop)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := sender.Send(ctx, Message{To: "nobody@x.com", Subject: "Hi", Body: "x"})
	assert.ErrorIs(t, err, ErrSendFailed)
}

func TestSMTPSender_DialFails(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := ln.Addr().(*net.TCPAddr).Port
	require.NoError(t, ln.Close())

	sender := NewSMTPSender("127.0.0.1", port, "", "", shop)
	err = sender.Send(context.Background(), Message{To: "a@x.com", Subject: "Hi"})
	assert.ErrorIs(t, err, ErrSendFailed)
}

type fakeSendGrid struct {
	status int
	err    error
	got    *sgmail.SGMailV3
}

func (f *fakeSendGrid) SendWithContext(_ context.Context, email *sgmail.SGMailV3) (*rest.Response, error) {
	f.got = email
	if f.err != nil {
		return nil, f.err
	}
	return &rest.Response{StatusCode: f.status, Body: "body"}, nil
}

func TestSendGridSender_Send(t *testing.T) {
	client := &fakeSendGrid{status: 202}
	sender := &SendGridSender{client: client, from: shop}

	err := sender.Send(context.Background(), Message{To: "a@x.com", Subject: "New Appointment Booking", Body: "Client: Alice"})

	require.NoError(t, err)
	require.NotNil(t, client.got)
	assert.Equal(t, "New Appointment Booking", client.got.Subject)
	assert.Equal(t, "noreply@stylishcuts.com", client.got.From.Address)
	require.Len(t, client.got.Personalizations, 1)
	assert.Equal(t, "a@x.com", client.got.Personalizations[0].To[0].Address)
	require.Len(t, client.got.Content, 1)
	assert.Equal(t, "text/plain", client.got.Content[0].Type)
}

func TestSendGridSender_Errors(t *testing.T) {
	sender := &SendGridSender{client: &fakeSendGrid{status: 401}, from: shop}
	err := sender.Send(context.Background(), Message{To: "a@x.com", Subject: "Hi"})
	assert.ErrorIs(t, err, ErrSendFailed)

	sender = &SendGridSender{client: &fakeSendGrid{err: errors.New("timeout")}, from: shop}
	err = sender.Send(context.Background(), Message{To: "a@x.com", Subject: "Hi"})
	assert.ErrorIs(t, err, ErrSendFailed)
}

func TestLogSender(t *testing.T) {
	sender := NewLogSender(nopLogger{})
	assert.NoError(t, sender.Send(context.Background(), Message{To: "a@x.com", Subject: "Hi"}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, sender.Send(ctx, Message{To: "a@x.com", Subject: "Hi"}), context.Canceled)
}

func TestMessage_Validate(t *testing.T) {
	assert.ErrorIs(t, Message{Subject: "Hi"}.Validate(), ErrInvalidMessage)
	assert.ErrorIs(t, Message{To: "a@x.com"}.Validate(), ErrInvalidMessage)
	assert.ErrorIs(t, Message{To: "a@x.com\r\nBcc: b@x.com", Subject: "Hi"}.Validate(), ErrInvalidMessage)
	assert.NoError(t, Message{To: "a@x.com", Subject: "Hi"}.Validate())
}

func TestNew(t *testing.T) {
	s, err := New(Options{Transport: "SMTP", SMTPHost: "smtp.gmail.com", SMTPPort: 587, From: shop}, nopLogger{})
	require.NoError(t, err)
	assert.IsType(t, &SMTPSender{}, s)

	s, err = New(Options{Transport: "sendgrid", SendGridAPIKey: "SG.key", From: shop}, nopLogger{})
	require.NoError(t, err)
	assert.IsType(t, &SendGridSender{}, s)

	s, err = New(Options{Transport: "log"}, nopLogger{})
	require.NoError(t, err)
	assert.IsType(t, &LogSender{}, s)

	_, err = New(Options{Transport: "sendgrid", From: shop}, nopLogger{})
	assert.ErrorIs(t, err, ErrMisconfigured)

	_, err = New(Options{Transport: "smtp"}, nopLogger{})
	assert.ErrorIs(t, err, ErrMisconfigured)

	_, err = New(Options{Transport: "pigeon"}, nopLogger{})
	assert.ErrorIs(t, err, ErrUnknownTransport)
}
