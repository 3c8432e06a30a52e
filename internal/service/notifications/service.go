package notifications

import (
	"context"
	"fmt"
	"strings"
	"text/template"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/internal/integrations/mailer"
)

// Service отправляет письма о новой записи клиенту и администратору
type Service struct {
	sender     Sender
	adminEmail string
	timeout    time.Duration
	metrics    MetricsRecorder
	logger     Logger
}

// NewService создает сервис уведомлений
// metrics может быть nil
func NewService(sender Sender, opts Options, metrics MetricsRecorder, logger Logger) *Service {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Service{
		sender:     sender,
		adminEmail: strings.TrimSpace(opts.AdminEmail),
		timeout:    timeout,
		metrics:    metrics,
		logger:     logger,
	}
}

// NotifyCustomer отправляет подтверждение клиенту
func (s *Service) NotifyCustomer(ctx context.Context, appt *domain.Appointment) error {
	return s.send(ctx, KindCustomer, appt.ID, appt.ClientEmail, customerSubject, customerTemplate, appt)
}

// NotifyAdmin отправляет уведомление администратору
func (s *Service) NotifyAdmin(ctx context.Context, appt *domain.Appointment) error {
	return s.send(ctx, KindAdmin, appt.ID, s.adminEmail, adminSubject, adminTemplate, appt)
}

// NotifyBooked отправляет оба письма параллельно
// Ошибка одного письма не отменяет другое, обе ошибки попадают в Report
func (s *Service) NotifyBooked(ctx context.Context, appt *domain.Appointment) Report {
	var (
		report Report
		g      errgroup.Group
	)

	g.Go(func() error {
		report.CustomerErr = s.NotifyCustomer(ctx, appt)
		return nil
	})
	g.Go(func() error {
		report.AdminErr = s.NotifyAdmin(ctx, appt)
		return nil
	})
	_ = g.Wait()

	if report.Delivered() {
		s.logger.Info("NotifyBooked: both notifications delivered for appointment id=%d", appt.ID)
	} else {
		s.logger.Warn("NotifyBooked: notifications incomplete for appointment id=%d: %v", appt.ID, report.Err())
	}

	return report
}

func (s *Service) send(
	ctx context.Context,
	kind string,
	appointmentID int64,
	to string,
	subject string,
	tmpl *template.Template,
	appt *domain.Appointment,
) (err error) {
	defer func() {
		if s.metrics != nil {
			s.metrics.RecordNotification(kind, err)
		}
	}()

	if to == "" {
		s.logger.Error("Notify: %s recipient is empty for appointment id=%d", kind, appointmentID)
		return fmt.Errorf("%w: %s recipient is empty", ErrNotificationFailure, kind)
	}

	body, err := render(tmpl, appt)
	if err != nil {
		s.logger.Error("Notify: %v", err)
		return fmt.Errorf("%w: %v", ErrNotificationFailure, err)
	}

	// Каждая отправка ограничена своим таймаутом
	sendCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.sender.Send(sendCtx, mailer.Message{To: to, Subject: subject, Body: body}); err != nil {
		s.logger.Error("Notify: failed to send %s email for appointment id=%d to %s: %v", kind, appointmentID, to, err)
		return fmt.Errorf("%w: %s: %v", ErrNotificationFailure, kind, err)
	}

	s.logger.Info("Notify: %s email sent for appointment id=%d", kind, appointmentID)
	return nil
}
