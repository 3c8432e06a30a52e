package ingest_appointment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-BarberBooking/internal/infra/storage/appointment"
)

// UseCase сохраняет запись, пришедшую от доверенной внешней системы
// Рабочие часы и предварительная проверка занятости не применяются,
// уникальность слота по-прежнему обеспечивается БД
type UseCase struct {
	appointmentRepo AppointmentRepository
	normalizer      Normalizer
	notifier        Notifier
	txManager       TransactionManager
	metrics         MetricsRecorder
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
// metrics может быть nil
func NewUseCase(
	appointmentRepo AppointmentRepository,
	normalizer Normalizer,
	notifier Notifier,
	txManager TransactionManager,
	metrics MetricsRecorder,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		normalizer:      normalizer,
		notifier:        notifier,
		txManager:       txManager,
		metrics:         metrics,
		logger:          logger,
	}
}

// Execute сохраняет запись со статусом confirmed и отправляет уведомления
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("IngestAppointment: email=%s, datetime=%q, type=%q", req.Email, req.DateTime, req.Type)

	// 1. Проверка обязательных полей
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("IngestAppointment: validation failed: %v", err)
		uc.record("rejected_invalid_input")
		return nil, err
	}

	// 2. Нормализация даты
	date, err := uc.normalizer.Normalize(req.DateTime)
	if err != nil {
		uc.logger.Warn("IngestAppointment: malformed datetime %q: %v", req.DateTime, err)
		uc.record("rejected_malformed_date")
		return nil, fmt.Errorf("%w: %v", ErrMalformedTimestamp, err)
	}

	// 3. Сохраняем запись
	var created *domain.Appointment
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		appt := &domain.Appointment{
			ClientName:  clientName(req),
			ClientEmail: strings.TrimSpace(req.Email),
			Service:     serviceLabel(req),
			Date:        date,
			Status:      domain.StatusConfirmed,
		}

		result, err := uc.appointmentRepo.Create(txCtx, appt)
		if err != nil {
			return err
		}
		created = result
		return nil
	})
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrDuplicateDate) {
			uc.logger.Warn("IngestAppointment: slot %s is already booked", date.Format(domain.DateTimeFormat))
			uc.record("rejected_slot_taken")
			return nil, fmt.Errorf("%w: %s", ErrSlotTaken, date.Format(domain.DateTimeFormat))
		}
		uc.logger.Error("IngestAppointment: failed to create appointment: %v", err)
		uc.record("failed_persistence")
		return nil, fmt.Errorf("%w: failed to create appointment: %v", ErrPersistence, err)
	}

	uc.logger.Info("IngestAppointment: created appointment id=%d at %s", created.ID, created.Date.Format(time.RFC3339))

	// 4. Уведомления, ошибка отправки не влияет на результат
	resp := &Response{
		ID:          created.ID,
		ClientName:  created.ClientName,
		ClientEmail: created.ClientEmail,
		Service:     created.Service,
		Date:        created.Date,
		Status:      string(created.Status),
	}

	report := uc.notifier.NotifyBooked(context.WithoutCancel(ctx), created)
	if !report.Delivered() {
		resp.NotificationError = report.Err()
		uc.logger.Warn("IngestAppointment: appointment id=%d saved, notification failed: %v", created.ID, resp.NotificationError)
		uc.record("partial_failure")
		return resp, nil
	}

	uc.record("succeeded")
	return resp, nil
}

func (uc *UseCase) record(outcome string) {
	if uc.metrics != nil {
		uc.metrics.RecordBooking(domain.SourceWebhook, outcome)
	}
}
