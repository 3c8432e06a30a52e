package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-BarberBooking/internal/infra/storage/appointment"
	serviceRepo "github.com/m04kA/SMC-BarberBooking/internal/infra/storage/service"
)

// Метки исходов для метрики bookings_total
const (
	outcomeRejectedInvalid  = "rejected_invalid_input"
	outcomeRejectedDate     = "rejected_malformed_date"
	outcomeRejectedHours    = "rejected_outside_hours"
	outcomeRejectedTaken    = "rejected_slot_taken"
	outcomeRejectedService  = "rejected_unknown_service"
	outcomeFailedPersisting = "failed_persistence"
)

// UseCase use case записи клиента через форму
type UseCase struct {
	appointmentRepo AppointmentRepository
	serviceRepo     ServiceRepository
	normalizer      Normalizer
	notifier        Notifier
	txManager       TransactionManager
	hours           domain.BusinessHours
	metrics         MetricsRecorder
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
// metrics может быть nil
func NewUseCase(
	appointmentRepo AppointmentRepository,
	serviceRepo ServiceRepository,
	normalizer Normalizer,
	notifier Notifier,
	txManager TransactionManager,
	metrics MetricsRecorder,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		serviceRepo:     serviceRepo,
		normalizer:      normalizer,
		notifier:        notifier,
		txManager:       txManager,
		hours:           domain.ShopHours,
		metrics:         metrics,
		logger:          logger,
	}
}

// Execute выполняет запись клиента
// Запись сохраняется со статусом pending. Ошибки отправки писем не откатывают запись,
// а переводят результат в OutcomePartialFailure
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: client=%q, email=%s, service=%d, date=%q",
		req.ClientName, req.ClientEmail, req.ServiceID, req.DateTime)

	// 1. Валидация полей формы
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		uc.record(outcomeRejectedInvalid)
		return nil, err
	}
	normalizeRequest(req)

	// 2. Нормализация даты в часовой пояс салона
	date, err := uc.normalizer.Normalize(req.DateTime)
	if err != nil {
		uc.logger.Warn("CreateBooking: malformed date %q: %v", req.DateTime, err)
		uc.record(outcomeRejectedDate)
		return nil, fmt.Errorf("%w: %v", ErrMalformedTimestamp, err)
	}

	// 3. Проверка рабочих часов
	if !uc.hours.IsBookable(date) {
		uc.logger.Warn("CreateBooking: %s is outside business hours", date.Format(domain.DateTimeFormat))
		uc.record(outcomeRejectedHours)
		return nil, fmt.Errorf("%w: %s", ErrOutsideBusinessHours, date.Format(domain.DateTimeFormat))
	}

	// 4. Предварительная проверка занятости слота
	taken, err := uc.checkConflict(ctx, date)
	if err != nil {
		uc.logger.Error("CreateBooking: conflict check failed: %v", err)
		uc.record(outcomeFailedPersisting)
		return nil, fmt.Errorf("%w: conflict check: %v", ErrPersistence, err)
	}
	if taken {
		uc.logger.Warn("CreateBooking: slot %s is already booked", date.Format(domain.DateTimeFormat))
		uc.record(outcomeRejectedTaken)
		return nil, fmt.Errorf("%w: %s", ErrSlotTaken, date.Format(domain.DateTimeFormat))
	}

	// 5. Получаем услугу из каталога
	service, err := uc.serviceRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			uc.logger.Warn("CreateBooking: service id=%d not found", req.ServiceID)
			uc.record(outcomeRejectedService)
			return nil, fmt.Errorf("%w: id=%d", ErrUnknownService, req.ServiceID)
		}
		uc.logger.Error("CreateBooking: failed to get service id=%d: %v", req.ServiceID, err)
		uc.record(outcomeFailedPersisting)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrPersistence, err)
	}

	// 6. Сохраняем запись в транзакции
	// Уникальный индекс по date закрывает гонку между проверкой и вставкой
	var created *domain.Appointment
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		appt := &domain.Appointment{
			ClientName:  req.ClientName,
			ClientEmail: req.ClientEmail,
			Service:     truncateServiceName(service.Name),
			Date:        date,
			Status:      domain.StatusPending,
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
			uc.logger.Warn("CreateBooking: slot %s was taken concurrently", date.Format(domain.DateTimeFormat))
			uc.record(outcomeRejectedTaken)
			return nil, fmt.Errorf("%w: %s", ErrSlotTaken, date.Format(domain.DateTimeFormat))
		}
		uc.logger.Error("CreateBooking: failed to create appointment: %v", err)
		uc.record(outcomeFailedPersisting)
		return nil, fmt.Errorf("%w: failed to create appointment: %v", ErrPersistence, err)
	}

	uc.logger.Info("CreateBooking: created appointment id=%d at %s", created.ID, created.Date.Format(time.RFC3339))

	// 7. Уведомления клиенту и администратору
	// Отмена запроса клиентом не должна прерывать отправку
	report := uc.notifier.NotifyBooked(context.WithoutCancel(ctx), created)

	resp := toResponse(created)
	resp.CustomerNotified = report.CustomerErr == nil
	resp.AdminNotified = report.AdminErr == nil
	if report.Delivered() {
		resp.Outcome = OutcomeSucceeded
	} else {
		resp.Outcome = OutcomePartialFailure
		resp.NotificationError = report.Err()
		uc.logger.Warn("CreateBooking: appointment id=%d saved, notification failed: %v", created.ID, resp.NotificationError)
	}
	uc.record(string(resp.Outcome))

	return resp, nil
}

// checkConflict проверяет, есть ли запись ровно на это время
func (uc *UseCase) checkConflict(ctx context.Context, date time.Time) (bool, error) {
	_, err := uc.appointmentRepo.GetByExactDate(ctx, date)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (uc *UseCase) record(outcome string) {
	if uc.metrics != nil {
		uc.metrics.RecordBooking(domain.SourceForm, outcome)
	}
}

func toResponse(appt *domain.Appointment) *Response {
	return &Response{
		ID:          appt.ID,
		ClientName:  appt.ClientName,
		ClientEmail: appt.ClientEmail,
		Service:     appt.Service,
		Date:        appt.Date,
		Status:      string(appt.Status),
		CreatedAt:   appt.CreatedAt,
	}
}
