package appointments

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-BarberBooking/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-BarberBooking/internal/service/appointments/models"
)

// Service сервис администрирования записей
type Service struct {
	appointmentRepo AppointmentRepository
	txManager       TransactionManager
	logger          Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	appointmentRepo AppointmentRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		txManager:       txManager,
		logger:          logger,
	}
}

// GetByID получает запись по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%d", id)

	if id <= 0 {
		return nil, fmt.Errorf("%w: id must be positive", ErrInvalidInput)
	}

	appt, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("GetByID: appointment id=%d not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("GetByID: repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetByID: successfully fetched appointment id=%d", id)
	return models.FromDomainAppointment(appt), nil
}

// Confirm переводит запись из pending в confirmed
// Любой другой переход отклоняется с ErrCannotConfirm
func (s *Service) Confirm(ctx context.Context, id int64) (*models.AppointmentResponse, error) {
	s.logger.Info("Confirm: confirming appointment id=%d", id)

	if id <= 0 {
		return nil, fmt.Errorf("%w: id must be positive", ErrInvalidInput)
	}

	var confirmed *domain.Appointment
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		// 1. Получаем запись
		appt, err := s.appointmentRepo.GetByID(txCtx, id)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				s.logger.Warn("Confirm: appointment id=%d not found", id)
				return ErrAppointmentNotFound
			}
			s.logger.Error("Confirm: repository error for appointment id=%d: %v", id, err)
			return fmt.Errorf("%w: Confirm - repository error: %v", ErrInternal, err)
		}

		// 2. Проверяем переход статуса
		if err := appt.Confirm(); err != nil {
			s.logger.Warn("Confirm: appointment id=%d cannot be confirmed: %v", id, err)
			return fmt.Errorf("%w: %v", ErrCannotConfirm, err)
		}

		// 3. Сохраняем новый статус только если запись всё ещё pending
		if err := s.appointmentRepo.TransitionStatus(txCtx, id, domain.StatusPending, appt.Status); err != nil {
			if errors.Is(err, appointmentRepo.ErrStatusConflict) {
				s.logger.Warn("Confirm: appointment id=%d was changed concurrently: %v", id, err)
				return fmt.Errorf("%w: appointment is no longer pending", ErrCannotConfirm)
			}
			s.logger.Error("Confirm: repository error for appointment id=%d: %v", id, err)
			return fmt.Errorf("%w: Confirm - repository error: %v", ErrInternal, err)
		}

		confirmed = appt
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Confirm: appointment id=%d is now %s", id, confirmed.Status)
	return models.FromDomainAppointment(confirmed), nil
}
