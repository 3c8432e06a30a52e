package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	serviceRepo "github.com/m04kA/SMC-BarberBooking/internal/infra/storage/service"
	"github.com/m04kA/SMC-BarberBooking/internal/service/catalog/models"
)

// Service сервис каталога услуг
type Service struct {
	serviceRepo ServiceRepository
	txManager   TransactionManager
	logger      Logger
}

// NewService создает новый экземпляр сервиса каталога
func NewService(serviceRepo ServiceRepository, txManager TransactionManager, logger Logger) *Service {
	return &Service{
		serviceRepo: serviceRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

// List возвращает все услуги каталога
func (s *Service) List(ctx context.Context) (*models.ServiceListResponse, error) {
	services, err := s.serviceRepo.List(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d services", len(services))
	return models.FromDomainServiceList(services), nil
}

// SeedDefaults заполняет пустой каталог услугами по умолчанию
// Возвращает количество добавленных услуг. Непустой каталог не изменяется
func (s *Service) SeedDefaults(ctx context.Context) (int, error) {
	created := 0

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		// 1. Проверяем, что каталог пуст
		count, err := s.serviceRepo.Count(txCtx)
		if err != nil {
			return fmt.Errorf("%w: SeedDefaults - count services: %v", ErrInternal, err)
		}
		if count > 0 {
			s.logger.Info("SeedDefaults: catalog already has %d services, skipping", count)
			return nil
		}

		// 2. Добавляем услуги по умолчанию
		for _, def := range domain.DefaultServices {
			svc := def
			if _, err := s.serviceRepo.Create(txCtx, &svc); err != nil {
				return err
			}
			created++
		}
		return nil
	})

	if err != nil {
		// Каталог заполнил параллельно запущенный экземпляр
		if errors.Is(err, serviceRepo.ErrDuplicateService) {
			s.logger.Warn("SeedDefaults: catalog was seeded concurrently: %v", err)
			return 0, nil
		}
		s.logger.Error("SeedDefaults: failed to seed catalog: %v", err)
		if errors.Is(err, ErrInternal) {
			return 0, err
		}
		return 0, fmt.Errorf("%w: SeedDefaults - create service: %v", ErrInternal, err)
	}

	if created > 0 {
		s.logger.Info("SeedDefaults: seeded %d default services", created)
	}
	return created, nil
}
