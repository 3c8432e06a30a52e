package get_booked_slots

import (
	"context"
	"fmt"
	"time"
)

// UseCase use case получения занятых слотов для календаря
type UseCase struct {
	appointmentRepo AppointmentRepository
	normalizer      Normalizer
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(appointmentRepo AppointmentRepository, normalizer Normalizer, logger Logger) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		normalizer:      normalizer,
		logger:          logger,
	}
}

// Execute возвращает все записи с date в [start, end] в виде интервалов фиксированной ширины
// Только чтение: повторный вызов без записей между ними дает тот же результат
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetBookedSlots: start=%q, end=%q", req.Start, req.End)

	// 1. Проверяем наличие границ
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetBookedSlots: %v", err)
		return nil, err
	}

	// 2. Нормализуем границы
	start, err := uc.normalizer.Normalize(req.Start)
	if err != nil {
		uc.logger.Warn("GetBookedSlots: malformed start %q: %v", req.Start, err)
		return nil, fmt.Errorf("%w: start: %v", ErrMalformedTimestamp, err)
	}
	end, err := uc.normalizer.Normalize(req.End)
	if err != nil {
		uc.logger.Warn("GetBookedSlots: malformed end %q: %v", req.End, err)
		return nil, fmt.Errorf("%w: end: %v", ErrMalformedTimestamp, err)
	}

	resp := &Response{Start: start, End: end, Slots: []Slot{}}

	// 3. Перевернутый диапазон - пустой результат без обращения к БД
	if end.Before(start) {
		uc.logger.Info("GetBookedSlots: inverted range, returning no slots")
		return resp, nil
	}

	// 4. Получаем записи
	appointments, err := uc.appointmentRepo.GetInRange(ctx, start, end)
	if err != nil {
		uc.logger.Error("GetBookedSlots: failed to get appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	// 5. Проецируем записи на интервалы календаря
	for _, appt := range appointments {
		slot := appt.Slot()
		resp.Slots = append(resp.Slots, Slot{Start: slot.Start, End: slot.End})
	}

	uc.logger.Info("GetBookedSlots: found %d booked slots between %s and %s",
		len(resp.Slots), start.Format(time.RFC3339), end.Format(time.RFC3339))
	return resp, nil
}
