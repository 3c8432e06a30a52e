package get_booked_slots

import "errors"

var (
	// ErrMissingRangeBounds возвращается, когда не передан start или end
	ErrMissingRangeBounds = errors.New("get_booked_slots: start and end are required")

	// ErrMalformedTimestamp возвращается, когда границу диапазона не удалось разобрать
	ErrMalformedTimestamp = errors.New("get_booked_slots: malformed range bound")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_booked_slots: internal error")
)
