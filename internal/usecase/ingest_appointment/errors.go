package ingest_appointment

import "errors"

var (
	// ErrInvalidInput возвращается при отсутствии обязательных полей
	ErrInvalidInput = errors.New("ingest_appointment: invalid payload")

	// ErrMalformedTimestamp возвращается, когда datetime не удалось разобрать
	ErrMalformedTimestamp = errors.New("ingest_appointment: malformed datetime")

	// ErrSlotTaken возвращается, когда на это время уже есть запись
	ErrSlotTaken = errors.New("ingest_appointment: slot is already booked")

	// ErrPersistence возвращается при ошибках хранилища
	ErrPersistence = errors.New("ingest_appointment: persistence error")
)
