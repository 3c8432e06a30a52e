package ingest_appointment

import (
	"context"

	ingestAppointment "github.com/m04kA/SMC-BarberBooking/internal/usecase/ingest_appointment"
)

type IngestAppointmentUseCase interface {
	Execute(ctx context.Context, req *ingestAppointment.Request) (*ingestAppointment.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
