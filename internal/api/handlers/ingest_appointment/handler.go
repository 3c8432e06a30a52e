package ingest_appointment

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-BarberBooking/internal/api/handlers"
	ingestAppointment "github.com/m04kA/SMC-BarberBooking/internal/usecase/ingest_appointment"
)

const (
	msgInvalidBody     = "invalid JSON payload"
	msgInvalidPayload  = "email and datetime are required, email must be valid"
	msgMalformedDate   = "invalid datetime, expected ISO 8601"
	msgSlotTaken       = "time slot is already booked"
	msgPersistence     = "failed to save appointment, please retry"
	msgNotificationErr = "appointment saved, but notification emails could not be sent"
)

type Handler struct {
	useCase IngestAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase IngestAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /webhook/appointment
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req WebhookRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /webhook/appointment - Invalid request body: %v", err)
		respondFailure(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		switch {
		case errors.Is(err, ingestAppointment.ErrInvalidInput):
			h.logger.Warn("POST /webhook/appointment - Invalid payload: %v", err)
			respondFailure(w, http.StatusBadRequest, msgInvalidPayload)

		case errors.Is(err, ingestAppointment.ErrMalformedTimestamp):
			h.logger.Warn("POST /webhook/appointment - Malformed datetime: %q", req.DateTime)
			respondFailure(w, http.StatusBadRequest, msgMalformedDate)

		case errors.Is(err, ingestAppointment.ErrSlotTaken):
			h.logger.Warn("POST /webhook/appointment - Slot taken: %q", req.DateTime)
			respondFailure(w, http.StatusConflict, msgSlotTaken)

		default:
			h.logger.Error("POST /webhook/appointment - Failed to save appointment: %v", err)
			respondFailure(w, http.StatusInternalServerError, msgPersistence)
		}
		return
	}

	response := WebhookResponse{
		Status:        statusSuccess,
		AppointmentID: result.ID,
	}
	if result.NotificationError != nil {
		response.Warning = msgNotificationErr
	}

	h.logger.Info("POST /webhook/appointment - Appointment ingested: id=%d", result.ID)
	handlers.RespondJSON(w, http.StatusOK, response)
}

func respondFailure(w http.ResponseWriter, status int, message string) {
	handlers.RespondJSON(w, status, WebhookResponse{Status: statusError, Message: message})
}
