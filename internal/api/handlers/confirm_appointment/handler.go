package confirm_appointment

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-BarberBooking/internal/api/handlers"
	"github.com/m04kA/SMC-BarberBooking/internal/service/appointments"
)

const (
	msgInvalidID     = "invalid appointment id"
	msgNotFound      = "appointment not found"
	msgCannotConfirm = "only pending appointments can be confirmed"
)

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /admin/appointments/{appointmentId}/confirm
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	idStr := mux.Vars(r)["appointmentId"]

	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		h.logger.Warn("PATCH /admin/appointments/{id}/confirm - Invalid appointment ID: %q", idStr)
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	appt, err := h.service.Confirm(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrAppointmentNotFound):
			h.logger.Warn("PATCH /admin/appointments/{id}/confirm - Appointment not found: id=%d", id)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, appointments.ErrCannotConfirm):
			h.logger.Warn("PATCH /admin/appointments/{id}/confirm - Cannot confirm: id=%d", id)
			handlers.RespondConflict(w, msgCannotConfirm)

		case errors.Is(err, appointments.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidID)

		default:
			h.logger.Error("PATCH /admin/appointments/{id}/confirm - Failed to confirm: id=%d, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /admin/appointments/{id}/confirm - Appointment confirmed: id=%d", id)
	handlers.RespondJSON(w, http.StatusOK, appt)
}
