package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-BarberBooking/internal/api/handlers"
	createBooking "github.com/m04kA/SMC-BarberBooking/internal/usecase/create_booking"
)

const (
	msgBooked            = "Appointment booked successfully! A confirmation email has been sent."
	msgBookedEmailFailed = "Appointment booked successfully! However, there was an issue sending the confirmation email."
	msgInvalidForm       = "Invalid form submission."
	msgFixErrors         = "Please correct the errors below."
	msgInvalidDate       = "Invalid date format. Use YYYY-MM-DD HH:MM."
	msgOutsideHours      = "Appointments are available between 8:00 AM and 5:00 PM."
	msgSlotTaken         = "This time slot is already booked. Please choose another time."
	msgUnknownService    = "The selected service does not exist."
	msgPersistence       = "We could not save your appointment. Please try again."
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /booking
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	if err := handlers.ParseForm(w, r); err != nil {
		h.logger.Warn("POST /booking - Invalid form: %v", err)
		handlers.RespondBadRequest(w, msgInvalidForm)
		return
	}

	form := formFromValues(r.PostForm)

	result, err := h.useCase.Execute(r.Context(), form.ToUseCaseRequest())
	if err != nil {
		var validationErr *createBooking.ValidationError

		switch {
		case errors.As(err, &validationErr):
			h.logger.Warn("POST /booking - Validation failed: %v", err)
			h.respondFormError(w, http.StatusBadRequest, msgFixErrors, validationErr.Fields, form)

		case errors.Is(err, createBooking.ErrMalformedTimestamp):
			h.logger.Warn("POST /booking - Malformed date: %q", form.Date)
			h.respondFormError(w, http.StatusBadRequest, msgFixErrors, map[string]string{fieldDate: msgInvalidDate}, form)

		case errors.Is(err, createBooking.ErrOutsideBusinessHours):
			h.logger.Warn("POST /booking - Outside business hours: %q", form.Date)
			h.respondFormError(w, http.StatusBadRequest, msgOutsideHours, map[string]string{fieldDate: msgOutsideHours}, form)

		case errors.Is(err, createBooking.ErrSlotTaken):
			h.logger.Warn("POST /booking - Slot taken: %q", form.Date)
			h.respondFormError(w, http.StatusConflict, msgSlotTaken, map[string]string{fieldDate: msgSlotTaken}, form)

		case errors.Is(err, createBooking.ErrUnknownService):
			h.logger.Warn("POST /booking - Unknown service: %q", form.Service)
			h.respondFormError(w, http.StatusNotFound, msgUnknownService, map[string]string{fieldService: msgUnknownService}, form)

		default:
			h.logger.Error("POST /booking - Failed to create appointment: %v", err)
			h.respondFormError(w, http.StatusInternalServerError, msgPersistence, nil, form)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("POST /booking - Appointment created: id=%d, outcome=%s", result.ID, result.Outcome)
	handlers.RespondJSON(w, http.StatusCreated, response)
}

func (h *Handler) respondFormError(w http.ResponseWriter, status int, message string, fields map[string]string, form BookingForm) {
	handlers.RespondJSON(w, status, BookingErrorResponse{
		Code:    status,
		Message: message,
		Fields:  fields,
		Input:   form,
	})
}
