package get_booked_slots

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-BarberBooking/internal/api/handlers"
	getBookedSlots "github.com/m04kA/SMC-BarberBooking/internal/usecase/get_booked_slots"
)

const (
	msgMissingBounds = "Both start and end query parameters are required."
	msgMalformed     = "Invalid start or end date. Use ISO 8601."
)

type Handler struct {
	useCase GetBookedSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetBookedSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/available-slots?start=...&end=...
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &getBookedSlots.Request{
		Start: query.Get("start"),
		End:   query.Get("end"),
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, getBookedSlots.ErrMissingRangeBounds):
			h.logger.Warn("GET /api/available-slots - Missing range bounds: start=%q, end=%q", req.Start, req.End)
			handlers.RespondBadRequest(w, msgMissingBounds)

		case errors.Is(err, getBookedSlots.ErrMalformedTimestamp):
			h.logger.Warn("GET /api/available-slots - Malformed range: start=%q, end=%q", req.Start, req.End)
			handlers.RespondBadRequest(w, msgMalformed)

		default:
			h.logger.Error("GET /api/available-slots - Failed to get booked slots: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	events := FromUseCaseResponse(result)

	h.logger.Info("GET /api/available-slots - Returned %d booked slots", len(events))
	handlers.RespondJSON(w, http.StatusOK, events)
}
