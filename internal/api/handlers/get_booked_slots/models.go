package get_booked_slots

import (
	"time"

	getBookedSlots "github.com/m04kA/SMC-BarberBooking/internal/usecase/get_booked_slots"
)

// Оформление занятого слота в календаре
const (
	eventTitle   = "Booked"
	eventDisplay = "background"
	eventColor   = "#ff9f89"
)

// CalendarEvent занятый интервал в формате событий календаря
type CalendarEvent struct {
	Title   string `json:"title"`
	Start   string `json:"start"`
	End     string `json:"end"`
	Display string `json:"display"`
	Color   string `json:"color"`
}

// FromUseCaseResponse конвертирует ответ use case в список событий
func FromUseCaseResponse(resp *getBookedSlots.Response) []CalendarEvent {
	events := make([]CalendarEvent, 0, len(resp.Slots))
	for _, slot := range resp.Slots {
		events = append(events, CalendarEvent{
			Title:   eventTitle,
			Start:   slot.Start.Format(time.RFC3339),
			End:     slot.End.Format(time.RFC3339),
			Display: eventDisplay,
			Color:   eventColor,
		})
	}
	return events
}
