package get_booked_slots

import "time"

// Request диапазон календаря
type Request struct {
	Start string // ISO 8601, включительно
	End   string // ISO 8601, включительно
}

// Response занятые интервалы в диапазоне
type Response struct {
	Start time.Time
	End   time.Time
	Slots []Slot
}

// Slot занятый интервал [Start, End)
type Slot struct {
	Start time.Time
	End   time.Time
}
