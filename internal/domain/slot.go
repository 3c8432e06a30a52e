package domain

import "time"

// BookedSlot represents an occupied interval shown on the booking calendar
type BookedSlot struct {
	Start time.Time
	End   time.Time
}

// Duration returns the width of the slot
func (s BookedSlot) Duration() time.Duration {
	return s.End.Sub(s.Start)
}

// Contains returns true if t falls within [Start, End)
func (s BookedSlot) Contains(t time.Time) bool {
	return !t.Before(s.Start) && t.Before(s.End)
}
