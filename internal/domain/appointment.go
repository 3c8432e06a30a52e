package domain

import (
	"errors"
	"fmt"
	"time"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
)

// ErrInvalidTransition is returned when a status change is not allowed
var ErrInvalidTransition = errors.New("domain: invalid appointment status transition")

// IsValid returns true for a known status
func (s AppointmentStatus) IsValid() bool {
	return s == StatusPending || s == StatusConfirmed
}

// CanTransitionTo returns true if the status may change to next
func (s AppointmentStatus) CanTransitionTo(next AppointmentStatus) bool {
	return s == StatusPending && next == StatusConfirmed
}

// Appointment represents a booked slot at the shop
type Appointment struct {
	ID          int64
	ClientName  string
	ClientEmail string
	Service     string    // Denormalized service name, copied at booking time
	Date        time.Time // Start of the appointment, normalized to the shop timezone
	Status      AppointmentStatus
	CreatedAt   time.Time
}

// Confirm moves a pending appointment to confirmed
func (a *Appointment) Confirm() error {
	if !a.Status.CanTransitionTo(StatusConfirmed) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, a.Status, StatusConfirmed)
	}
	a.Status = StatusConfirmed
	return nil
}

// IsConfirmed returns true if the appointment is confirmed
func (a *Appointment) IsConfirmed() bool {
	return a.Status == StatusConfirmed
}

// Slot projects the appointment onto a calendar interval of fixed display width
func (a *Appointment) Slot() BookedSlot {
	return BookedSlot{
		Start: a.Date,
		End:   a.Date.Add(SlotDisplayDuration),
	}
}
