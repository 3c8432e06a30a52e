package domain

import "time"

// Shop constants
const (
	ShopTimezone     = "America/Los_Angeles"
	DefaultOpenHour  = 8
	DefaultCloseHour = 17
)

// SlotDisplayDuration fixed width of a booked slot on the calendar,
// independent of the service duration
const SlotDisplayDuration = time.Hour

// Business validation constants
const (
	MinClientNameLength  = 2
	MaxClientNameLength  = 100
	MaxClientEmailLength = 254
	MaxServiceNameLength = 100
)

// Time format constants
const (
	DateFormat     = "2006-01-02"
	DateTimeFormat = "2006-01-02 15:04"
)

// Entry paths of an appointment
const (
	SourceForm    = "form"
	SourceWebhook = "webhook"
)
