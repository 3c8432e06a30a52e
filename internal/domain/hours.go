package domain

import "time"

// BusinessHours half-open range of bookable hours [OpenHour, CloseHour)
type BusinessHours struct {
	OpenHour  int
	CloseHour int
}

// ShopHours are the opening hours of the shop, every day of the week
var ShopHours = BusinessHours{OpenHour: DefaultOpenHour, CloseHour: DefaultCloseHour}

// IsBookable returns true if the local hour of t is within business hours
// t must already be in the shop timezone
func (h BusinessHours) IsBookable(t time.Time) bool {
	hour := t.Hour()
	return hour >= h.OpenHour && hour < h.CloseHour
}
