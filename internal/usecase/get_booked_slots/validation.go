package get_booked_slots

import "strings"

// validateRequest проверяет наличие обеих границ диапазона
func validateRequest(req *Request) error {
	if strings.TrimSpace(req.Start) == "" || strings.TrimSpace(req.End) == "" {
		return ErrMissingRangeBounds
	}
	return nil
}
