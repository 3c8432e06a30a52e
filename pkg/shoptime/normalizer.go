// Package shoptime converts incoming timestamps into the shop's local time.
package shoptime

import (
	"errors"
	"fmt"
	"strings"
	"time"

	// tzdata встраивается, чтобы America/Los_Angeles работал и в образах без zoneinfo
	_ "time/tzdata"
)

// Resolution precision of a normalized timestamp. Two requests within the
// same minute refer to the same slot.
const Resolution = time.Minute

// ErrMalformedTimestamp is returned when the input is not a valid date-time.
var ErrMalformedTimestamp = errors.New("shoptime: malformed timestamp")

// zonedLayouts carry their own offset or a literal UTC marker.
var zonedLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04:05Z0700",
	"2006-01-02T15:04Z0700",
	"2006-01-02T15:04:05Z07",
}

// localLayouts have no offset and are read as shop wall-clock time.
var localLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// Normalizer converts timestamps into a fixed location.
type Normalizer struct {
	loc *time.Location
}

// NewNormalizer returns a normalizer for loc.
func NewNormalizer(loc *time.Location) *Normalizer {
	return &Normalizer{loc: loc}
}

// Load returns a normalizer for an IANA timezone name.
func Load(name string) (*Normalizer, error) {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("shoptime: load location %q: %w", name, err)
	}
	return NewNormalizer(loc), nil
}

// Location returns the shop location.
func (n *Normalizer) Location() *time.Location {
	return n.loc
}

// Normalize parses raw and returns it in the shop location, truncated to
// Resolution.
func (n *Normalizer) Normalize(raw string) (time.Time, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return time.Time{}, fmt.Errorf("%w: empty value", ErrMalformedTimestamp)
	}

	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return n.In(t), nil
		}
	}

	for _, layout := range localLayouts {
		t, err := time.ParseInLocation(layout, value, n.loc)
		if err != nil {
			continue
		}
		if !sameWallClock(t, layout, value) {
			return time.Time{}, fmt.Errorf("%w: %q does not exist in %s", ErrMalformedTimestamp, raw, n.loc)
		}
		return n.In(t), nil
	}

	return time.Time{}, fmt.Errorf("%w: %q", ErrMalformedTimestamp, raw)
}

// sameWallClock reports whether t still shows the wall clock written in value.
// Times inside a DST gap are shifted by ParseInLocation and fail this check.
func sameWallClock(t time.Time, layout, value string) bool {
	wall, err := time.Parse(layout, value)
	if err != nil {
		return false
	}
	y1, m1, d1 := t.Date()
	y2, m2, d2 := wall.Date()
	return y1 == y2 && m1 == m2 && d1 == d2 &&
		t.Hour() == wall.Hour() && t.Minute() == wall.Minute() && t.Second() == wall.Second()
}

// In converts an instant to the shop location at Resolution.
func (n *Normalizer) In(t time.Time) time.Time {
	return t.In(n.loc).Truncate(Resolution)
}

// Now returns the current shop-local time.
func (n *Normalizer) Now() time.Time {
	return time.Now().In(n.loc)
}
