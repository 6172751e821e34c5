package domain

import (
	"strings"
	"time"

	"github.com/m04kA/SMC-CenterBooking/pkg/geo"
)

// Location identifies a service center: district, taluk (sub-district) and center name
type Location struct {
	District string
	Taluk    string
	Center   string
}

// IsComplete returns true if all three parts are present
func (l Location) IsComplete() bool {
	return strings.TrimSpace(l.District) != "" &&
		strings.TrimSpace(l.Taluk) != "" &&
		strings.TrimSpace(l.Center) != ""
}

// Normalize trims surrounding whitespace from every part.
// All entry points compare locations only in this form.
func (l Location) Normalize() Location {
	return Location{
		District: strings.TrimSpace(l.District),
		Taluk:    strings.TrimSpace(l.Taluk),
		Center:   strings.TrimSpace(l.Center),
	}
}

func (l Location) String() string {
	return l.District + "/" + l.Taluk + "/" + l.Center
}

// Center represents a physical service center
type Center struct {
	Location
	Coordinate *geo.Point // nil = coordinates unknown
	Capacity   int        // 0 = use the service default
}

// HasCoordinate returns true if the center can be placed on a map
func (c *Center) HasCoordinate() bool {
	return c.Coordinate != nil
}

// LockKey is the exclusion key shared by allocations and enablement changes.
// Anything that can affect availability of a center on a date maps to the same key.
func LockKey(district string, date time.Time) string {
	return district + "|" + date.Format(DateFormat)
}

// TruncateDay drops the time of day, keeping the calendar date in UTC
func TruncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
