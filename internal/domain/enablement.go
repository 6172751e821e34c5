package domain

import (
	"strings"
	"time"
)

// Granularity level at which an administrator enabled slots
type Granularity string

const (
	GranularityDistrict Granularity = "district"
	GranularityTaluk    Granularity = "taluk"
	GranularityCenter   Granularity = "center"
)

// EnablementKey scope of an enablement record.
// Supports hierarchical configuration:
// 1. Specific center (district, taluk, center)
// 2. Whole taluk (district, taluk, "")
// 3. Whole district (district, "", "")
type EnablementKey struct {
	District string
	Taluk    string
	Center   string
}

// IsValid returns true if the key describes one of the three levels
func (k EnablementKey) IsValid() bool {
	if strings.TrimSpace(k.District) == "" {
		return false
	}
	if k.Center != "" && k.Taluk == "" {
		return false
	}
	return true
}

// Normalize trims surrounding whitespace, same as Location.Normalize
func (k EnablementKey) Normalize() EnablementKey {
	return EnablementKey{
		District: strings.TrimSpace(k.District),
		Taluk:    strings.TrimSpace(k.Taluk),
		Center:   strings.TrimSpace(k.Center),
	}
}

func (k EnablementKey) Granularity() Granularity {
	switch {
	case k.Center != "":
		return GranularityCenter
	case k.Taluk != "":
		return GranularityTaluk
	default:
		return GranularityDistrict
	}
}

// KeysFor returns the keys that may hold enablement for a location, most specific first
func KeysFor(loc Location) []EnablementKey {
	return []EnablementKey{
		{District: loc.District, Taluk: loc.Taluk, Center: loc.Center},
		{District: loc.District, Taluk: loc.Taluk},
		{District: loc.District},
	}
}

// SlotEnablement set of slots an administrator opened for booking on a date.
// A record with an empty set still counts as configured.
type SlotEnablement struct {
	Key       EnablementKey
	Date      time.Time
	Slots     []string // canonical catalog order, no duplicates
	UpdatedAt time.Time
}

// Has returns true if the slot is enabled
func (e *SlotEnablement) Has(slot string) bool {
	for _, s := range e.Slots {
		if s == slot {
			return true
		}
	}
	return false
}
