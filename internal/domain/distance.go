package domain

import (
	"fmt"
	"math"
)

// DistanceResult distance from a requester to a candidate center. Not persisted.
type DistanceResult struct {
	Center     Center
	DistanceKm *float64 // nil = center has no coordinates
}

// SortKey orders unknown distances after every known one
func (r DistanceResult) SortKey() float64 {
	if r.DistanceKm == nil {
		return math.Inf(1)
	}
	return *r.DistanceKm
}

// Label human-readable distance: "2.5 km" or "N/A"
func (r DistanceResult) Label() string {
	if r.DistanceKm == nil {
		return "N/A"
	}
	return fmt.Sprintf("%.1f km", *r.DistanceKm)
}
