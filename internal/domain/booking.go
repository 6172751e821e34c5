package domain

import "time"

// BookingStatus represents the status of a booking
type BookingStatus string

// StatusConfirmed is the only status a stored booking has; cancellation deletes the record
const StatusConfirmed BookingStatus = "confirmed"

// Booking represents a citizen's appointment at a service center
type Booking struct {
	ID string // UUIDv7

	// Contact data
	Name    string
	Phone   string
	Email   *string
	Address *string

	ServiceType string
	Location
	Date   time.Time // calendar day
	Slot   string
	Status BookingStatus

	CreatedAt time.Time
}

// BookingsFilter фильтр для списка бронирований администратора
type BookingsFilter struct {
	District    *string
	Taluk       *string
	Center      *string
	Date        *time.Time
	ServiceType *string
}

// Matches returns true if the booking satisfies every set field of the filter
func (f BookingsFilter) Matches(b *Booking) bool {
	if f.District != nil && b.District != *f.District {
		return false
	}
	if f.Taluk != nil && b.Taluk != *f.Taluk {
		return false
	}
	if f.Center != nil && b.Center != *f.Center {
		return false
	}
	if f.Date != nil && !b.Date.Equal(TruncateDay(*f.Date)) {
		return false
	}
	if f.ServiceType != nil && b.ServiceType != *f.ServiceType {
		return false
	}
	return true
}

// BookingStats aggregate numbers for the admin dashboard
type BookingStats struct {
	Total     int
	OnDate    int
	ByService map[string]int
}
