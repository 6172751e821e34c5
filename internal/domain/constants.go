package domain

// Default values
const (
	DefaultCapacity          = 25 // bookings per center per day
	DefaultSlotLengthMinutes = 30
	DefaultDayStartMinutes   = 9 * 60  // 09:00 AM
	DefaultDayEndMinutes     = 21 * 60 // 09:00 PM, inclusive
)

// Business validation constants
const (
	MaxNameLength    = 200
	MaxAddressLength = 500
)

// Format constants
const (
	DateFormat      = "2006-01-02" // YYYY-MM-DD
	SlotLabelFormat = "03:04 PM"   // 09:30 AM
)
