package get_available_slots

import "github.com/m04kA/SMC-CenterBooking/internal/domain"

// computeAvailable включенные слоты минус занятые, в порядке каталога,
// усеченные до оставшейся вместимости max(capacity - booked, 0)
func computeAvailable(catalog *domain.SlotCatalog, enabled []string, booked []*domain.Booking, capacity int) []string {
	taken := make(map[string]struct{}, len(booked))
	for _, b := range booked {
		taken[b.Slot] = struct{}{}
	}

	remaining := capacity - len(booked)
	if remaining <= 0 {
		return []string{}
	}

	available := make([]string, 0, len(enabled))
	for _, slot := range catalog.Sort(enabled) {
		if _, ok := taken[slot]; ok {
			continue
		}
		available = append(available, slot)
		if len(available) == remaining {
			break
		}
	}
	return available
}
