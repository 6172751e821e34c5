package set_slot_enablement

import (
	"github.com/m04kA/SMC-CenterBooking/internal/api/handlers"
	"github.com/m04kA/SMC-CenterBooking/internal/service/slots/models"
)

// SetSlotEnablementRequest HTTP request model
type SetSlotEnablementRequest struct {
	District string `json:"district"`
	Taluk    string `json:"taluk,omitempty"`
	Center   string `json:"center,omitempty"`
	Date     string `json:"date"` // "2025-10-15"
	Slot     string `json:"slot"` // "09:30 AM"
	Enabled  *bool  `json:"enabled"`
}

// ToServiceRequest конвертирует в модель сервиса.
// Отсутствующий enabled считается включением.
func (r *SetSlotEnablementRequest) ToServiceRequest() (*models.SetEnabledRequest, error) {
	date, err := handlers.ParseDate(r.Date)
	if err != nil {
		return nil, err
	}

	enabled := true
	if r.Enabled != nil {
		enabled = *r.Enabled
	}

	return &models.SetEnabledRequest{
		District: r.District,
		Taluk:    r.Taluk,
		Center:   r.Center,
		Date:     date,
		Slot:     r.Slot,
		Enabled:  enabled,
	}, nil
}
