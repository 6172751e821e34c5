package enable_recurring_slots

import (
	"github.com/m04kA/SMC-CenterBooking/internal/api/handlers"
	"github.com/m04kA/SMC-CenterBooking/internal/service/slots/models"
)

// EnableRecurringRequest HTTP request model
type EnableRecurringRequest struct {
	District string   `json:"district"`
	Taluk    string   `json:"taluk,omitempty"`
	Center   string   `json:"center,omitempty"`
	RRule    string   `json:"rrule"` // "FREQ=WEEKLY;BYDAY=MO,WE,FR"
	Slots    []string `json:"slots"`
	From     string   `json:"from,omitempty"`  // "2025-10-15", по умолчанию сегодня
	Until    string   `json:"until,omitempty"` // по умолчанию горизонт планирования
}

// ToServiceRequest конвертирует в модель сервиса
func (r *EnableRecurringRequest) ToServiceRequest() (*models.RecurringRequest, error) {
	from, err := handlers.ParseOptionalDate(r.From)
	if err != nil {
		return nil, err
	}
	until, err := handlers.ParseOptionalDate(r.Until)
	if err != nil {
		return nil, err
	}

	return &models.RecurringRequest{
		District: r.District,
		Taluk:    r.Taluk,
		Center:   r.Center,
		RRule:    r.RRule,
		Slots:    r.Slots,
		From:     from,
		Until:    until,
	}, nil
}
