package get_available_slots

import (
	"github.com/m04kA/SMC-CenterBooking/internal/api/handlers"
	"github.com/m04kA/SMC-CenterBooking/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-CenterBooking/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	District    string   `json:"district"`
	Taluk       string   `json:"taluk"`
	Center      string   `json:"center"`
	Date        string   `json:"date"`
	Slots       []string `json:"slots"`
	Capacity    int      `json:"capacity"`
	BookedCount int      `json:"bookedCount"`
	Configured  bool     `json:"configured"`
	Granularity string   `json:"granularity,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := resp.Slots
	if slots == nil {
		slots = []string{}
	}

	return &AvailableSlotsResponse{
		District:    resp.Location.District,
		Taluk:       resp.Location.Taluk,
		Center:      resp.Location.Center,
		Date:        resp.Date.Format(domain.DateFormat),
		Slots:       slots,
		Capacity:    resp.Capacity,
		BookedCount: resp.BookedCount,
		Configured:  resp.Configured,
		Granularity: string(resp.Granularity),
	}
}

// ToUseCaseRequest создает запрос use case из query параметров
func ToUseCaseRequest(loc domain.Location, dateStr string) (*getAvailableSlots.Request, error) {
	date, err := handlers.ParseDate(dateStr)
	if err != nil {
		return nil, err
	}

	return &getAvailableSlots.Request{
		Location: loc,
		Date:     date,
	}, nil
}
