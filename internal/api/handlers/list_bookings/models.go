package list_bookings

import (
	"net/url"
	"strings"

	"github.com/m04kA/SMC-CenterBooking/internal/api/handlers"
	"github.com/m04kA/SMC-CenterBooking/internal/service/bookings/models"
)

// ToServiceRequest формирует запрос к сервису из query параметров.
// Все фильтры опциональны.
func ToServiceRequest(query url.Values) (*models.ListBookingsRequest, error) {
	req := &models.ListBookingsRequest{
		District:    optional(query, "district"),
		Taluk:       optional(query, "taluk"),
		Center:      optional(query, "center"),
		ServiceType: optional(query, "serviceType"),
	}

	if dateStr := query.Get("date"); dateStr != "" {
		date, err := handlers.ParseDate(dateStr)
		if err != nil {
			return nil, err
		}
		req.Date = &date
	}

	return req, nil
}

func optional(query url.Values, name string) *string {
	v := strings.TrimSpace(query.Get(name))
	if v == "" {
		return nil
	}
	return &v
}
