package list_centers

import "github.com/m04kA/SMC-CenterBooking/internal/domain"

// CenterResponse HTTP response model
type CenterResponse struct {
	District string   `json:"district"`
	Taluk    string   `json:"taluk"`
	Center   string   `json:"center"`
	Lat      *float64 `json:"lat,omitempty"`
	Lng      *float64 `json:"lng,omitempty"`
	Capacity int      `json:"capacity"`
}

// FromDomainCenter конвертирует центр справочника в HTTP response
func FromDomainCenter(c domain.Center, capacity int) CenterResponse {
	resp := CenterResponse{
		District: c.District,
		Taluk:    c.Taluk,
		Center:   c.Center,
		Capacity: capacity,
	}
	if c.Coordinate != nil {
		lat, lng := c.Coordinate.Lat, c.Coordinate.Lng
		resp.Lat = &lat
		resp.Lng = &lng
	}
	return resp
}
