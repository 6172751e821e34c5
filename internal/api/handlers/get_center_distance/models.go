package get_center_distance

import (
	"math"

	"github.com/m04kA/SMC-CenterBooking/internal/domain"
)

// CenterDistanceResponse расстояние до выбранного центра
type CenterDistanceResponse struct {
	District   string   `json:"district"`
	Taluk      string   `json:"taluk"`
	Center     string   `json:"center"`
	DistanceKm *float64 `json:"distanceKm"` // null - координаты центра неизвестны
	Distance   string   `json:"distance"`
}

func FromDomainResult(r domain.DistanceResult) CenterDistanceResponse {
	resp := CenterDistanceResponse{
		District: r.Center.District,
		Taluk:    r.Center.Taluk,
		Center:   r.Center.Center,
		Distance: r.Label(),
	}
	if r.DistanceKm != nil {
		km := math.Round(*r.DistanceKm*10) / 10
		resp.DistanceKm = &km
	}
	return resp
}
