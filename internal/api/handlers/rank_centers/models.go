package rank_centers

import (
	"math"
	"net/url"
	"strings"

	"github.com/m04kA/SMC-CenterBooking/internal/api/handlers"
	rankCenters "github.com/m04kA/SMC-CenterBooking/internal/usecase/rank_centers"
	"github.com/m04kA/SMC-CenterBooking/pkg/geo"
)

// RankedCenterResponse HTTP response model
type RankedCenterResponse struct {
	District   string   `json:"district"`
	Taluk      string   `json:"taluk"`
	Center     string   `json:"center"`
	DistanceKm *float64 `json:"distanceKm"` // null - координаты центра неизвестны
	Distance   string   `json:"distance"`   // "2.5 km" или "N/A"
}

// ToUseCaseRequest создает запрос use case из query параметров
func ToUseCaseRequest(query url.Values) (*rankCenters.Request, error) {
	lat, err := handlers.QueryFloat(query, "lat")
	if err != nil {
		return nil, err
	}
	lng, err := handlers.QueryFloat(query, "lng")
	if err != nil {
		return nil, err
	}

	return &rankCenters.Request{
		Point:    geo.Point{Lat: lat, Lng: lng},
		District: strings.TrimSpace(query.Get("district")),
		Taluk:    strings.TrimSpace(query.Get("taluk")),
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response.
// Расстояние округляется до 0.1 км, как в подписи.
func FromUseCaseResponse(resp *rankCenters.Response) []RankedCenterResponse {
	out := make([]RankedCenterResponse, 0, len(resp.Results))
	for _, r := range resp.Results {
		item := RankedCenterResponse{
			District: r.Center.District,
			Taluk:    r.Center.Taluk,
			Center:   r.Center.Center,
			Distance: r.Label(),
		}
		if r.DistanceKm != nil {
			km := math.Round(*r.DistanceKm*10) / 10
			item.DistanceKm = &km
		}
		out = append(out, item)
	}
	return out
}
