package rank_centers

import (
	"sort"

	"github.com/m04kA/SMC-CenterBooking/internal/domain"
	"github.com/m04kA/SMC-CenterBooking/pkg/geo"
)

// Distance расстояние от точки до центра, nil если координаты центра неизвестны
func Distance(point geo.Point, center domain.Center) *float64 {
	if !center.HasCoordinate() {
		return nil
	}
	km := geo.HaversineKm(point, *center.Coordinate)
	return &km
}

// Rank сортирует центры по расстоянию до точки.
// Сортировка устойчивая: равные расстояния и центры без координат сохраняют входной порядок.
func Rank(point geo.Point, centers []domain.Center) []domain.DistanceResult {
	results := make([]domain.DistanceResult, len(centers))
	for i, c := range centers {
		results[i] = domain.DistanceResult{
			Center:     c,
			DistanceKm: Distance(point, c),
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].SortKey() < results[j].SortKey()
	})

	return results
}
