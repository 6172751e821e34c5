package rank_centers

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-CenterBooking/internal/domain"
	"github.com/m04kA/SMC-CenterBooking/pkg/geo"
)

// UseCase use case для ранжирования центров по удаленности от заявителя.
// Результат носит рекомендательный характер и не влияет на бронирование.
type UseCase struct {
	directory CenterDirectory
	logger    Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(directory CenterDirectory, logger Logger) *UseCase {
	return &UseCase{
		directory: directory,
		logger:    logger,
	}
}

// Execute ранжирует центры талука (или всего района) по расстоянию
func (uc *UseCase) Execute(req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if req != nil {
		req.District = strings.TrimSpace(req.District)
		req.Taluk = strings.TrimSpace(req.Taluk)
	}
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RankCenters: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем центры из справочника
	centers := uc.directory.Centers(req.District, req.Taluk)

	// 3. Ранжируем
	results := Rank(req.Point, centers)

	uc.logger.Info("RankCenters: district=%s, taluk=%s, point=(%.4f, %.4f): %d centers ranked",
		req.District, req.Taluk, req.Point.Lat, req.Point.Lng, len(results))

	return &Response{Results: results}, nil
}

// DistanceTo расстояние от заявителя до выбранного центра
func (uc *UseCase) DistanceTo(point geo.Point, loc domain.Location) (domain.DistanceResult, error) {
	if !point.Valid() {
		return domain.DistanceResult{}, fmt.Errorf("%w: coordinate out of range", ErrInvalidInput)
	}

	loc = loc.Normalize()
	center, ok := uc.directory.Center(loc)
	if !ok {
		return domain.DistanceResult{}, fmt.Errorf("%w: %s", ErrCenterNotFound, loc)
	}

	return domain.DistanceResult{
		Center:     center,
		DistanceKm: Distance(point, center),
	}, nil
}
