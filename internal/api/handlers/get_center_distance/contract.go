package get_center_distance

import (
	"github.com/m04kA/SMC-CenterBooking/internal/domain"
	"github.com/m04kA/SMC-CenterBooking/pkg/geo"
)

type CenterDistanceUseCase interface {
	DistanceTo(point geo.Point, loc domain.Location) (domain.DistanceResult, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
