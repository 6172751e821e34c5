package rank_centers

import (
	rankCenters "github.com/m04kA/SMC-CenterBooking/internal/usecase/rank_centers"
)

type RankCentersUseCase interface {
	Execute(req *rankCenters.Request) (*rankCenters.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
