package rank_centers

import "github.com/m04kA/SMC-CenterBooking/internal/domain"

// CenterDirectory справочник центров
type CenterDirectory interface {
	Centers(district, taluk string) []domain.Center
	Center(loc domain.Location) (domain.Center, bool)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
