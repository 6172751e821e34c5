package list_centers

import "github.com/m04kA/SMC-CenterBooking/internal/domain"

type CenterDirectory interface {
	Districts() []string
	Taluks(district string) []string
	Centers(district, taluk string) []domain.Center
	Capacity(loc domain.Location) int
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
