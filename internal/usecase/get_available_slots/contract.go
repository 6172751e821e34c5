package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CenterBooking/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByDay(ctx context.Context, loc domain.Location, date time.Time) ([]*domain.Booking, error)
}

// EnablementRepository интерфейс репозитория включенных слотов
type EnablementRepository interface {
	ResolveEnablement(ctx context.Context, loc domain.Location, date time.Time) (*domain.SlotEnablement, error)
}

// CenterDirectory справочник центров (вместимость)
type CenterDirectory interface {
	Capacity(loc domain.Location) int
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
