package slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CenterBooking/internal/domain"
)

// EnablementRepository интерфейс хранилища включенных слотов
type EnablementRepository interface {
	GetEnablement(ctx context.Context, key domain.EnablementKey, date time.Time) (*domain.SlotEnablement, error)
	ResolveEnablement(ctx context.Context, loc domain.Location, date time.Time) (*domain.SlotEnablement, error)
	SaveEnablement(ctx context.Context, e *domain.SlotEnablement) error
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByDay(ctx context.Context, loc domain.Location, date time.Time) ([]*domain.Booking, error)
}

// AvailabilityResolver источник доступных слотов
type AvailabilityResolver interface {
	Available(ctx context.Context, loc domain.Location, date time.Time) ([]string, error)
}

// CenterDirectory справочник центров
type CenterDirectory interface {
	Capacity(loc domain.Location) int
}

// TransactionManager выполняет fn под блокировкой ключа
type TransactionManager interface {
	DoLocked(ctx context.Context, key string, fn func(ctx context.Context) error) error
}

// Metrics счетчик переключений слотов, может быть nil
type Metrics interface {
	SlotToggled(enabled bool)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

type realTimeProvider struct{}

func (realTimeProvider) Now() time.Time {
	return time.Now().UTC()
}
