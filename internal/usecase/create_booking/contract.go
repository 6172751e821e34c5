package create_booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CenterBooking/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

// AvailabilityResolver источник доступных слотов (get_available_slots)
type AvailabilityResolver interface {
	Available(ctx context.Context, loc domain.Location, date time.Time) ([]string, error)
}

// TransactionManager выполняет fn под блокировкой ключа
type TransactionManager interface {
	DoLocked(ctx context.Context, key string, fn func(ctx context.Context) error) error
}

// Notifier уведомляет гражданина о подтвержденном бронировании
type Notifier interface {
	BookingConfirmed(ctx context.Context, booking *domain.Booking) error
}

// Metrics счетчики бронирования, может быть nil
type Metrics interface {
	BookingAllocated()
	AllocationRejected(reason string)
	NotificationFailed()
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// IDGenerator генератор идентификаторов бронирований
type IDGenerator interface {
	NewID() (string, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now().UTC()
}

// UUIDv7Generator выдает упорядоченные по времени UUIDv7
type UUIDv7Generator struct{}

// NewID возвращает новый UUIDv7 в строковом виде
func (UUIDv7Generator) NewID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}
