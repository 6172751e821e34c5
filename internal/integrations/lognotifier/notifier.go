package lognotifier

import (
	"context"

	"github.com/m04kA/SMC-CenterBooking/internal/domain"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
}

// Notifier только пишет подтверждение в лог
type Notifier struct {
	logger Logger
}

// New создает уведомитель
func New(logger Logger) *Notifier {
	return &Notifier{logger: logger}
}

// BookingConfirmed пишет подтверждение бронирования в лог
func (n *Notifier) BookingConfirmed(_ context.Context, b *domain.Booking) error {
	n.logger.Info("Notification: booking id=%s confirmed for %s on %s at %s (service=%s)",
		b.ID, b.Location, b.Date.Format(domain.DateFormat), b.Slot, b.ServiceType)
	return nil
}
