package get_dashboard

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CenterBooking/internal/service/bookings/models"
)

type BookingService interface {
	Stats(ctx context.Context, date time.Time) (*models.StatsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
