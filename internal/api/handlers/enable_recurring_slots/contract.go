package enable_recurring_slots

import (
	"context"

	"github.com/m04kA/SMC-CenterBooking/internal/service/slots/models"
)

type SlotService interface {
	EnableRecurring(ctx context.Context, req *models.RecurringRequest) (*models.RecurringResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
