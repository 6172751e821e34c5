package get_slot_enablement

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CenterBooking/internal/domain"
	"github.com/m04kA/SMC-CenterBooking/internal/service/slots/models"
)

type SlotService interface {
	GetEnabled(ctx context.Context, key domain.EnablementKey, date time.Time) (*models.EnablementResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
