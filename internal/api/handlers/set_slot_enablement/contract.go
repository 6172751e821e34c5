package set_slot_enablement

import (
	"context"

	"github.com/m04kA/SMC-CenterBooking/internal/service/slots/models"
)

type SlotService interface {
	SetEnabled(ctx context.Context, req *models.SetEnabledRequest) (*models.EnablementResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
