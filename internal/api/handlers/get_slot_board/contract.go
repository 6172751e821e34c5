package get_slot_board

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CenterBooking/internal/domain"
	"github.com/m04kA/SMC-CenterBooking/internal/service/slots/models"
)

type SlotService interface {
	SlotBoard(ctx context.Context, loc domain.Location, date time.Time) (*models.BoardResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
