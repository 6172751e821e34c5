package get_dashboard

import (
	"net/http"
	"time"

	"github.com/m04kA/SMC-CenterBooking/internal/api/handlers"
)

const msgInvalidDate = "некорректный формат даты, ожидается YYYY-MM-DD"

type Handler struct {
	service BookingService
	logger  Logger
	now     func() time.Time
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Handle GET /api/v1/admin/dashboard
// Query params: date (опционально, по умолчанию сегодня)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	date, err := handlers.ParseOptionalDate(r.URL.Query().Get("date"))
	if err != nil {
		h.logger.Warn("GET /admin/dashboard - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}
	if date.IsZero() {
		date = h.now()
	}

	stats, err := h.service.Stats(r.Context(), date)
	if err != nil {
		h.logger.Error("GET /admin/dashboard - Failed to get stats: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /admin/dashboard - Stats retrieved: date=%s, total=%d, on_date=%d",
		stats.Date, stats.Total, stats.OnDate)
	handlers.RespondJSON(w, http.StatusOK, stats)
}
