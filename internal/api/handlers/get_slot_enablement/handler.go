package get_slot_enablement

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CenterBooking/internal/api/handlers"
	"github.com/m04kA/SMC-CenterBooking/internal/domain"
	"github.com/m04kA/SMC-CenterBooking/internal/service/slots"
)

const (
	msgInvalidDate = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidKey  = "некорректный уровень: district обязателен, center требует taluk"
)

type Handler struct {
	service SlotService
	logger  Logger
}

func NewHandler(service SlotService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/admin/slots
// Query params: district (обязателен), taluk, center, date (обязательна).
// Возвращает запись ровно для указанного уровня, без подъема по иерархии.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	date, err := handlers.ParseDate(query.Get("date"))
	if err != nil {
		h.logger.Warn("GET /admin/slots - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	loc := handlers.QueryLocation(query)
	key := domain.EnablementKey{District: loc.District, Taluk: loc.Taluk, Center: loc.Center}

	result, err := h.service.GetEnabled(r.Context(), key, date)
	if err != nil {
		switch {
		case errors.Is(err, slots.ErrInvalidInput):
			h.logger.Warn("GET /admin/slots - Invalid key: %v", err)
			handlers.RespondBadRequest(w, msgInvalidKey)

		default:
			h.logger.Error("GET /admin/slots - Failed to get enablement: key=%+v, error=%v", key, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /admin/slots - Enablement retrieved: key=%+v, date=%s, slots=%d",
		key, result.Date, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, result)
}
