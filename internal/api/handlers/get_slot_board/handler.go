package get_slot_board

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CenterBooking/internal/api/handlers"
	"github.com/m04kA/SMC-CenterBooking/internal/service/slots"
)

const (
	msgInvalidDate     = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMissingLocation = "district, taluk и center обязательны"
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

// Handle GET /api/v1/admin/slots/board
// Query params: district, taluk, center, date - все обязательны
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	date, err := handlers.ParseDate(query.Get("date"))
	if err != nil {
		h.logger.Warn("GET /admin/slots/board - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	loc := handlers.QueryLocation(query)

	board, err := h.service.SlotBoard(r.Context(), loc, date)
	if err != nil {
		switch {
		case errors.Is(err, slots.ErrInvalidInput):
			h.logger.Warn("GET /admin/slots/board - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgMissingLocation)

		default:
			h.logger.Error("GET /admin/slots/board - Failed to build board: center=%s, error=%v", loc, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /admin/slots/board - Board built: center=%s, date=%s, booked=%d/%d",
		loc, board.Date, board.BookedCount, board.Capacity)
	handlers.RespondJSON(w, http.StatusOK, board)
}
