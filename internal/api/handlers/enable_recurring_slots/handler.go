package enable_recurring_slots

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CenterBooking/internal/api/handlers"
	"github.com/m04kA/SMC-CenterBooking/internal/service/slots"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidRule        = "некорректное правило повторения"
	msgInvalidData        = "некорректные данные слотов"
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

// Handle POST /api/v1/admin/slots/recurring
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req EnableRecurringRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/slots/recurring - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest()
	if err != nil {
		h.logger.Warn("POST /admin/slots/recurring - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.service.EnableRecurring(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, slots.ErrInvalidRule):
			h.logger.Warn("POST /admin/slots/recurring - Invalid rule: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRule)

		case errors.Is(err, slots.ErrInvalidInput):
			h.logger.Warn("POST /admin/slots/recurring - Invalid data: %v", err)
			handlers.RespondBadRequest(w, msgInvalidData)

		default:
			h.logger.Error("POST /admin/slots/recurring - Failed to enable slots: key=%+v, error=%v",
				serviceReq.Key(), err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/slots/recurring - Slots enabled: key=%+v, dates=%d, slots=%d",
		serviceReq.Key(), len(result.Dates), len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, result)
}
