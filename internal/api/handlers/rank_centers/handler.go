package rank_centers

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CenterBooking/internal/api/handlers"
	rankCenters "github.com/m04kA/SMC-CenterBooking/internal/usecase/rank_centers"
)

const (
	msgInvalidCoordinate = "некорректные координаты: lat и lng обязательны"
	msgInvalidInput      = "district обязателен, координаты должны быть в допустимых пределах"
)

type Handler struct {
	useCase RankCentersUseCase
	logger  Logger
}

func NewHandler(useCase RankCentersUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/centers/rank
// Query params: lat, lng, district (обязательны), taluk (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	useCaseReq, err := ToUseCaseRequest(r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /centers/rank - Invalid coordinate: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCoordinate)
		return
	}

	result, err := h.useCase.Execute(useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, rankCenters.ErrInvalidInput):
			h.logger.Warn("GET /centers/rank - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("GET /centers/rank - Failed to rank centers: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /centers/rank - Centers ranked: district=%s, taluk=%s, count=%d",
		useCaseReq.District, useCaseReq.Taluk, len(result.Results))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
