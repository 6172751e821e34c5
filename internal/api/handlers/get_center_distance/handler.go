package get_center_distance

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CenterBooking/internal/api/handlers"
	rankCenters "github.com/m04kA/SMC-CenterBooking/internal/usecase/rank_centers"
	"github.com/m04kA/SMC-CenterBooking/pkg/geo"
)

const (
	msgInvalidCoordinate = "некорректные координаты: lat и lng обязательны"
	msgInvalidLocation   = "district, taluk и center обязательны"
	msgCenterNotFound    = "центр не найден в справочнике"
)

type Handler struct {
	useCase CenterDistanceUseCase
	logger  Logger
}

func NewHandler(useCase CenterDistanceUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/centers/distance
// Query params: lat, lng, district, taluk, center
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	lat, err := handlers.QueryFloat(query, "lat")
	if err != nil {
		h.logger.Warn("GET /centers/distance - Invalid coordinate: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCoordinate)
		return
	}
	lng, err := handlers.QueryFloat(query, "lng")
	if err != nil {
		h.logger.Warn("GET /centers/distance - Invalid coordinate: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCoordinate)
		return
	}

	loc := handlers.QueryLocation(query)
	if !loc.IsComplete() {
		h.logger.Warn("GET /centers/distance - Incomplete location: %s", loc)
		handlers.RespondBadRequest(w, msgInvalidLocation)
		return
	}

	result, err := h.useCase.DistanceTo(geo.Point{Lat: lat, Lng: lng}, loc)
	if err != nil {
		switch {
		case errors.Is(err, rankCenters.ErrInvalidInput):
			h.logger.Warn("GET /centers/distance - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidCoordinate)

		case errors.Is(err, rankCenters.ErrCenterNotFound):
			h.logger.Warn("GET /centers/distance - Center not found: %s", loc)
			handlers.RespondNotFound(w, msgCenterNotFound)

		default:
			h.logger.Error("GET /centers/distance - Failed to compute distance: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /centers/distance - location=%s, distance=%s", loc, result.Label())
	handlers.RespondJSON(w, http.StatusOK, FromDomainResult(result))
}
