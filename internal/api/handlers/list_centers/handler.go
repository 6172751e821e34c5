package list_centers

import (
	"net/http"
	"strings"

	"github.com/m04kA/SMC-CenterBooking/internal/api/handlers"
)

type Handler struct {
	directory CenterDirectory
	logger    Logger
}

func NewHandler(directory CenterDirectory, logger Logger) *Handler {
	return &Handler{
		directory: directory,
		logger:    logger,
	}
}

// Handle GET /api/v1/centers
// Query params: district, taluk (опционально). Без фильтров - весь справочник.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	district := strings.TrimSpace(query.Get("district"))
	taluk := strings.TrimSpace(query.Get("taluk"))

	districts := []string{district}
	if district == "" {
		districts = h.directory.Districts()
	}

	result := make([]CenterResponse, 0)
	for _, d := range districts {
		for _, c := range h.directory.Centers(d, taluk) {
			result = append(result, FromDomainCenter(c, h.directory.Capacity(c.Location)))
		}
	}

	h.logger.Info("GET /centers - Centers listed: district=%q, taluk=%q, count=%d", district, taluk, len(result))
	handlers.RespondJSON(w, http.StatusOK, result)
}
