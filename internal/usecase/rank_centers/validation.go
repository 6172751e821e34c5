package rank_centers

import (
	"fmt"
	"strings"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req == nil {
		return fmt.Errorf("%w: request is nil", ErrInvalidInput)
	}

	if !req.Point.Valid() {
		return fmt.Errorf("%w: coordinate (%f, %f) out of range", ErrInvalidInput, req.Point.Lat, req.Point.Lng)
	}

	if strings.TrimSpace(req.District) == "" {
		return fmt.Errorf("%w: district is required", ErrInvalidInput)
	}

	return nil
}
