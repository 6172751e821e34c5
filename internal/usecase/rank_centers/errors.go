package rank_centers

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("rank_centers: invalid input data")

	// ErrCenterNotFound возвращается, когда центра нет в справочнике
	ErrCenterNotFound = errors.New("rank_centers: center not found")
)
