package create_booking

import "errors"

var (
	// ErrSlotNotAvailable возвращается, когда выбранный слот уже недоступен
	ErrSlotNotAvailable = errors.New("create_booking: slot is not available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)

// Причины отказа для метрики booking_allocations_rejected_total
const (
	reasonValidation      = "validation"
	reasonSlotUnavailable = "slot_unavailable"
	reasonInternal        = "internal"
)
