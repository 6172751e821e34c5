package storage

import "errors"

// Ошибки общие для всех реализаций хранилища (memory, postgres)
var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("storage: booking not found")

	// ErrEnablementNotFound возвращается, когда для ключа и даты нет записи о включенных слотах
	ErrEnablementNotFound = errors.New("storage: slot enablement not found")

	// ErrDuplicateID возвращается, когда бронирование с таким ID уже существует
	ErrDuplicateID = errors.New("storage: duplicate booking id")

	// ErrSlotTaken возвращается, когда слот центра на дату уже занят другим бронированием
	ErrSlotTaken = errors.New("storage: slot already taken")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("storage: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("storage: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("storage: failed to scan row")
)
