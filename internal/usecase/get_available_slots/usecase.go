package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-CenterBooking/internal/domain"
	"github.com/m04kA/SMC-CenterBooking/internal/infra/storage"
)

// UseCase use case для получения доступных слотов центра на дату
type UseCase struct {
	bookingRepo    BookingRepository
	enablementRepo EnablementRepository
	directory      CenterDirectory
	catalog        *domain.SlotCatalog
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	enablementRepo EnablementRepository,
	directory CenterDirectory,
	catalog *domain.SlotCatalog,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:    bookingRepo,
		enablementRepo: enablementRepo,
		directory:      directory,
		catalog:        catalog,
		logger:         logger,
	}
}

// Execute выполняет use case получения доступных слотов.
// Побочных эффектов нет, блокировок не берет.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if req != nil {
		req.Location = req.Location.Normalize()
	}
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	date := domain.TruncateDay(req.Date)
	uc.logger.Info("GetAvailableSlots: location=%s, date=%s", req.Location, date.Format(domain.DateFormat))

	// 2. Считаем доступность
	res, err := uc.resolve(ctx, req.Location, date)
	if err != nil {
		return nil, err
	}

	uc.logger.Info("GetAvailableSlots: %d slots available for location=%s, date=%s (booked %d/%d, configured=%t)",
		len(res.Slots), req.Location, date.Format(domain.DateFormat), res.BookedCount, res.Capacity, res.Configured)

	return res, nil
}

// Available возвращает только список доступных слотов.
// Используется при бронировании внутри транзакционного контекста.
func (uc *UseCase) Available(ctx context.Context, loc domain.Location, date time.Time) ([]string, error) {
	res, err := uc.resolve(ctx, loc.Normalize(), domain.TruncateDay(date))
	if err != nil {
		return nil, err
	}
	return res.Slots, nil
}

func (uc *UseCase) resolve(ctx context.Context, loc domain.Location, date time.Time) (*Response, error) {
	// 1. Получаем включенные слоты с учетом иерархии: центр, талук, район
	var (
		enabled     []string
		configured  bool
		granularity domain.Granularity
	)
	enablement, err := uc.enablementRepo.ResolveEnablement(ctx, loc, date)
	switch {
	case err == nil:
		enabled = enablement.Slots
		configured = true
		granularity = enablement.Key.Granularity()
	case errors.Is(err, storage.ErrEnablementNotFound):
		// Администратор ничего не включал - доступных слотов нет
		enabled = nil
	default:
		uc.logger.Error("GetAvailableSlots: failed to get enablement for location=%s: %v", loc, err)
		return nil, fmt.Errorf("%w: failed to get enablement: %v", ErrInternal, err)
	}

	// 2. Получаем бронирования центра на дату
	booked, err := uc.bookingRepo.GetByDay(ctx, loc, date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings for location=%s: %v", loc, err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 3. Вычисляем доступные слоты
	capacity := uc.directory.Capacity(loc)

	return &Response{
		Location:    loc,
		Date:        date,
		Slots:       computeAvailable(uc.catalog, enabled, booked, capacity),
		Capacity:    capacity,
		BookedCount: len(booked),
		Configured:  configured,
		Granularity: granularity,
	}, nil
}
