package bookings

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-CenterBooking/internal/domain"
	"github.com/m04kA/SMC-CenterBooking/internal/infra/storage"
	"github.com/m04kA/SMC-CenterBooking/internal/service/bookings/models"
)

// Service сервис администрирования бронирований
type Service struct {
	bookingRepo BookingRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(bookingRepo BookingRepository, logger Logger) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID
func (s *Service) GetByID(ctx context.Context, id string) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%s", id)

	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("%w: id is required", ErrInvalidInput)
	}

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%s not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetByID: successfully fetched booking id=%s", id)
	return models.FromDomainBooking(booking), nil
}

// List получает бронирования с фильтрацией, новые первыми.
// Фильтр по району, талуку и центру дает список бронирований конкретного центра.
func (s *Service) List(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	if req == nil {
		req = &models.ListBookingsRequest{}
	}
	filter := req.ToDomainFilter()

	logMsg := "List: fetching bookings"
	if filter.District != nil {
		logMsg += fmt.Sprintf(", district=%s", *filter.District)
	}
	if filter.Taluk != nil {
		logMsg += fmt.Sprintf(", taluk=%s", *filter.Taluk)
	}
	if filter.Center != nil {
		logMsg += fmt.Sprintf(", center=%s", *filter.Center)
	}
	if filter.Date != nil {
		logMsg += fmt.Sprintf(", date=%s", filter.Date.Format(domain.DateFormat))
	}
	if filter.ServiceType != nil {
		logMsg += fmt.Sprintf(", service=%s", *filter.ServiceType)
	}
	s.logger.Info(logMsg)

	bookings, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d bookings", len(bookings))
	return models.FromDomainBookingList(bookings), nil
}

// Cancel отменяет бронирование удалением записи.
// Слот освобождается сразу: доступность вычисляется при чтении.
func (s *Service) Cancel(ctx context.Context, id string) error {
	s.logger.Info("Cancel: cancelling booking id=%s", id)

	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: id is required", ErrInvalidInput)
	}

	if err := s.bookingRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, storage.ErrBookingNotFound) {
			s.logger.Warn("Cancel: booking id=%s not found", id)
			return ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%s: %v", id, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: successfully cancelled booking id=%s", id)
	return nil
}

// Stats сводка для панели администратора: всего, на дату и по услугам
func (s *Service) Stats(ctx context.Context, date time.Time) (*models.StatsResponse, error) {
	if date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	date = domain.TruncateDay(date)

	s.logger.Info("Stats: fetching dashboard for date=%s", date.Format(domain.DateFormat))

	stats, err := s.bookingRepo.Stats(ctx, date)
	if err != nil {
		s.logger.Error("Stats: repository error: %v", err)
		return nil, fmt.Errorf("%w: Stats - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainStats(date, stats), nil
}
