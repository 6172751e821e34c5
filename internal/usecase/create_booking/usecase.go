package create_booking

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/m04kA/SMC-CenterBooking/internal/domain"
	"github.com/m04kA/SMC-CenterBooking/internal/infra/storage"
)

const (
	// DefaultIDRetryAttempts число попыток вставки при коллизии ID
	DefaultIDRetryAttempts = 3

	// notifyTimeout ограничивает фоновую отправку уведомления
	notifyTimeout = 30 * time.Second
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo     BookingRepository
	availability    AvailabilityResolver
	txManager       TransactionManager
	notifier        Notifier
	metrics         Metrics
	timeProvider    TimeProvider
	idGenerator     IDGenerator
	catalog         *domain.SlotCatalog
	validate        *validator.Validate
	idRetryAttempts int
	logger          Logger

	pending sync.WaitGroup // фоновые уведомления
}

// Option настройка use case
type Option func(*UseCase)

// WithMetrics подключает счетчики бронирования
func WithMetrics(m Metrics) Option {
	return func(uc *UseCase) { uc.metrics = m }
}

// WithTimeProvider подменяет источник времени
func WithTimeProvider(tp TimeProvider) Option {
	return func(uc *UseCase) { uc.timeProvider = tp }
}

// WithIDGenerator подменяет генератор ID
func WithIDGenerator(g IDGenerator) Option {
	return func(uc *UseCase) { uc.idGenerator = g }
}

// WithIDRetryAttempts задает число попыток при коллизии ID
func WithIDRetryAttempts(n int) Option {
	return func(uc *UseCase) {
		if n > 0 {
			uc.idRetryAttempts = n
		}
	}
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	availability AvailabilityResolver,
	txManager TransactionManager,
	notifier Notifier,
	catalog *domain.SlotCatalog,
	logger Logger,
	opts ...Option,
) *UseCase {
	uc := &UseCase{
		bookingRepo:     bookingRepo,
		availability:    availability,
		txManager:       txManager,
		notifier:        notifier,
		timeProvider:    &RealTimeProvider{},
		idGenerator:     UUIDv7Generator{},
		catalog:         catalog,
		validate:        newValidator(catalog),
		idRetryAttempts: DefaultIDRetryAttempts,
		logger:          logger,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Execute выполняет use case создания бронирования.
// Проверка доступности и вставка идут под одной блокировкой (район, дата),
// поэтому между ними никто не может занять слот или выключить его.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := uc.validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		uc.reject(reasonValidation)
		return nil, err
	}

	loc := req.Location()
	date := domain.TruncateDay(req.Date)
	uc.logger.Info("CreateBooking: location=%s, date=%s, slot=%s, service=%s",
		loc, date.Format(domain.DateFormat), req.Slot, req.ServiceType)

	var result *domain.Booking

	// 2. Перепроверка и вставка под блокировкой
	err := uc.txManager.DoLocked(ctx, domain.LockKey(loc.District, date), func(txCtx context.Context) error {
		// 2.1. Пересчитываем доступные слоты
		available, err := uc.availability.Available(txCtx, loc, date)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to resolve availability: %v", err)
			return fmt.Errorf("%w: failed to resolve availability: %v", ErrInternal, err)
		}

		if !containsSlot(available, req.Slot) {
			uc.logger.Warn("CreateBooking: slot %s is not available for location=%s, date=%s",
				req.Slot, loc, date.Format(domain.DateFormat))
			return ErrSlotNotAvailable
		}

		// 2.2. Сохраняем бронирование, при коллизии ID повторяем с новым
		created, err := uc.insert(txCtx, req, loc, date)
		if err != nil {
			return err
		}

		result = created
		return nil
	})

	if err != nil {
		switch {
		case errors.Is(err, ErrSlotNotAvailable):
			uc.reject(reasonSlotUnavailable)
			return nil, err
		case errors.Is(err, ErrInternal):
			uc.reject(reasonInternal)
			return nil, err
		default:
			uc.logger.Error("CreateBooking: transaction failed: %v", err)
			uc.reject(reasonInternal)
			return nil, fmt.Errorf("%w: %v", ErrInternal, err)
		}
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%s", result.ID)
	if uc.metrics != nil {
		uc.metrics.BookingAllocated()
	}

	// 3. Уведомление после фиксации, в фоне. Ошибка не откатывает бронирование.
	uc.notify(ctx, result)

	return toResponse(result), nil
}

func (uc *UseCase) insert(ctx context.Context, req *Request, loc domain.Location, date time.Time) (*domain.Booking, error) {
	var lastErr error

	for attempt := 1; attempt <= uc.idRetryAttempts; attempt++ {
		id, err := uc.idGenerator.NewID()
		if err != nil {
			uc.logger.Error("CreateBooking: failed to generate id: %v", err)
			return nil, fmt.Errorf("%w: failed to generate id: %v", ErrInternal, err)
		}

		booking := &domain.Booking{
			ID:          id,
			Name:        req.Name,
			Phone:       req.Phone,
			Email:       req.Email,
			Address:     req.Address,
			ServiceType: req.ServiceType,
			Location:    loc,
			Date:        date,
			Slot:        req.Slot,
			Status:      domain.StatusConfirmed,
			CreatedAt:   uc.timeProvider.Now(),
		}

		created, err := uc.bookingRepo.Create(ctx, booking)
		switch {
		case err == nil:
			return created, nil
		case errors.Is(err, storage.ErrDuplicateID):
			uc.logger.Warn("CreateBooking: id collision on attempt %d: %v", attempt, err)
			lastErr = err
			continue
		case errors.Is(err, storage.ErrSlotTaken):
			uc.logger.Warn("CreateBooking: slot already taken: %v", err)
			return nil, ErrSlotNotAvailable
		default:
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return nil, fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}
	}

	uc.logger.Error("CreateBooking: gave up after %d id collisions", uc.idRetryAttempts)
	return nil, fmt.Errorf("%w: id collisions exhausted: %v", ErrInternal, lastErr)
}

// notify отправляет уведомление в фоне, не задерживая ответ.
// Контекст отвязан от запроса: разрыв соединения клиента не отменяет отправку.
func (uc *UseCase) notify(ctx context.Context, booking *domain.Booking) {
	if uc.notifier == nil {
		return
	}

	notifyCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notifyTimeout)
	uc.pending.Add(1)
	go func() {
		defer uc.pending.Done()
		defer cancel()

		if err := uc.notifier.BookingConfirmed(notifyCtx, booking); err != nil {
			uc.logger.Warn("CreateBooking: notification for booking id=%s failed: %v", booking.ID, err)
			if uc.metrics != nil {
				uc.metrics.NotificationFailed()
			}
		}
	}()
}

// Wait дожидается завершения фоновых уведомлений
func (uc *UseCase) Wait() {
	uc.pending.Wait()
}

func (uc *UseCase) reject(reason string) {
	if uc.metrics != nil {
		uc.metrics.AllocationRejected(reason)
	}
}
