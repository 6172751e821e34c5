package slots

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/m04kA/SMC-CenterBooking/internal/domain"
	"github.com/m04kA/SMC-CenterBooking/internal/infra/storage"
	"github.com/m04kA/SMC-CenterBooking/internal/service/slots/models"
)

// DefaultRecurringHorizonDays предел разворачивания правила повторения
const DefaultRecurringHorizonDays = 90

// Service сервис администрирования слотов
type Service struct {
	enablementRepo EnablementRepository
	bookingRepo    BookingRepository
	availability   AvailabilityResolver
	directory      CenterDirectory
	txManager      TransactionManager
	catalog        *domain.SlotCatalog
	metrics        Metrics
	timeProvider   TimeProvider
	horizonDays    int
	logger         Logger
}

// Option настройка сервиса
type Option func(*Service)

// WithMetrics подключает счетчик переключений
func WithMetrics(m Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithTimeProvider подменяет источник времени
func WithTimeProvider(tp TimeProvider) Option {
	return func(s *Service) { s.timeProvider = tp }
}

// WithRecurringHorizonDays задает горизонт для правил повторения
func WithRecurringHorizonDays(days int) Option {
	return func(s *Service) {
		if days > 0 {
			s.horizonDays = days
		}
	}
}

// NewService создает новый экземпляр сервиса слотов
func NewService(
	enablementRepo EnablementRepository,
	bookingRepo BookingRepository,
	availability AvailabilityResolver,
	directory CenterDirectory,
	txManager TransactionManager,
	catalog *domain.SlotCatalog,
	logger Logger,
	opts ...Option,
) *Service {
	s := &Service{
		enablementRepo: enablementRepo,
		bookingRepo:    bookingRepo,
		availability:   availability,
		directory:      directory,
		txManager:      txManager,
		catalog:        catalog,
		timeProvider:   realTimeProvider{},
		horizonDays:    DefaultRecurringHorizonDays,
		logger:         logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetEnabled включает или выключает слот для ключа и даты.
// Операция идемпотентна. Выполняется под той же блокировкой (район, дата), что и бронирование.
func (s *Service) SetEnabled(ctx context.Context, req *models.SetEnabledRequest) (*models.EnablementResponse, error) {
	// 1. Валидация входных данных
	if req == nil {
		return nil, fmt.Errorf("%w: request is nil", ErrInvalidInput)
	}
	key := req.Key()
	if err := s.validateKey(key, req.Date); err != nil {
		s.logger.Warn("SetEnabled: validation failed: %v", err)
		return nil, err
	}
	if !s.catalog.Contains(req.Slot) {
		s.logger.Warn("SetEnabled: unknown slot %q", req.Slot)
		return nil, fmt.Errorf("%w: unknown slot %q", ErrInvalidInput, req.Slot)
	}

	date := domain.TruncateDay(req.Date)
	s.logger.Info("SetEnabled: key=%+v, date=%s, slot=%s, enabled=%t",
		key, date.Format(domain.DateFormat), req.Slot, req.Enabled)

	// 2. Изменяем запись под блокировкой
	var result []string
	err := s.txManager.DoLocked(ctx, domain.LockKey(key.District, date), func(txCtx context.Context) error {
		var (
			changed bool
			err     error
		)
		result, changed, err = s.apply(txCtx, key, date, []string{req.Slot}, req.Enabled)
		if err == nil && changed && s.metrics != nil {
			s.metrics.SlotToggled(req.Enabled)
		}
		return err
	})
	if err != nil {
		s.logger.Error("SetEnabled: failed for key=%+v, date=%s: %v", key, date.Format(domain.DateFormat), err)
		if errors.Is(err, ErrInternal) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: SetEnabled - %v", ErrInternal, err)
	}

	s.logger.Info("SetEnabled: key=%+v, date=%s now has %d slots", key, date.Format(domain.DateFormat), len(result))
	return models.FromDomainEnablement(key, date, result, true), nil
}

// GetEnabled возвращает включенные слоты точного ключа.
// Отсутствие записи не ошибка: пустой набор и Configured=false.
func (s *Service) GetEnabled(ctx context.Context, key domain.EnablementKey, date time.Time) (*models.EnablementResponse, error) {
	key = key.Normalize()
	if err := s.validateKey(key, date); err != nil {
		s.logger.Warn("GetEnabled: validation failed: %v", err)
		return nil, err
	}
	date = domain.TruncateDay(date)

	e, err := s.enablementRepo.GetEnablement(ctx, key, date)
	if err != nil {
		if errors.Is(err, storage.ErrEnablementNotFound) {
			return models.FromDomainEnablement(key, date, nil, false), nil
		}
		s.logger.Error("GetEnabled: repository error for key=%+v: %v", key, err)
		return nil, fmt.Errorf("%w: GetEnabled - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainEnablement(key, date, e.Slots, true), nil
}

// EnableRecurring включает набор слотов на все даты правила повторения
// в пределах [from, until], но не дальше горизонта. Каждая дата блокируется отдельно.
func (s *Service) EnableRecurring(ctx context.Context, req *models.RecurringRequest) (*models.RecurringResponse, error) {
	// 1. Валидация входных данных
	if req == nil {
		return nil, fmt.Errorf("%w: request is nil", ErrInvalidInput)
	}
	key := req.Key()
	if !key.IsValid() {
		return nil, fmt.Errorf("%w: invalid key %+v", ErrInvalidInput, key)
	}
	if len(req.Slots) == 0 {
		return nil, fmt.Errorf("%w: at least one slot is required", ErrInvalidInput)
	}
	for _, slot := range req.Slots {
		if !s.catalog.Contains(slot) {
			return nil, fmt.Errorf("%w: unknown slot %q", ErrInvalidInput, slot)
		}
	}
	slots := s.catalog.Sort(req.Slots)

	// 2. Разбираем правило и вычисляем даты
	dates, err := s.expand(req.RRule, req.From, req.Until)
	if err != nil {
		s.logger.Warn("EnableRecurring: %v", err)
		return nil, err
	}

	s.logger.Info("EnableRecurring: key=%+v, rule=%s, %d dates, %d slots", key, req.RRule, len(dates), len(slots))

	// 3. Включаем слоты на каждую дату
	resp := &models.RecurringResponse{Dates: make([]string, 0, len(dates)), Slots: slots}
	for _, date := range dates {
		err := s.txManager.DoLocked(ctx, domain.LockKey(key.District, date), func(txCtx context.Context) error {
			_, changed, err := s.apply(txCtx, key, date, slots, true)
			if err == nil && changed && s.metrics != nil {
				s.metrics.SlotToggled(true)
			}
			return err
		})
		if err != nil {
			s.logger.Error("EnableRecurring: failed on date=%s: %v", date.Format(domain.DateFormat), err)
			return nil, fmt.Errorf("%w: EnableRecurring - date %s: %v", ErrInternal, date.Format(domain.DateFormat), err)
		}
		resp.Dates = append(resp.Dates, date.Format(domain.DateFormat))
	}

	return resp, nil
}

// SlotBoard сетка всех слотов каталога для центра на дату
func (s *Service) SlotBoard(ctx context.Context, loc domain.Location, date time.Time) (*models.BoardResponse, error) {
	loc = loc.Normalize()
	if !loc.IsComplete() {
		return nil, fmt.Errorf("%w: district, taluk and center are required", ErrInvalidInput)
	}
	if date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	date = domain.TruncateDay(date)

	// 1. Включенные слоты с учетом иерархии
	enabled := map[string]bool{}
	var (
		configured  bool
		granularity domain.Granularity
	)
	e, err := s.enablementRepo.ResolveEnablement(ctx, loc, date)
	switch {
	case err == nil:
		configured = true
		granularity = e.Key.Granularity()
		for _, slot := range e.Slots {
			enabled[slot] = true
		}
	case errors.Is(err, storage.ErrEnablementNotFound):
	default:
		s.logger.Error("SlotBoard: failed to get enablement for %s: %v", loc, err)
		return nil, fmt.Errorf("%w: SlotBoard - enablement: %v", ErrInternal, err)
	}

	// 2. Занятые слоты
	bookings, err := s.bookingRepo.GetByDay(ctx, loc, date)
	if err != nil {
		s.logger.Error("SlotBoard: failed to get bookings for %s: %v", loc, err)
		return nil, fmt.Errorf("%w: SlotBoard - bookings: %v", ErrInternal, err)
	}
	booked := make(map[string]bool, len(bookings))
	for _, b := range bookings {
		booked[b.Slot] = true
	}

	// 3. Доступные слоты считаем тем же способом, что и при бронировании
	available, err := s.availability.Available(ctx, loc, date)
	if err != nil {
		s.logger.Error("SlotBoard: failed to resolve availability for %s: %v", loc, err)
		return nil, fmt.Errorf("%w: SlotBoard - availability: %v", ErrInternal, err)
	}
	open := make(map[string]bool, len(available))
	for _, slot := range available {
		open[slot] = true
	}

	labels := s.catalog.Labels()
	rows := make([]models.BoardRow, 0, len(labels))
	for _, slot := range labels {
		rows = append(rows, models.BoardRow{
			Slot:      slot,
			Enabled:   enabled[slot],
			Booked:    booked[slot],
			Available: open[slot],
		})
	}

	return &models.BoardResponse{
		District:    loc.District,
		Taluk:       loc.Taluk,
		Center:      loc.Center,
		Date:        date.Format(domain.DateFormat),
		Capacity:    s.directory.Capacity(loc),
		BookedCount: len(bookings),
		Configured:  configured,
		Granularity: string(granularity),
		Rows:        rows,
	}, nil
}

// apply загружает или создает запись, добавляет или убирает слоты и сохраняет.
// Возвращает итоговый набор и признак изменения.
func (s *Service) apply(ctx context.Context, key domain.EnablementKey, date time.Time, slots []string, enabled bool) ([]string, bool, error) {
	current, err := s.enablementRepo.GetEnablement(ctx, key, date)
	if err != nil {
		if !errors.Is(err, storage.ErrEnablementNotFound) {
			return nil, false, fmt.Errorf("%w: load enablement: %v", ErrInternal, err)
		}
		current = nil
	}

	var existing []string
	if current != nil {
		existing = current.Slots
	}

	set := make(map[string]bool, len(existing)+len(slots))
	for _, slot := range existing {
		set[slot] = true
	}
	for _, slot := range slots {
		set[slot] = enabled
	}

	next := make([]string, 0, len(set))
	for slot, on := range set {
		if on {
			next = append(next, slot)
		}
	}
	next = s.catalog.Sort(next)

	changed := current == nil || !equalSlots(existing, next)
	if !changed {
		return next, false, nil
	}

	if err := s.enablementRepo.SaveEnablement(ctx, &domain.SlotEnablement{
		Key:       key,
		Date:      date,
		Slots:     next,
		UpdatedAt: s.timeProvider.Now(),
	}); err != nil {
		return nil, false, fmt.Errorf("%w: save enablement: %v", ErrInternal, err)
	}

	return next, true, nil
}

// expand разворачивает RRULE в список дат
func (s *Service) expand(rule string, from, until time.Time) ([]time.Time, error) {
	rule = strings.TrimPrefix(strings.TrimSpace(rule), "RRULE:")
	if rule == "" {
		return nil, fmt.Errorf("%w: rule is required", ErrInvalidInput)
	}

	r, err := rrule.StrToRRule(rule)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRule, err)
	}

	if from.IsZero() {
		from = s.timeProvider.Now()
	}
	from = domain.TruncateDay(from)

	horizon := from.AddDate(0, 0, s.horizonDays)
	if until.IsZero() || domain.TruncateDay(until).After(horizon) {
		until = horizon
	}
	until = domain.TruncateDay(until)
	if until.Before(from) {
		return nil, fmt.Errorf("%w: until %s is before from %s", ErrInvalidInput,
			until.Format(domain.DateFormat), from.Format(domain.DateFormat))
	}

	r.DTStart(from)
	occurrences := r.Between(from, until, true)

	seen := make(map[time.Time]bool, len(occurrences))
	dates := make([]time.Time, 0, len(occurrences))
	for _, o := range occurrences {
		d := domain.TruncateDay(o)
		if seen[d] {
			continue
		}
		seen[d] = true
		dates = append(dates, d)
	}
	return dates, nil
}

func (s *Service) validateKey(key domain.EnablementKey, date time.Time) error {
	if !key.IsValid() {
		return fmt.Errorf("%w: district is required, taluk is required with center", ErrInvalidInput)
	}
	if date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	return nil
}

func equalSlots(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
