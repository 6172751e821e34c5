package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-CenterBooking/internal/config"
	"github.com/m04kA/SMC-CenterBooking/internal/domain"
	"github.com/m04kA/SMC-CenterBooking/internal/infra/catalog"
	bookingRepo "github.com/m04kA/SMC-CenterBooking/internal/infra/storage/booking"
	enablementRepo "github.com/m04kA/SMC-CenterBooking/internal/infra/storage/enablement"
	"github.com/m04kA/SMC-CenterBooking/internal/infra/storage/memory"
	"github.com/m04kA/SMC-CenterBooking/internal/infra/storage/migrations"
	"github.com/m04kA/SMC-CenterBooking/internal/integrations/lognotifier"
	"github.com/m04kA/SMC-CenterBooking/internal/integrations/mailer"
	"github.com/m04kA/SMC-CenterBooking/internal/integrations/redisoutbox"
	bookingsService "github.com/m04kA/SMC-CenterBooking/internal/service/bookings"
	slotsService "github.com/m04kA/SMC-CenterBooking/internal/service/slots"
	createBookingUC "github.com/m04kA/SMC-CenterBooking/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/SMC-CenterBooking/internal/usecase/get_available_slots"
	rankCentersUC "github.com/m04kA/SMC-CenterBooking/internal/usecase/rank_centers"
	"github.com/m04kA/SMC-CenterBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-CenterBooking/pkg/keylock"
	"github.com/m04kA/SMC-CenterBooking/pkg/logger"
	"github.com/m04kA/SMC-CenterBooking/pkg/metrics"
	"github.com/m04kA/SMC-CenterBooking/pkg/txmanager"
)

// bookingRepository общий набор методов обоих хранилищ бронирований
type bookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	GetByDay(ctx context.Context, loc domain.Location, date time.Time) ([]*domain.Booking, error)
	List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context, date time.Time) (*domain.BookingStats, error)
}

// enablementRepository общий набор методов обоих хранилищ включенных слотов
type enablementRepository interface {
	GetEnablement(ctx context.Context, key domain.EnablementKey, date time.Time) (*domain.SlotEnablement, error)
	ResolveEnablement(ctx context.Context, loc domain.Location, date time.Time) (*domain.SlotEnablement, error)
	SaveEnablement(ctx context.Context, e *domain.SlotEnablement) error
}

type locker interface {
	DoLocked(ctx context.Context, key string, fn func(ctx context.Context) error) error
}

type notifier interface {
	BookingConfirmed(ctx context.Context, booking *domain.Booking) error
}

// timeoutLocker ограничивает ожидание и удержание блокировки (район, дата)
type timeoutLocker struct {
	inner   locker
	timeout time.Duration
	log     *logger.Logger
}

func (l timeoutLocker) DoLocked(ctx context.Context, key string, fn func(ctx context.Context) error) error {
	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	start := time.Now()
	err := l.inner.DoLocked(ctx, key, fn)
	l.log.Debug("lock key=%s released after %s, err=%v", key, time.Since(start), err)
	return err
}

// app собранные зависимости процесса
type app struct {
	cfg      *config.Config
	log      *logger.Logger
	metrics  *metrics.Metrics // nil, если метрики выключены
	registry *prometheus.Registry

	directory    *catalog.Directory
	bookings     bookingRepository
	enablements  enablementRepository
	locker       locker
	notifier     notifier
	availability *getAvailableSlotsUC.UseCase
	createUC     *createBookingUC.UseCase
	rankUC       *rankCentersUC.UseCase
	bookingSvc   *bookingsService.Service
	slotSvc      *slotsService.Service

	db          *sql.DB
	redis       *redis.Client
	stopMetrics chan struct{}
}

// newApp собирает зависимости по конфигурации
func newApp(ctx context.Context, cfg *config.Config) (a *app, err error) {
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	a = &app{cfg: cfg, log: log, stopMetrics: make(chan struct{})}
	defer func() {
		if err != nil {
			a.Close()
		}
	}()

	log.Info("Starting SMC-CenterBooking...")

	if cfg.Metrics.Enabled {
		a.registry = prometheus.NewRegistry()
		a.registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		a.metrics = metrics.New(cfg.Metrics.ServiceName, a.registry)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	a.directory, err = catalog.Load(cfg.Booking.CatalogFile, cfg.Booking.DefaultCapacity)
	if err != nil {
		return nil, fmt.Errorf("failed to load center catalog: %w", err)
	}
	log.Info("Center catalog loaded: %d districts", len(a.directory.Districts()))

	if err = a.initStorage(ctx); err != nil {
		return nil, err
	}

	if err = a.initNotifier(ctx); err != nil {
		return nil, err
	}

	a.initDomain()
	return a, nil
}

// initStorage выбирает хранилище и менеджер блокировок
func (a *app) initStorage(ctx context.Context) error {
	var inner locker

	switch a.cfg.Storage.Driver {
	case config.StoragePostgres:
		db, err := openDB(ctx, a.cfg.Database)
		if err != nil {
			return err
		}
		a.db = db
		a.log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
			a.cfg.Database.Host, a.cfg.Database.Port, a.cfg.Database.DBName)

		if a.cfg.Storage.AutoMigrate {
			applied, err := migrations.Run(ctx, db)
			if err != nil {
				return fmt.Errorf("failed to apply migrations: %w", err)
			}
			a.log.Info("Migrations applied: %d", len(applied))
		}

		// Collector передаем только при включенных метриках: nil-указатель в интерфейсе не равен nil
		var collector dbmetrics.Collector
		if a.metrics != nil {
			collector = a.metrics
		}
		wrapped := dbmetrics.WrapWithDefault(db, collector, a.stopMetrics)

		a.bookings = bookingRepo.NewRepository(wrapped)
		a.enablements = enablementRepo.NewRepository(wrapped)
		inner = txmanager.NewTransactionManager(wrapped)

	default:
		store := memory.NewStore()
		a.bookings = store
		a.enablements = store
		inner = keylock.New()
		a.log.Warn("Using in-memory storage: bookings are lost on restart")
	}

	a.locker = timeoutLocker{inner: inner, timeout: config.Seconds(a.cfg.Booking.LockTimeout), log: a.log}
	return nil
}

// initNotifier выбирает способ уведомления о подтвержденном бронировании
func (a *app) initNotifier(ctx context.Context) error {
	switch a.cfg.Notifier.Driver {
	case config.NotifierMailer:
		a.notifier = mailer.NewClient(mailer.Config{
			BaseURL: a.cfg.Mailer.BaseURL,
			APIKey:  a.cfg.Mailer.APIKey,
			From:    a.cfg.Mailer.From,
			Timeout: config.Seconds(a.cfg.Mailer.Timeout),
		}, a.log)
		a.log.Info("Notifier: mailer (%s)", a.cfg.Mailer.BaseURL)

	case config.NotifierRedis:
		client, err := redisoutbox.Connect(ctx, redisoutbox.Config{
			URL:          a.cfg.Redis.URL,
			Stream:       a.cfg.Redis.Stream,
			MaxLen:       a.cfg.Redis.MaxLen,
			DialTimeout:  config.Seconds(a.cfg.Redis.DialTimeout),
			WriteTimeout: config.Seconds(a.cfg.Redis.WriteTimeout),
		})
		if err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		a.redis = client
		a.notifier = redisoutbox.NewPublisher(client, a.cfg.Redis.Stream, a.cfg.Redis.MaxLen)
		a.log.Info("Notifier: redis stream %q", a.cfg.Redis.Stream)

	default:
		a.notifier = lognotifier.New(a.log)
		a.log.Info("Notifier: log")
	}
	return nil
}

// initDomain собирает use cases и сервисы
func (a *app) initDomain() {
	catalogSlots := domain.DefaultCatalog

	a.availability = getAvailableSlotsUC.NewUseCase(a.bookings, a.enablements, a.directory, catalogSlots, a.log)

	createOpts := []createBookingUC.Option{
		createBookingUC.WithIDRetryAttempts(a.cfg.Booking.IDRetryAttempts),
	}
	slotOpts := []slotsService.Option{
		slotsService.WithRecurringHorizonDays(a.cfg.Booking.RecurringHorizonDays),
	}
	if a.metrics != nil {
		createOpts = append(createOpts, createBookingUC.WithMetrics(a.metrics))
		slotOpts = append(slotOpts, slotsService.WithMetrics(a.metrics))
	}

	a.createUC = createBookingUC.NewUseCase(
		a.bookings,
		a.availability,
		a.locker,
		a.notifier,
		catalogSlots,
		a.log,
		createOpts...,
	)
	a.rankUC = rankCentersUC.NewUseCase(a.directory, a.log)
	a.bookingSvc = bookingsService.NewService(a.bookings, a.log)
	a.slotSvc = slotsService.NewService(
		a.enablements,
		a.bookings,
		a.availability,
		a.directory,
		a.locker,
		catalogSlots,
		a.log,
		slotOpts...,
	)
}

// Close освобождает ресурсы в обратном порядке
func (a *app) Close() {
	if a.createUC != nil {
		a.createUC.Wait()
	}
	if a.stopMetrics != nil {
		close(a.stopMetrics)
		a.stopMetrics = nil
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.log.Error("Failed to close redis client: %v", err)
		}
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.log.Error("Failed to close database: %v", err)
		}
	}
	_ = a.log.Close()
}
