package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-CenterBooking/internal/domain"
	"github.com/m04kA/SMC-CenterBooking/internal/infra/storage"
	"github.com/m04kA/SMC-CenterBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-CenterBooking/pkg/psqlbuilder"
)

const (
	uniqueViolation     = "23505"
	constraintCenterDay = "bookings_center_day_slot_key"
)

var bookingColumns = []string{
	"id",
	"name",
	"phone",
	"email",
	"address",
	"service_type",
	"district",
	"taluk",
	"center",
	"booking_date",
	"slot",
	"status",
	"created_at",
}

// Repository репозиторий для работы с бронированиями в PostgreSQL
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование.
// Если в контексте передана активная транзакция, использует её.
//
// Конфликт по id не прерывает транзакцию (ON CONFLICT DO NOTHING) и возвращается как storage.ErrDuplicateID,
// чтобы вызывающий мог повторить вставку с новым id в той же транзакции.
// Занятый слот (уникальный индекс центр+дата+слот) возвращается как storage.ErrSlotTaken.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(bookingColumns...).
		Values(
			booking.ID,
			booking.Name,
			booking.Phone,
			booking.Email,
			booking.Address,
			booking.ServiceType,
			booking.District,
			booking.Taluk,
			booking.Center,
			booking.Date.Format(domain.DateFormat),
			booking.Slot,
			booking.Status,
			booking.CreatedAt,
		).
		Suffix("ON CONFLICT (id) DO NOTHING RETURNING created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", storage.ErrBuildQuery, err)
	}

	var createdAt time.Time
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: Create - id=%s", storage.ErrDuplicateID, booking.ID)
		}
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation && pqErr.Constraint == constraintCenterDay {
			return nil, fmt.Errorf("%w: Create - %s %s %s", storage.ErrSlotTaken,
				booking.Location, booking.Date.Format(domain.DateFormat), booking.Slot)
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", storage.ErrExecQuery, err)
	}

	created := *booking
	created.CreatedAt = createdAt
	return &created, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", storage.ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		var pqErr *pq.Error
		// невалидный uuid просто не может существовать
		if errors.As(err, &pqErr) && pqErr.Code == "22P02" {
			return nil, fmt.Errorf("%w: GetByID - id=%s", storage.ErrBookingNotFound, id)
		}
		return nil, fmt.Errorf("%w: GetByID - execute query: %v", storage.ErrExecQuery, err)
	}
	defer rows.Close()

	bookings, err := r.scanBookings(rows)
	if err != nil {
		return nil, err
	}
	if len(bookings) == 0 {
		return nil, fmt.Errorf("%w: GetByID - id=%s", storage.ErrBookingNotFound, id)
	}

	return bookings[0], nil
}

// GetByDay получает бронирования центра на дату.
// Внутри транзакции строки блокируются (FOR UPDATE).
func (r *Repository) GetByDay(ctx context.Context, loc domain.Location, date time.Time) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{
			"district":     loc.District,
			"taluk":        loc.Taluk,
			"center":       loc.Center,
			"booking_date": date.Format(domain.DateFormat),
		})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDay - build select query: %v", storage.ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDay - execute query: %v", storage.ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// List получает бронирования с фильтрацией, новые первыми
func (r *Repository) List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).From("bookings")

	if filter.District != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"district": *filter.District})
	}
	if filter.Taluk != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"taluk": *filter.Taluk})
	}
	if filter.Center != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"center": *filter.Center})
	}
	if filter.Date != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"booking_date": filter.Date.Format(domain.DateFormat)})
	}
	if filter.ServiceType != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"service_type": *filter.ServiceType})
	}

	query, args, err := selectBuilder.OrderBy("created_at DESC", "id DESC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", storage.ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", storage.ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// Delete удаляет бронирование. Отмена в этой системе - физическое удаление записи.
func (r *Repository) Delete(ctx context.Context, id string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", storage.ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "22P02" {
			return fmt.Errorf("%w: Delete - id=%s", storage.ErrBookingNotFound, id)
		}
		return fmt.Errorf("%w: Delete - execute delete: %v", storage.ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", storage.ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("%w: Delete - id=%s", storage.ErrBookingNotFound, id)
	}

	return nil
}

// Stats считает бронирования: всего, на дату и по типам услуг
func (r *Repository) Stats(ctx context.Context, date time.Time) (*domain.BookingStats, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("service_type", "COUNT(*)").
		Column(squirrel.Expr("COUNT(*) FILTER (WHERE booking_date = ?)", date.Format(domain.DateFormat))).
		From("bookings").
		GroupBy("service_type").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Stats - build select query: %v", storage.ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: Stats - execute query: %v", storage.ErrExecQuery, err)
	}
	defer rows.Close()

	stats := &domain.BookingStats{ByService: make(map[string]int)}
	for rows.Next() {
		var (
			service       string
			total, onDate int
		)
		if err := rows.Scan(&service, &total, &onDate); err != nil {
			return nil, fmt.Errorf("%w: Stats - scan row: %v", storage.ErrScanRow, err)
		}
		stats.ByService[service] = total
		stats.Total += total
		stats.OnDate += onDate
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: Stats - rows error: %v", storage.ErrScanRow, err)
	}

	return stats, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func (r *Repository) scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		var booking domain.Booking

		err := rows.Scan(
			&booking.ID,
			&booking.Name,
			&booking.Phone,
			&booking.Email,
			&booking.Address,
			&booking.ServiceType,
			&booking.District,
			&booking.Taluk,
			&booking.Center,
			&booking.Date,
			&booking.Slot,
			&booking.Status,
			&booking.CreatedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", storage.ErrScanRow, err)
		}

		booking.Date = domain.TruncateDay(booking.Date)
		bookings = append(bookings, &booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", storage.ErrScanRow, err)
	}

	return bookings, nil
}
