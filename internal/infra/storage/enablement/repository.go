package enablement

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

// Repository репозиторий включенных администратором слотов
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetEnablement получает запись для точного ключа и даты.
// Уровень определяется пустыми taluk/center:
// 1. (district, taluk, center) - конкретный центр
// 2. (district, taluk, "") - весь талук
// 3. (district, "", "") - весь район
func (r *Repository) GetEnablement(ctx context.Context, key domain.EnablementKey, date time.Time) (*domain.SlotEnablement, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("slots", "updated_at").
		From("slot_enablements").
		Where(squirrel.Eq{
			"district":     key.District,
			"taluk":        key.Taluk,
			"center":       key.Center,
			"enabled_date": date.Format(domain.DateFormat),
		})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetEnablement - build select query: %v", storage.ErrBuildQuery, err)
	}

	var (
		slots     pq.StringArray
		updatedAt time.Time
	)
	err = executor.QueryRowContext(ctx, query, args...).Scan(&slots, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: GetEnablement - %+v %s", storage.ErrEnablementNotFound, key, date.Format(domain.DateFormat))
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetEnablement - scan: %v", storage.ErrScanRow, err)
	}

	return &domain.SlotEnablement{
		Key:       key,
		Date:      domain.TruncateDay(date),
		Slots:     append([]string{}, slots...),
		UpdatedAt: updatedAt,
	}, nil
}

// ResolveEnablement получает запись с учетом иерархии приоритетов:
// 1. Конкретный центр
// 2. Весь талук
// 3. Весь район
//
// Если запись не найдена ни на одном уровне, возвращает storage.ErrEnablementNotFound
func (r *Repository) ResolveEnablement(ctx context.Context, loc domain.Location, date time.Time) (*domain.SlotEnablement, error) {
	for level, key := range domain.KeysFor(loc) {
		e, err := r.GetEnablement(ctx, key, date)
		if err == nil {
			return e, nil
		}
		if !errors.Is(err, storage.ErrEnablementNotFound) {
			return nil, fmt.Errorf("%w: ResolveEnablement - level %d (%s): %v", storage.ErrExecQuery, level+1, key.Granularity(), err)
		}
	}

	return nil, fmt.Errorf("%w: ResolveEnablement - %s %s", storage.ErrEnablementNotFound, loc, date.Format(domain.DateFormat))
}

// SaveEnablement создает или заменяет запись (upsert по ключу и дате)
func (r *Repository) SaveEnablement(ctx context.Context, e *domain.SlotEnablement) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updatedAt := e.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now().UTC()
	}
	slots := e.Slots
	if slots == nil {
		slots = []string{}
	}

	query, args, err := psqlbuilder.Insert("slot_enablements").
		Columns("district", "taluk", "center", "enabled_date", "slots", "updated_at").
		Values(e.Key.District, e.Key.Taluk, e.Key.Center, e.Date.Format(domain.DateFormat), pq.Array(slots), updatedAt).
		Suffix("ON CONFLICT (district, taluk, center, enabled_date) DO UPDATE SET slots = EXCLUDED.slots, updated_at = EXCLUDED.updated_at").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SaveEnablement - build upsert query: %v", storage.ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: SaveEnablement - execute upsert: %v", storage.ErrExecQuery, err)
	}

	return nil
}
