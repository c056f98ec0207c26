package upstream

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AvailabilityService/pkg/psqlbuilder"
)

const (
	tableCategories   = "resource_categories"
	tableReservations = "reservations"
	tableBlocks       = "resource_blocks"
)

// Repository read-only зеркало данных Mews в PostgreSQL
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория зеркала
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// FetchCatalog получает категории ресурсов сервисов
// Пустой список сервисов означает все сервисы
func (r *Repository) FetchCatalog(ctx context.Context, serviceIDs []string) ([]domain.ResourceCategory, error) {
	query, args, err := categoriesQuery(serviceIDs)
	if err != nil {
		return nil, fmt.Errorf("%w: FetchCatalog - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(dbmetrics.WithOperation(ctx, tableCategories), query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: FetchCatalog - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	var categories []domain.ResourceCategory
	for rows.Next() {
		var (
			category domain.ResourceCategory
			name     sql.NullString
		)
		err := rows.Scan(
			&category.ID,
			&category.ServiceID,
			&category.Type,
			&category.Active,
			&name,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: FetchCatalog - scan row: %v", ErrScanRow, err)
		}
		category.Name = name.String
		categories = append(categories, category)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: FetchCatalog - rows iteration: %v", ErrExecQuery, err)
	}

	return categories, nil
}

// FetchBookedIntervals получает неотмененные резервации сервисов, пересекающиеся с интервалом
func (r *Repository) FetchBookedIntervals(ctx context.Context, rng domain.TimeRange, serviceIDs []string) ([]domain.BookedInterval, error) {
	query, args, err := reservationsQuery(rng, serviceIDs)
	if err != nil {
		return nil, fmt.Errorf("%w: FetchBookedIntervals - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(dbmetrics.WithOperation(ctx, tableReservations), query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: FetchBookedIntervals - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	var intervals []domain.BookedInterval
	for rows.Next() {
		var interval domain.BookedInterval
		err := rows.Scan(
			&interval.ID,
			&interval.CategoryID,
			&interval.Start,
			&interval.End,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: FetchBookedIntervals - scan row: %v", ErrScanRow, err)
		}
		interval.Start = interval.Start.UTC()
		interval.End = interval.End.UTC()
		intervals = append(intervals, interval)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: FetchBookedIntervals - rows iteration: %v", ErrExecQuery, err)
	}

	return intervals, nil
}

// FetchBlockIntervals получает блокировки ресурсов, пересекающиеся с интервалом
func (r *Repository) FetchBlockIntervals(ctx context.Context, rng domain.TimeRange) ([]domain.BlockInterval, error) {
	query, args, err := blocksQuery(rng)
	if err != nil {
		return nil, fmt.Errorf("%w: FetchBlockIntervals - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(dbmetrics.WithOperation(ctx, tableBlocks), query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: FetchBlockIntervals - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	var blocks []domain.BlockInterval
	for rows.Next() {
		var (
			block    domain.BlockInterval
			resource sql.NullString
		)
		err := rows.Scan(
			&block.ID,
			&resource,
			&block.Start,
			&block.End,
			&block.Active,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: FetchBlockIntervals - scan row: %v", ErrScanRow, err)
		}
		block.AssignedResourceID = resource.String
		block.Start = block.Start.UTC()
		block.End = block.End.UTC()
		blocks = append(blocks, block)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: FetchBlockIntervals - rows iteration: %v", ErrExecQuery, err)
	}

	return blocks, nil
}

func categoriesQuery(serviceIDs []string) (string, []interface{}, error) {
	q := psqlbuilder.Select(
		"id",
		"service_id",
		"type",
		"is_active",
		"name",
	).
		From(tableCategories).
		OrderBy("service_id", "id")

	if len(serviceIDs) > 0 {
		q = q.Where(squirrel.Eq{"service_id": serviceIDs})
	}
	return q.ToSql()
}

// reservationsQuery полуоткрытое пересечение: start < rng.End AND end > rng.Start
func reservationsQuery(rng domain.TimeRange, serviceIDs []string) (string, []interface{}, error) {
	q := psqlbuilder.Select(
		"id",
		"requested_category_id",
		"start_utc",
		"end_utc",
	).
		From(tableReservations).
		Where(squirrel.Lt{"start_utc": rng.End.UTC()}).
		Where(squirrel.Gt{"end_utc": rng.Start.UTC()}).
		Where(squirrel.NotEq{"state": domain.ReservationStateCanceled}).
		OrderBy("start_utc", "id")

	if len(serviceIDs) > 0 {
		q = q.Where(squirrel.Eq{"service_id": serviceIDs})
	}
	return q.ToSql()
}

func blocksQuery(rng domain.TimeRange) (string, []interface{}, error) {
	return psqlbuilder.Select(
		"id",
		"assigned_resource_id",
		"start_utc",
		"end_utc",
		"is_active",
	).
		From(tableBlocks).
		Where(squirrel.Lt{"start_utc": rng.End.UTC()}).
		Where(squirrel.Gt{"end_utc": rng.Start.UTC()}).
		OrderBy("start_utc", "id").
		ToSql()
}
