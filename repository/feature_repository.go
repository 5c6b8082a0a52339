package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"featuretoggle/entity"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

var (
	ErrFeatureNotFound      = errors.New("feature not found")
	ErrFeatureAlreadyExists = errors.New("feature already exists")
)

// uniqueViolation is the Postgres error code raised by the unique index on the
// feature slug.
const uniqueViolation = "23505"

// StatusAggregate is the result of a single grouping pass over the collection
// by the active field.
type StatusAggregate struct {
	TotalActives   int
	TotalInactives int
	TotalFeatures  int
}

// FeatureRepository is the persistence port for feature records. Slug
// uniqueness is enforced by the storage schema, not by callers.
type FeatureRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Feature, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Feature, error)
	ListAll(ctx context.Context) ([]*entity.Feature, error)
	ListFiltered(ctx context.Context, filter entity.FeatureFilter, search string, page, quantity int) ([]*entity.Feature, error)
	CountFiltered(ctx context.Context, filter entity.FeatureFilter, search string) (int64, error)
	Insert(ctx context.Context, feature *entity.Feature) (*entity.Feature, error)
	ReplaceFields(ctx context.Context, feature *entity.Feature) (*entity.Feature, error)
	Delete(ctx context.Context, id uuid.UUID) (*entity.Feature, error)
	AggregateStatus(ctx context.Context) (StatusAggregate, error)
}

type pgFeatureRepository struct {
	db *sqlx.DB
}

func NewFeatureRepository(db *sqlx.DB) FeatureRepository {
	return &pgFeatureRepository{db: db}
}

const featureColumns = `id, feature, name, description, tags, active, created_at, updated_at`

func (r *pgFeatureRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Feature, error) {
	var feature entity.Feature
	query := `SELECT ` + featureColumns + ` FROM features WHERE id = $1`
	err := r.db.GetContext(ctx, &feature, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrFeatureNotFound
		}
		return nil, fmt.Errorf("failed to get feature by id: %w", err)
	}
	return &feature, nil
}

func (r *pgFeatureRepository) GetBySlug(ctx context.Context, slug string) (*entity.Feature, error) {
	var feature entity.Feature
	query := `SELECT ` + featureColumns + ` FROM features WHERE feature = $1`
	err := r.db.GetContext(ctx, &feature, query, slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrFeatureNotFound
		}
		return nil, fmt.Errorf("failed to get feature by slug: %w", err)
	}
	return &feature, nil
}

func (r *pgFeatureRepository) ListAll(ctx context.Context) ([]*entity.Feature, error) {
	var features []*entity.Feature
	query := `SELECT ` + featureColumns + ` FROM features ORDER BY created_at, id`
	err := r.db.SelectContext(ctx, &features, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list features: %w", err)
	}
	return features, nil
}

// filterPredicate builds the shared WHERE clause for ListFiltered and
// CountFiltered so that page metadata always agrees with page contents.
func filterPredicate(filter entity.FeatureFilter, search string) (string, []interface{}) {
	where := ""
	args := []interface{}{}

	switch filter {
	case entity.FilterActive:
		where = "WHERE active = TRUE"
	case entity.FilterInactive:
		where = "WHERE active = FALSE"
	}

	if search != "" {
		if where == "" {
			where = "WHERE "
		} else {
			where += " AND "
		}
		args = append(args, search)
		where += fmt.Sprintf("name ILIKE '%%' || $%d || '%%'", len(args))
	}

	return where, args
}

func (r *pgFeatureRepository) ListFiltered(ctx context.Context, filter entity.FeatureFilter, search string, page, quantity int) ([]*entity.Feature, error) {
	where, args := filterPredicate(filter, search)

	args = append(args, quantity, (page-1)*quantity)
	query := fmt.Sprintf(`SELECT %s FROM features %s ORDER BY created_at, id LIMIT $%d OFFSET $%d`,
		featureColumns, where, len(args)-1, len(args))

	var features []*entity.Feature
	err := r.db.SelectContext(ctx, &features, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list filtered features: %w", err)
	}
	return features, nil
}

func (r *pgFeatureRepository) CountFiltered(ctx context.Context, filter entity.FeatureFilter, search string) (int64, error) {
	where, args := filterPredicate(filter, search)

	var total int64
	query := fmt.Sprintf(`SELECT COUNT(*) FROM features %s`, where)
	err := r.db.GetContext(ctx, &total, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to count features: %w", err)
	}
	return total, nil
}

func (r *pgFeatureRepository) Insert(ctx context.Context, feature *entity.Feature) (*entity.Feature, error) {
	feature.ID = uuid.New()
	now := time.Now().UTC()
	feature.CreatedAt = now
	feature.UpdatedAt = now

	query := `
		INSERT INTO features (id, feature, name, description, tags, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.ExecContext(ctx, query,
		feature.ID, feature.Feature, feature.Name, feature.Description,
		feature.Tags, feature.Active, feature.CreatedAt, feature.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, ErrFeatureAlreadyExists
		}
		return nil, fmt.Errorf("failed to insert feature: %w", err)
	}
	return feature, nil
}

func (r *pgFeatureRepository) ReplaceFields(ctx context.Context, feature *entity.Feature) (*entity.Feature, error) {
	query := `
		UPDATE features
		SET feature = $1, name = $2, description = $3, tags = $4, active = $5, updated_at = NOW()
		WHERE id = $6
		RETURNING ` + featureColumns

	var updated entity.Feature
	err := r.db.GetContext(ctx, &updated, query,
		feature.Feature, feature.Name, feature.Description,
		feature.Tags, feature.Active, feature.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrFeatureNotFound
		}
		return nil, fmt.Errorf("failed to update feature: %w", err)
	}
	return &updated, nil
}

func (r *pgFeatureRepository) Delete(ctx context.Context, id uuid.UUID) (*entity.Feature, error) {
	var deleted entity.Feature
	query := `DELETE FROM features WHERE id = $1 RETURNING ` + featureColumns
	err := r.db.GetContext(ctx, &deleted, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrFeatureNotFound
		}
		return nil, fmt.Errorf("failed to delete feature: %w", err)
	}
	return &deleted, nil
}

func (r *pgFeatureRepository) AggregateStatus(ctx context.Context) (StatusAggregate, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT active, COUNT(*) FROM features GROUP BY active`)
	if err != nil {
		return StatusAggregate{}, fmt.Errorf("failed to aggregate feature status: %w", err)
	}
	defer rows.Close()

	var agg StatusAggregate
	for rows.Next() {
		var active bool
		var count int
		if err := rows.Scan(&active, &count); err != nil {
			return StatusAggregate{}, fmt.Errorf("failed to scan feature status: %w", err)
		}
		if active {
			agg.TotalActives = count
		} else {
			agg.TotalInactives = count
		}
	}
	if err := rows.Err(); err != nil {
		return StatusAggregate{}, fmt.Errorf("failed to aggregate feature status: %w", err)
	}
	agg.TotalFeatures = agg.TotalActives + agg.TotalInactives
	return agg, nil
}
