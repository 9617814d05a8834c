package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"elearn-backend/internal/domains/course/model"
	"elearn-backend/pkg/cache"
	"elearn-backend/pkg/logger"
)

const (
	ownerListCacheKey = "courses:owner:%s"
	listCacheTTL      = 5 * time.Minute
)

type postgresRepository struct {
	pool  *pgxpool.Pool
	cache cache.Cache
}

func NewPostgresRepository(pool *pgxpool.Pool, cache cache.Cache) CourseRepository {
	return &postgresRepository{
		pool:  pool,
		cache: cache,
	}
}

const courseColumns = `
	id, owner_id, title, slug, description, price,
	published, position, created_at, updated_at
`

func scanCourse(row pgx.Row) (*model.Course, error) {
	entity := &model.Course{}
	err := row.Scan(
		&entity.ID,
		&entity.OwnerID,
		&entity.Title,
		&entity.Slug,
		&entity.Description,
		&entity.Price,
		&entity.Published,
		&entity.Position,
		&entity.CreatedAt,
		&entity.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return entity, nil
}

func (r *postgresRepository) Create(ctx context.Context, entity *model.Course) (*model.Course, error) {
	const query = `
		INSERT INTO courses (
			id, owner_id, title, slug, description, price,
			published, position, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + courseColumns

	row := r.pool.QueryRow(ctx, query,
		entity.ID,
		entity.OwnerID,
		entity.Title,
		entity.Slug,
		entity.Description,
		entity.Price,
		entity.Published,
		entity.Position,
		entity.CreatedAt,
		entity.UpdatedAt,
	)

	created, err := scanCourse(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.ConstraintName == "uq_courses_owner_slug" {
			return nil, model.ErrDuplicateSlug
		}
		logger.Error("course Create: database error", err)
		return nil, fmt.Errorf("failed to create course: %w", err)
	}

	_ = r.InvalidateOwnerCache(ctx, entity.OwnerID)
	return created, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Course, error) {
	const query = `SELECT ` + courseColumns + ` FROM courses WHERE id = $1`

	entity, err := scanCourse(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrCourseNotFound
		}
		logger.Error("course GetByID: database error", err)
		return nil, fmt.Errorf("failed to get course: %w", err)
	}

	return entity, nil
}

func (r *postgresRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Course, error) {
	cacheKey := fmt.Sprintf(ownerListCacheKey, ownerID)

	var cached []model.Course
	if found, err := r.cache.Get(ctx, cacheKey, &cached); err == nil && found {
		return cached, nil
	}

	// Unreconciled rows (position 0) trail the list, newest first,
	// mirroring the reconciler's remainder order.
	const query = `
		SELECT ` + courseColumns + `
		FROM courses
		WHERE owner_id = $1
		ORDER BY (position = 0), position, created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		logger.Error("course ListByOwner: database error", err)
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}
	defer rows.Close()

	var courses []model.Course
	for rows.Next() {
		entity, err := scanCourse(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan course: %w", err)
		}
		courses = append(courses, *entity)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read courses: %w", err)
	}

	if err := r.cache.Set(ctx, cacheKey, courses, listCacheTTL); err != nil {
		logger.Error("course ListByOwner: cache set failed", err)
	}

	return courses, nil
}

func (r *postgresRepository) Update(ctx context.Context, entity *model.Course) (*model.Course, error) {
	const query = `
		UPDATE courses
		SET title = $2, slug = $3, description = $4, price = $5,
		    published = $6, updated_at = $7
		WHERE id = $1
		RETURNING ` + courseColumns

	row := r.pool.QueryRow(ctx, query,
		entity.ID,
		entity.Title,
		entity.Slug,
		entity.Description,
		entity.Price,
		entity.Published,
		time.Now(),
	)

	updated, err := scanCourse(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrCourseNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.ConstraintName == "uq_courses_owner_slug" {
			return nil, model.ErrDuplicateSlug
		}
		logger.Error("course Update: database error", err)
		return nil, fmt.Errorf("failed to update course: %w", err)
	}

	_ = r.InvalidateOwnerCache(ctx, updated.OwnerID)
	return updated, nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	// Remaining positions are not compacted here; the next
	// reconciliation densifies them.
	const query = `DELETE FROM courses WHERE id = $1 RETURNING owner_id`

	var ownerID uuid.UUID
	if err := r.pool.QueryRow(ctx, query, id).Scan(&ownerID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.ErrCourseNotFound
		}
		logger.Error("course Delete: database error", err)
		return fmt.Errorf("failed to delete course: %w", err)
	}

	_ = r.InvalidateOwnerCache(ctx, ownerID)
	return nil
}

func (r *postgresRepository) InvalidateOwnerCache(ctx context.Context, ownerID uuid.UUID) error {
	return r.cache.Delete(ctx, fmt.Sprintf(ownerListCacheKey, ownerID))
}
