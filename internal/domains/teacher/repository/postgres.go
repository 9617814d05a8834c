package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"elearn-backend/internal/domains/teacher"
	"elearn-backend/pkg/cache"
	"elearn-backend/pkg/logger"
)

const (
	listCacheKey = "teachers:list"
	listCacheTTL = 10 * time.Minute
)

type postgresRepository struct {
	pool  *pgxpool.Pool
	cache cache.Cache
}

func NewPostgresRepository(pool *pgxpool.Pool, cache cache.Cache) teacher.TeacherRepository {
	return &postgresRepository{
		pool:  pool,
		cache: cache,
	}
}

const teacherColumns = `id, name, headline, bio, position, created_at, updated_at`

func scanTeacher(row pgx.Row) (*teacher.Teacher, error) {
	entity := &teacher.Teacher{}
	err := row.Scan(
		&entity.ID,
		&entity.Name,
		&entity.Headline,
		&entity.Bio,
		&entity.Position,
		&entity.CreatedAt,
		&entity.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return entity, nil
}

func (r *postgresRepository) Create(ctx context.Context, entity *teacher.Teacher) (*teacher.Teacher, error) {
	const query = `
		INSERT INTO teachers (id, name, headline, bio, position, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + teacherColumns

	row := r.pool.QueryRow(ctx, query,
		entity.ID,
		entity.Name,
		entity.Headline,
		entity.Bio,
		entity.Position,
		entity.CreatedAt,
		entity.UpdatedAt,
	)

	created, err := scanTeacher(row)
	if err != nil {
		logger.Error("teacher Create: database error", err)
		return nil, fmt.Errorf("failed to create teacher: %w", err)
	}

	_ = r.InvalidateListCache(ctx)
	return created, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*teacher.Teacher, error) {
	const query = `SELECT ` + teacherColumns + ` FROM teachers WHERE id = $1`

	entity, err := scanTeacher(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, teacher.ErrTeacherNotFound
		}
		logger.Error("teacher GetByID: database error", err)
		return nil, fmt.Errorf("failed to get teacher: %w", err)
	}

	return entity, nil
}

func (r *postgresRepository) List(ctx context.Context) ([]teacher.Teacher, error) {
	var cached []teacher.Teacher
	if found, err := r.cache.Get(ctx, listCacheKey, &cached); err == nil && found {
		return cached, nil
	}

	const query = `
		SELECT ` + teacherColumns + `
		FROM teachers
		ORDER BY (position = 0), position, created_at DESC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		logger.Error("teacher List: database error", err)
		return nil, fmt.Errorf("failed to list teachers: %w", err)
	}
	defer rows.Close()

	var teachers []teacher.Teacher
	for rows.Next() {
		entity, err := scanTeacher(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan teacher: %w", err)
		}
		teachers = append(teachers, *entity)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read teachers: %w", err)
	}

	if err := r.cache.Set(ctx, listCacheKey, teachers, listCacheTTL); err != nil {
		logger.Error("teacher List: cache set failed", err)
	}

	return teachers, nil
}

func (r *postgresRepository) Update(ctx context.Context, entity *teacher.Teacher) (*teacher.Teacher, error) {
	const query = `
		UPDATE teachers
		SET name = $2, headline = $3, bio = $4, updated_at = $5
		WHERE id = $1
		RETURNING ` + teacherColumns

	row := r.pool.QueryRow(ctx, query,
		entity.ID,
		entity.Name,
		entity.Headline,
		entity.Bio,
		time.Now(),
	)

	updated, err := scanTeacher(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, teacher.ErrTeacherNotFound
		}
		logger.Error("teacher Update: database error", err)
		return nil, fmt.Errorf("failed to update teacher: %w", err)
	}

	_ = r.InvalidateListCache(ctx)
	return updated, nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	const query = `DELETE FROM teachers WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		logger.Error("teacher Delete: database error", err)
		return fmt.Errorf("failed to delete teacher: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return teacher.ErrTeacherNotFound
	}

	_ = r.InvalidateListCache(ctx)
	return nil
}

func (r *postgresRepository) InvalidateListCache(ctx context.Context) error {
	return r.cache.Delete(ctx, listCacheKey)
}
