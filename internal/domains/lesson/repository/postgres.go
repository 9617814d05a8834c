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

	"elearn-backend/internal/domains/lesson/model"
	"elearn-backend/pkg/cache"
	"elearn-backend/pkg/logger"
)

const (
	courseListCacheKey = "lessons:course:%s"
	listCacheTTL       = 5 * time.Minute
)

type postgresRepository struct {
	pool  *pgxpool.Pool
	cache cache.Cache
}

func NewPostgresRepository(pool *pgxpool.Pool, cache cache.Cache) LessonRepository {
	return &postgresRepository{
		pool:  pool,
		cache: cache,
	}
}

const lessonColumns = `
	id, course_id, title, video_url, duration_minutes,
	free_preview, position, created_at, updated_at
`

func scanLesson(row pgx.Row) (*model.Lesson, error) {
	entity := &model.Lesson{}
	err := row.Scan(
		&entity.ID,
		&entity.CourseID,
		&entity.Title,
		&entity.VideoURL,
		&entity.DurationMinutes,
		&entity.FreePreview,
		&entity.Position,
		&entity.CreatedAt,
		&entity.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return entity, nil
}

func (r *postgresRepository) Create(ctx context.Context, entity *model.Lesson) (*model.Lesson, error) {
	const query = `
		INSERT INTO lessons (
			id, course_id, title, video_url, duration_minutes,
			free_preview, position, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + lessonColumns

	row := r.pool.QueryRow(ctx, query,
		entity.ID,
		entity.CourseID,
		entity.Title,
		entity.VideoURL,
		entity.DurationMinutes,
		entity.FreePreview,
		entity.Position,
		entity.CreatedAt,
		entity.UpdatedAt,
	)

	created, err := scanLesson(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.ConstraintName == "lessons_course_id_fkey" {
			return nil, model.ErrCourseNotFound
		}
		logger.Error("lesson Create: database error", err)
		return nil, fmt.Errorf("failed to create lesson: %w", err)
	}

	_ = r.InvalidateCourseCache(ctx, entity.CourseID)
	return created, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Lesson, error) {
	const query = `SELECT ` + lessonColumns + ` FROM lessons WHERE id = $1`

	entity, err := scanLesson(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrLessonNotFound
		}
		logger.Error("lesson GetByID: database error", err)
		return nil, fmt.Errorf("failed to get lesson: %w", err)
	}

	return entity, nil
}

func (r *postgresRepository) ListByCourse(ctx context.Context, courseID uuid.UUID) ([]model.Lesson, error) {
	cacheKey := fmt.Sprintf(courseListCacheKey, courseID)

	var cached []model.Lesson
	if found, err := r.cache.Get(ctx, cacheKey, &cached); err == nil && found {
		return cached, nil
	}

	const query = `
		SELECT ` + lessonColumns + `
		FROM lessons
		WHERE course_id = $1
		ORDER BY (position = 0), position, created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, courseID)
	if err != nil {
		logger.Error("lesson ListByCourse: database error", err)
		return nil, fmt.Errorf("failed to list lessons: %w", err)
	}
	defer rows.Close()

	var lessons []model.Lesson
	for rows.Next() {
		entity, err := scanLesson(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan lesson: %w", err)
		}
		lessons = append(lessons, *entity)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read lessons: %w", err)
	}

	if err := r.cache.Set(ctx, cacheKey, lessons, listCacheTTL); err != nil {
		logger.Error("lesson ListByCourse: cache set failed", err)
	}

	return lessons, nil
}

func (r *postgresRepository) Update(ctx context.Context, entity *model.Lesson) (*model.Lesson, error) {
	const query = `
		UPDATE lessons
		SET title = $2, video_url = $3, duration_minutes = $4,
		    free_preview = $5, updated_at = $6
		WHERE id = $1
		RETURNING ` + lessonColumns

	row := r.pool.QueryRow(ctx, query,
		entity.ID,
		entity.Title,
		entity.VideoURL,
		entity.DurationMinutes,
		entity.FreePreview,
		time.Now(),
	)

	updated, err := scanLesson(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrLessonNotFound
		}
		logger.Error("lesson Update: database error", err)
		return nil, fmt.Errorf("failed to update lesson: %w", err)
	}

	_ = r.InvalidateCourseCache(ctx, updated.CourseID)
	return updated, nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	const query = `DELETE FROM lessons WHERE id = $1 RETURNING course_id`

	var courseID uuid.UUID
	if err := r.pool.QueryRow(ctx, query, id).Scan(&courseID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.ErrLessonNotFound
		}
		logger.Error("lesson Delete: database error", err)
		return fmt.Errorf("failed to delete lesson: %w", err)
	}

	_ = r.InvalidateCourseCache(ctx, courseID)
	return nil
}

func (r *postgresRepository) CourseExists(ctx context.Context, courseID uuid.UUID) (bool, error) {
	const query = `SELECT EXISTS(SELECT 1 FROM courses WHERE id = $1)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, courseID).Scan(&exists); err != nil {
		logger.Error("lesson CourseExists: database error", err)
		return false, fmt.Errorf("failed to check course: %w", err)
	}
	return exists, nil
}

func (r *postgresRepository) InvalidateCourseCache(ctx context.Context, courseID uuid.UUID) error {
	return r.cache.Delete(ctx, fmt.Sprintf(courseListCacheKey, courseID))
}
