package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"elearn-backend/internal/domains/enrollment"
	"elearn-backend/pkg/logger"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) enrollment.EnrollmentRepository {
	return &postgresRepository{pool: pool}
}

const enrollmentColumns = `id, user_id, course_id, price_paid, created_at`

func scanEnrollment(row pgx.Row) (*enrollment.Enrollment, error) {
	entity := &enrollment.Enrollment{}
	err := row.Scan(
		&entity.ID,
		&entity.UserID,
		&entity.CourseID,
		&entity.PricePaid,
		&entity.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return entity, nil
}

func (r *postgresRepository) Create(ctx context.Context, entity *enrollment.Enrollment) (*enrollment.Enrollment, error) {
	const query = `
		INSERT INTO enrollments (id, user_id, course_id, price_paid, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + enrollmentColumns

	row := r.pool.QueryRow(ctx, query,
		entity.ID,
		entity.UserID,
		entity.CourseID,
		entity.PricePaid,
		entity.CreatedAt,
	)

	created, err := scanEnrollment(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.ConstraintName {
			case "uq_enrollments_user_course":
				return nil, enrollment.ErrAlreadyEnrolled
			case "enrollments_course_id_fkey":
				return nil, enrollment.ErrCourseNotFound
			}
		}
		logger.Error("enrollment Create: database error", err)
		return nil, fmt.Errorf("failed to create enrollment: %w", err)
	}

	return created, nil
}

func (r *postgresRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]enrollment.Enrollment, error) {
	const query = `
		SELECT ` + enrollmentColumns + `
		FROM enrollments
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		logger.Error("enrollment ListByUser: database error", err)
		return nil, fmt.Errorf("failed to list enrollments: %w", err)
	}
	defer rows.Close()

	var enrollments []enrollment.Enrollment
	for rows.Next() {
		entity, err := scanEnrollment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan enrollment: %w", err)
		}
		enrollments = append(enrollments, *entity)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read enrollments: %w", err)
	}

	return enrollments, nil
}
