package repository

import (
	"context"

	"github.com/google/uuid"

	"elearn-backend/internal/domains/lesson/model"
)

type LessonRepository interface {
	Create(ctx context.Context, entity *model.Lesson) (*model.Lesson, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Lesson, error)
	ListByCourse(ctx context.Context, courseID uuid.UUID) ([]model.Lesson, error)
	Update(ctx context.Context, entity *model.Lesson) (*model.Lesson, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// CourseExists lets the service 404 on the parent before touching
	// lessons.
	CourseExists(ctx context.Context, courseID uuid.UUID) (bool, error)

	InvalidateCourseCache(ctx context.Context, courseID uuid.UUID) error
}
