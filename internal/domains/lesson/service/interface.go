package service

import (
	"context"

	"github.com/google/uuid"

	"elearn-backend/internal/domains/lesson/model"
	"elearn-backend/internal/ordering"
)

type LessonService interface {
	Create(ctx context.Context, courseID uuid.UUID, req *model.CreateLessonRequest) (*model.Lesson, error)
	GetByID(ctx context.Context, courseID, lessonID uuid.UUID) (*model.Lesson, error)
	ListByCourse(ctx context.Context, courseID uuid.UUID) ([]model.Lesson, error)
	Update(ctx context.Context, courseID, lessonID uuid.UUID, req *model.UpdateLessonRequest) (*model.Lesson, error)
	Delete(ctx context.Context, courseID, lessonID uuid.UUID) error

	Reorder(ctx context.Context, courseID uuid.UUID, desiredIDs []string) ([]model.Lesson, error)
	Move(ctx context.Context, courseID, lessonID uuid.UUID, dir ordering.Direction) ([]model.Lesson, error)
}

// Reorderer is the slice of ordering.Service the lesson service needs.
type Reorderer interface {
	ApplyExplicitOrder(ctx context.Context, scopeKey string, desiredIDs []string) error
	SwapAdjacent(ctx context.Context, scopeKey, itemID string, dir ordering.Direction) error
}
