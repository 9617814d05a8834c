package service

import (
	"context"

	"github.com/google/uuid"

	"elearn-backend/internal/domains/course/model"
	"elearn-backend/internal/ordering"
)

type CourseService interface {
	Create(ctx context.Context, ownerID uuid.UUID, req *model.CreateCourseRequest) (*model.Course, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Course, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Course, error)
	Update(ctx context.Context, ownerID, courseID uuid.UUID, req *model.UpdateCourseRequest) (*model.Course, error)
	Delete(ctx context.Context, ownerID, courseID uuid.UUID) error

	// Reorder applies an explicit order to the owner's catalog.
	Reorder(ctx context.Context, ownerID uuid.UUID, desiredIDs []string) ([]model.Course, error)
	// Move shifts one course a single step up or down.
	Move(ctx context.Context, ownerID, courseID uuid.UUID, dir ordering.Direction) ([]model.Course, error)
}

// Reorderer is the slice of ordering.Service the course service needs.
type Reorderer interface {
	ApplyExplicitOrder(ctx context.Context, scopeKey string, desiredIDs []string) error
	SwapAdjacent(ctx context.Context, scopeKey, itemID string, dir ordering.Direction) error
}
