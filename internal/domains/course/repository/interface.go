package repository

import (
	"context"

	"github.com/google/uuid"

	"elearn-backend/internal/domains/course/model"
)

type CourseRepository interface {
	Create(ctx context.Context, entity *model.Course) (*model.Course, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Course, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Course, error)
	Update(ctx context.Context, entity *model.Course) (*model.Course, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// InvalidateOwnerCache drops cached lists for an owner. Called
	// after position changes, which bypass the CRUD methods.
	InvalidateOwnerCache(ctx context.Context, ownerID uuid.UUID) error
}
