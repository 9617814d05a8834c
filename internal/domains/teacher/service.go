package teacher

import (
	"context"

	"github.com/google/uuid"

	"elearn-backend/internal/ordering"
)

type TeacherService interface {
	Create(ctx context.Context, req *CreateTeacherRequest) (*Teacher, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Teacher, error)
	List(ctx context.Context) ([]Teacher, error)
	Update(ctx context.Context, id uuid.UUID, req *UpdateTeacherRequest) (*Teacher, error)
	Delete(ctx context.Context, id uuid.UUID) error

	Reorder(ctx context.Context, desiredIDs []string) ([]Teacher, error)
	Move(ctx context.Context, id uuid.UUID, dir ordering.Direction) ([]Teacher, error)
}
