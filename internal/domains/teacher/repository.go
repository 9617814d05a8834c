package teacher

import (
	"context"

	"github.com/google/uuid"
)

type TeacherRepository interface {
	Create(ctx context.Context, entity *Teacher) (*Teacher, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Teacher, error)
	List(ctx context.Context) ([]Teacher, error)
	Update(ctx context.Context, entity *Teacher) (*Teacher, error)
	Delete(ctx context.Context, id uuid.UUID) error
	InvalidateListCache(ctx context.Context) error
}
