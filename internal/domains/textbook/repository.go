package textbook

import (
	"context"

	"github.com/google/uuid"
)

type TextbookRepository interface {
	Create(ctx context.Context, entity *Textbook) (*Textbook, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Textbook, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]Textbook, error)
	Update(ctx context.Context, entity *Textbook) (*Textbook, error)
	Delete(ctx context.Context, id uuid.UUID) error
	InvalidateOwnerCache(ctx context.Context, ownerID uuid.UUID) error
}
