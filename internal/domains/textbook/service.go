package textbook

import (
	"context"

	"github.com/google/uuid"

	"elearn-backend/internal/ordering"
)

type TextbookService interface {
	Create(ctx context.Context, ownerID uuid.UUID, req *CreateTextbookRequest) (*Textbook, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Textbook, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]Textbook, error)
	Update(ctx context.Context, ownerID, textbookID uuid.UUID, req *UpdateTextbookRequest) (*Textbook, error)
	Delete(ctx context.Context, ownerID, textbookID uuid.UUID) error

	Reorder(ctx context.Context, ownerID uuid.UUID, desiredIDs []string) ([]Textbook, error)
	Move(ctx context.Context, ownerID, textbookID uuid.UUID, dir ordering.Direction) ([]Textbook, error)
}
