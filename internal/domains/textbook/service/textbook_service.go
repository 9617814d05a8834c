package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"elearn-backend/internal/domains/textbook"
	"elearn-backend/internal/ordering"
)

// Reorderer is the slice of ordering.Service the textbook service needs.
type Reorderer interface {
	ApplyExplicitOrder(ctx context.Context, scopeKey string, desiredIDs []string) error
	SwapAdjacent(ctx context.Context, scopeKey, itemID string, dir ordering.Direction) error
}

type textbookService struct {
	repo    textbook.TextbookRepository
	reorder Reorderer
}

func NewTextbookService(repo textbook.TextbookRepository, reorder Reorderer) textbook.TextbookService {
	return &textbookService{
		repo:    repo,
		reorder: reorder,
	}
}

func (s *textbookService) Create(ctx context.Context, ownerID uuid.UUID, req *textbook.CreateTextbookRequest) (*textbook.Textbook, error) {
	now := time.Now()
	entity := &textbook.Textbook{
		ID:        uuid.New(),
		OwnerID:   ownerID,
		Title:     req.Title,
		Author:    req.Author,
		ISBN:      req.ISBN,
		Price:     req.Price,
		Position:  ordering.UnsetPosition,
		CreatedAt: now,
		UpdatedAt: now,
	}

	return s.repo.Create(ctx, entity)
}

func (s *textbookService) GetByID(ctx context.Context, id uuid.UUID) (*textbook.Textbook, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *textbookService) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]textbook.Textbook, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

func (s *textbookService) Update(ctx context.Context, ownerID, textbookID uuid.UUID, req *textbook.UpdateTextbookRequest) (*textbook.Textbook, error) {
	entity, err := s.ownedTextbook(ctx, ownerID, textbookID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		entity.Title = *req.Title
	}
	if req.Author != nil {
		entity.Author = *req.Author
	}
	if req.ISBN != nil {
		entity.ISBN = *req.ISBN
	}
	if req.Price != nil {
		entity.Price = *req.Price
	}

	return s.repo.Update(ctx, entity)
}

func (s *textbookService) Delete(ctx context.Context, ownerID, textbookID uuid.UUID) error {
	if _, err := s.ownedTextbook(ctx, ownerID, textbookID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, textbookID)
}

// Reorder uses the owner's shelf as the ordering scope, so a caller
// can only reorder their own textbooks. Final positions are always
// assigned ascending; a storefront that wants the shelf displayed
// newest-first does that with a descending read, not here.
func (s *textbookService) Reorder(ctx context.Context, ownerID uuid.UUID, desiredIDs []string) ([]textbook.Textbook, error) {
	if err := s.reorder.ApplyExplicitOrder(ctx, ownerID.String(), desiredIDs); err != nil {
		return nil, err
	}

	if err := s.repo.InvalidateOwnerCache(ctx, ownerID); err != nil {
		return nil, err
	}
	return s.repo.ListByOwner(ctx, ownerID)
}

func (s *textbookService) Move(ctx context.Context, ownerID, textbookID uuid.UUID, dir ordering.Direction) ([]textbook.Textbook, error) {
	if _, err := s.ownedTextbook(ctx, ownerID, textbookID); err != nil {
		return nil, err
	}

	if err := s.reorder.SwapAdjacent(ctx, ownerID.String(), textbookID.String(), dir); err != nil {
		return nil, err
	}

	if err := s.repo.InvalidateOwnerCache(ctx, ownerID); err != nil {
		return nil, err
	}
	return s.repo.ListByOwner(ctx, ownerID)
}

func (s *textbookService) ownedTextbook(ctx context.Context, ownerID, textbookID uuid.UUID) (*textbook.Textbook, error) {
	entity, err := s.repo.GetByID(ctx, textbookID)
	if err != nil {
		return nil, err
	}
	if entity.OwnerID != ownerID {
		return nil, textbook.ErrNotTextbookOwner
	}
	return entity, nil
}
