package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"elearn-backend/internal/domains/teacher"
	"elearn-backend/internal/ordering"
)

// Reorderer is the slice of ordering.Service the teacher service needs.
type Reorderer interface {
	ApplyExplicitOrder(ctx context.Context, scopeKey string, desiredIDs []string) error
	SwapAdjacent(ctx context.Context, scopeKey, itemID string, dir ordering.Direction) error
}

type teacherService struct {
	repo    teacher.TeacherRepository
	reorder Reorderer
}

func NewTeacherService(repo teacher.TeacherRepository, reorder Reorderer) teacher.TeacherService {
	return &teacherService{
		repo:    repo,
		reorder: reorder,
	}
}

func (s *teacherService) Create(ctx context.Context, req *teacher.CreateTeacherRequest) (*teacher.Teacher, error) {
	now := time.Now()
	entity := &teacher.Teacher{
		ID:        uuid.New(),
		Name:      req.Name,
		Headline:  req.Headline,
		Bio:       req.Bio,
		Position:  ordering.UnsetPosition,
		CreatedAt: now,
		UpdatedAt: now,
	}

	return s.repo.Create(ctx, entity)
}

func (s *teacherService) GetByID(ctx context.Context, id uuid.UUID) (*teacher.Teacher, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *teacherService) List(ctx context.Context) ([]teacher.Teacher, error) {
	return s.repo.List(ctx)
}

func (s *teacherService) Update(ctx context.Context, id uuid.UUID, req *teacher.UpdateTeacherRequest) (*teacher.Teacher, error) {
	entity, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		entity.Name = *req.Name
	}
	if req.Headline != nil {
		entity.Headline = *req.Headline
	}
	if req.Bio != nil {
		entity.Bio = *req.Bio
	}

	return s.repo.Update(ctx, entity)
}

func (s *teacherService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// Reorder applies an explicit order to the global directory. Only
// administrators reach this (enforced at the router), so the scope is
// simply the shared global one.
func (s *teacherService) Reorder(ctx context.Context, desiredIDs []string) ([]teacher.Teacher, error) {
	if err := s.reorder.ApplyExplicitOrder(ctx, ordering.GlobalScope, desiredIDs); err != nil {
		return nil, err
	}

	if err := s.repo.InvalidateListCache(ctx); err != nil {
		return nil, err
	}
	return s.repo.List(ctx)
}

func (s *teacherService) Move(ctx context.Context, id uuid.UUID, dir ordering.Direction) ([]teacher.Teacher, error) {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return nil, err
	}

	if err := s.reorder.SwapAdjacent(ctx, ordering.GlobalScope, id.String(), dir); err != nil {
		return nil, err
	}

	if err := s.repo.InvalidateListCache(ctx); err != nil {
		return nil, err
	}
	return s.repo.List(ctx)
}
