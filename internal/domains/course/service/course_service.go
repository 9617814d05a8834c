package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"elearn-backend/internal/domains/course/model"
	"elearn-backend/internal/domains/course/repository"
	"elearn-backend/internal/ordering"
	"elearn-backend/internal/shared/utils"
)

type courseService struct {
	repo    repository.CourseRepository
	reorder Reorderer
}

func NewCourseService(repo repository.CourseRepository, reorder Reorderer) CourseService {
	return &courseService{
		repo:    repo,
		reorder: reorder,
	}
}

func (s *courseService) Create(ctx context.Context, ownerID uuid.UUID, req *model.CreateCourseRequest) (*model.Course, error) {
	now := time.Now()
	entity := &model.Course{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		Title:       req.Title,
		Slug:        utils.GenerateSlug(req.Title),
		Description: req.Description,
		Price:       req.Price,
		Published:   req.Published,
		// New courses start at the unset sentinel; the next reorder
		// or the nightly compaction assigns a real position.
		Position:  ordering.UnsetPosition,
		CreatedAt: now,
		UpdatedAt: now,
	}

	return s.repo.Create(ctx, entity)
}

func (s *courseService) GetByID(ctx context.Context, id uuid.UUID) (*model.Course, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *courseService) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Course, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

func (s *courseService) Update(ctx context.Context, ownerID, courseID uuid.UUID, req *model.UpdateCourseRequest) (*model.Course, error) {
	entity, err := s.ownedCourse(ctx, ownerID, courseID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		entity.Title = *req.Title
		entity.Slug = utils.GenerateSlug(*req.Title)
	}
	if req.Description != nil {
		entity.Description = *req.Description
	}
	if req.Price != nil {
		entity.Price = *req.Price
	}
	if req.Published != nil {
		entity.Published = *req.Published
	}

	return s.repo.Update(ctx, entity)
}

func (s *courseService) Delete(ctx context.Context, ownerID, courseID uuid.UUID) error {
	if _, err := s.ownedCourse(ctx, ownerID, courseID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, courseID)
}

// Reorder resolves the owner's catalog as the ordering scope and hands
// the desired order to the reconciler. Ownership is the scope itself:
// a caller can only ever reorder their own courses, and ids belonging
// to other owners are normalized away by the reconciler.
func (s *courseService) Reorder(ctx context.Context, ownerID uuid.UUID, desiredIDs []string) ([]model.Course, error) {
	if err := s.reorder.ApplyExplicitOrder(ctx, ownerID.String(), desiredIDs); err != nil {
		return nil, err
	}

	if err := s.repo.InvalidateOwnerCache(ctx, ownerID); err != nil {
		return nil, err
	}
	return s.repo.ListByOwner(ctx, ownerID)
}

func (s *courseService) Move(ctx context.Context, ownerID, courseID uuid.UUID, dir ordering.Direction) ([]model.Course, error) {
	if _, err := s.ownedCourse(ctx, ownerID, courseID); err != nil {
		return nil, err
	}

	if err := s.reorder.SwapAdjacent(ctx, ownerID.String(), courseID.String(), dir); err != nil {
		return nil, err
	}

	if err := s.repo.InvalidateOwnerCache(ctx, ownerID); err != nil {
		return nil, err
	}
	return s.repo.ListByOwner(ctx, ownerID)
}

// ownedCourse loads a course and checks it belongs to the caller.
func (s *courseService) ownedCourse(ctx context.Context, ownerID, courseID uuid.UUID) (*model.Course, error) {
	entity, err := s.repo.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if entity.OwnerID != ownerID {
		return nil, model.ErrNotCourseOwner
	}
	return entity, nil
}
