package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"elearn-backend/internal/domains/lesson/model"
	"elearn-backend/internal/domains/lesson/repository"
	"elearn-backend/internal/ordering"
)

type lessonService struct {
	repo    repository.LessonRepository
	reorder Reorderer
}

func NewLessonService(repo repository.LessonRepository, reorder Reorderer) LessonService {
	return &lessonService{
		repo:    repo,
		reorder: reorder,
	}
}

func (s *lessonService) Create(ctx context.Context, courseID uuid.UUID, req *model.CreateLessonRequest) (*model.Lesson, error) {
	if err := s.requireCourse(ctx, courseID); err != nil {
		return nil, err
	}

	now := time.Now()
	entity := &model.Lesson{
		ID:              uuid.New(),
		CourseID:        courseID,
		Title:           req.Title,
		VideoURL:        req.VideoURL,
		DurationMinutes: req.DurationMinutes,
		FreePreview:     req.FreePreview,
		Position:        ordering.UnsetPosition,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	return s.repo.Create(ctx, entity)
}

func (s *lessonService) GetByID(ctx context.Context, courseID, lessonID uuid.UUID) (*model.Lesson, error) {
	return s.courseLesson(ctx, courseID, lessonID)
}

func (s *lessonService) ListByCourse(ctx context.Context, courseID uuid.UUID) ([]model.Lesson, error) {
	if err := s.requireCourse(ctx, courseID); err != nil {
		return nil, err
	}
	return s.repo.ListByCourse(ctx, courseID)
}

func (s *lessonService) Update(ctx context.Context, courseID, lessonID uuid.UUID, req *model.UpdateLessonRequest) (*model.Lesson, error) {
	entity, err := s.courseLesson(ctx, courseID, lessonID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		entity.Title = *req.Title
	}
	if req.VideoURL != nil {
		entity.VideoURL = *req.VideoURL
	}
	if req.DurationMinutes != nil {
		entity.DurationMinutes = *req.DurationMinutes
	}
	if req.FreePreview != nil {
		entity.FreePreview = *req.FreePreview
	}

	return s.repo.Update(ctx, entity)
}

func (s *lessonService) Delete(ctx context.Context, courseID, lessonID uuid.UUID) error {
	if _, err := s.courseLesson(ctx, courseID, lessonID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, lessonID)
}

// Reorder treats the parent course as the ordering scope. The caller's
// right to touch the course has been established by the admin
// middleware; here we only require that the course exists.
func (s *lessonService) Reorder(ctx context.Context, courseID uuid.UUID, desiredIDs []string) ([]model.Lesson, error) {
	if err := s.requireCourse(ctx, courseID); err != nil {
		return nil, err
	}

	if err := s.reorder.ApplyExplicitOrder(ctx, courseID.String(), desiredIDs); err != nil {
		return nil, err
	}

	if err := s.repo.InvalidateCourseCache(ctx, courseID); err != nil {
		return nil, err
	}
	return s.repo.ListByCourse(ctx, courseID)
}

func (s *lessonService) Move(ctx context.Context, courseID, lessonID uuid.UUID, dir ordering.Direction) ([]model.Lesson, error) {
	if _, err := s.courseLesson(ctx, courseID, lessonID); err != nil {
		return nil, err
	}

	if err := s.reorder.SwapAdjacent(ctx, courseID.String(), lessonID.String(), dir); err != nil {
		return nil, err
	}

	if err := s.repo.InvalidateCourseCache(ctx, courseID); err != nil {
		return nil, err
	}
	return s.repo.ListByCourse(ctx, courseID)
}

func (s *lessonService) requireCourse(ctx context.Context, courseID uuid.UUID) error {
	exists, err := s.repo.CourseExists(ctx, courseID)
	if err != nil {
		return err
	}
	if !exists {
		return model.ErrCourseNotFound
	}
	return nil
}

// courseLesson loads a lesson and checks it belongs to the course in
// the URL, so a valid lesson id cannot be reached through a foreign
// course path.
func (s *lessonService) courseLesson(ctx context.Context, courseID, lessonID uuid.UUID) (*model.Lesson, error) {
	entity, err := s.repo.GetByID(ctx, lessonID)
	if err != nil {
		return nil, err
	}
	if entity.CourseID != courseID {
		return nil, model.ErrLessonCourseMismatch
	}
	return entity, nil
}
