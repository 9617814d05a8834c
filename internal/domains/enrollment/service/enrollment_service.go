package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"elearn-backend/internal/domains/course/model"
	"elearn-backend/internal/domains/enrollment"
)

// CourseGetter is the slice of the course repository the enrollment
// service needs: price and published state at enrollment time.
type CourseGetter interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.Course, error)
}

type enrollmentService struct {
	repo    enrollment.EnrollmentRepository
	courses CourseGetter
}

func NewEnrollmentService(repo enrollment.EnrollmentRepository, courses CourseGetter) enrollment.EnrollmentService {
	return &enrollmentService{
		repo:    repo,
		courses: courses,
	}
}

func (s *enrollmentService) Enroll(ctx context.Context, userID, courseID uuid.UUID) (*enrollment.Enrollment, error) {
	crs, err := s.courses.GetByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, model.ErrCourseNotFound) {
			return nil, enrollment.ErrCourseNotFound
		}
		return nil, err
	}
	if !crs.Published {
		return nil, enrollment.ErrCourseNotPublished
	}

	entity := &enrollment.Enrollment{
		ID:        uuid.New(),
		UserID:    userID,
		CourseID:  courseID,
		PricePaid: crs.Price,
		CreatedAt: time.Now(),
	}

	return s.repo.Create(ctx, entity)
}

func (s *enrollmentService) ListMine(ctx context.Context, userID uuid.UUID) ([]enrollment.Enrollment, error) {
	return s.repo.ListByUser(ctx, userID)
}
