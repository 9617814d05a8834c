package enrollment

import (
	"context"

	"github.com/google/uuid"
)

type EnrollmentService interface {
	Enroll(ctx context.Context, userID, courseID uuid.UUID) (*Enrollment, error)
	ListMine(ctx context.Context, userID uuid.UUID) ([]Enrollment, error)
}
