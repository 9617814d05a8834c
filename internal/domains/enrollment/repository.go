package enrollment

import (
	"context"

	"github.com/google/uuid"
)

type EnrollmentRepository interface {
	Create(ctx context.Context, entity *Enrollment) (*Enrollment, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]Enrollment, error)
}
