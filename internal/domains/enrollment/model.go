package enrollment

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Enrollment links a learner to a course. PricePaid snapshots the course
// price at enrollment time so later price edits do not rewrite history.
type Enrollment struct {
	ID        uuid.UUID       `json:"id"`
	UserID    uuid.UUID       `json:"user_id"`
	CourseID  uuid.UUID       `json:"course_id"`
	PricePaid decimal.Decimal `json:"price_paid"`
	CreatedAt time.Time       `json:"created_at"`
}
