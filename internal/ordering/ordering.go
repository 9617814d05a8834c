// Package ordering maintains integer position columns that must stay
// unique within a scope (one owner's courses, one course's lessons, the
// global teacher list). It computes collision-free position assignments
// and applies them so that no individual write ever violates the
// uniqueness constraint, even on engines that check it per statement.
package ordering

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Position 0 marks rows that have never been reconciled (legacy rows,
// freshly created rows). It is never assigned as a final position and
// many rows may hold it at once; the unique index covers positive
// positions only.
const UnsetPosition = 0

// tempPosition is reserved for the intermediate write of a swap. It is
// never visible outside a transaction.
const tempPosition = -1

// bumpFloor is the minimum offset applied during the bump phase of a
// bulk reorder.
const bumpFloor = 1000

// Item is one row of an ordered scope.
type Item struct {
	ID       string
	ScopeKey string
	Position int
	// TieBreak orders rows that carry no meaningful position
	// (creation time in our schemas).
	TieBreak time.Time
}

// PositionWrite is a single position assignment. Writes are applied in
// order, each as its own statement, inside one transaction.
type PositionWrite struct {
	ID       string
	Position int
}

// Direction of a single-step move.
type Direction string

const (
	DirectionUp   Direction = "up"
	DirectionDown Direction = "down"
)

func ParseDirection(s string) (Direction, error) {
	switch Direction(s) {
	case DirectionUp, DirectionDown:
		return Direction(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidDirection, s)
	}
}

// Store is the persistence contract the service needs. Implementations
// must apply all writes of one ApplyPositions call atomically, in the
// given order, and report uniqueness violations as ErrPositionConflict.
type Store interface {
	ListByScope(ctx context.Context, scopeKey string) ([]Item, error)
	ApplyPositions(ctx context.Context, scopeKey string, writes []PositionWrite) error
}

var (
	// ErrPositionConflict is returned by stores when a write violates
	// the per-scope unique index. Seeing it means the write plan was
	// wrong, not that the store failed.
	ErrPositionConflict = errors.New("position conflict within scope")

	// ErrItemNotFound is returned by SwapAdjacent when the item does
	// not belong to the scope.
	ErrItemNotFound = errors.New("item not found in scope")

	ErrInvalidDirection = errors.New("invalid move direction")
)

// ReconcileFailed wraps any store failure during a reorder. The whole
// transaction has been rolled back; nothing was applied.
type ReconcileFailed struct {
	ScopeKey string
	Err      error
}

func (e *ReconcileFailed) Error() string {
	return fmt.Sprintf("reconcile failed for scope %q: %v", e.ScopeKey, e.Err)
}

func (e *ReconcileFailed) Unwrap() error { return e.Err }
