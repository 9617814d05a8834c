package ordering

import (
	"context"

	"github.com/rs/zerolog/log"
)

// Service orchestrates one reconciliation per call: load the scope,
// compute the target assignment, apply it in a single transaction.
//
// The service provides no mutual exclusion of its own. Two concurrent
// reorders of the same scope each commit a consistent assignment, but
// the last one to commit wins; callers that need stronger guarantees
// must serialize per scope themselves.
type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// ApplyExplicitOrder sets the full order of a scope from a client
// supplied id list. Ids unknown to the scope and duplicates are
// normalized away; items the client did not mention keep their prior
// relative order after the mentioned ones. An empty scope is a no-op.
//
// Running it twice with the same input yields identical positions.
func (s *Service) ApplyExplicitOrder(ctx context.Context, scopeKey string, desiredIDs []string) error {
	existing, err := s.store.ListByScope(ctx, scopeKey)
	if err != nil {
		return &ReconcileFailed{ScopeKey: scopeKey, Err: err}
	}
	if len(existing) == 0 {
		return nil
	}

	target := Reconcile(existing, desiredIDs)
	writes := planApply(existing, target)

	if err := s.store.ApplyPositions(ctx, scopeKey, writes); err != nil {
		return &ReconcileFailed{ScopeKey: scopeKey, Err: err}
	}

	log.Debug().
		Str("scope", scopeKey).
		Int("items", len(existing)).
		Int("requested", len(desiredIDs)).
		Msg("scope reconciled")

	return nil
}

// SwapAdjacent moves one item a single step up or down by exchanging
// positions with its neighbour. Moves past either end of the list are
// no-ops. A scope whose positions are not a dense 1..N run (legacy
// zeros, gaps left by deletes) is normalized first.
func (s *Service) SwapAdjacent(ctx context.Context, scopeKey, itemID string, dir Direction) error {
	if dir != DirectionUp && dir != DirectionDown {
		return ErrInvalidDirection
	}

	existing, err := s.store.ListByScope(ctx, scopeKey)
	if err != nil {
		return &ReconcileFailed{ScopeKey: scopeKey, Err: err}
	}

	if !contains(existing, itemID) {
		return ErrItemNotFound
	}

	if !isDense(existing) {
		if err := s.ApplyExplicitOrder(ctx, scopeKey, nil); err != nil {
			return err
		}
		existing, err = s.store.ListByScope(ctx, scopeKey)
		if err != nil {
			return &ReconcileFailed{ScopeKey: scopeKey, Err: err}
		}
	}

	var item Item
	byPos := make(map[int]Item, len(existing))
	for _, it := range existing {
		if it.ID == itemID {
			item = it
		}
		if it.Position > UnsetPosition {
			byPos[it.Position] = it
		}
	}

	targetPos := item.Position - 1
	if dir == DirectionDown {
		targetPos = item.Position + 1
	}
	if targetPos < 1 {
		return nil
	}

	other, ok := byPos[targetPos]
	if !ok {
		// Past the end of the list, or drifted data with a hole.
		return nil
	}

	if err := s.store.ApplyPositions(ctx, scopeKey, planSwap(item, other)); err != nil {
		return &ReconcileFailed{ScopeKey: scopeKey, Err: err}
	}

	log.Debug().
		Str("scope", scopeKey).
		Str("item", itemID).
		Str("direction", string(dir)).
		Msg("adjacent items swapped")

	return nil
}

func contains(items []Item, id string) bool {
	for _, it := range items {
		if it.ID == id {
			return true
		}
	}
	return false
}

// isDense reports whether positions form exactly 1..N. Positive
// positions are unique by constraint, so max == N with no non-positive
// entries implies density.
func isDense(items []Item) bool {
	maxPos := 0
	for _, it := range items {
		if it.Position <= UnsetPosition {
			return false
		}
		if it.Position > maxPos {
			maxPos = it.Position
		}
	}
	return maxPos == len(items)
}
