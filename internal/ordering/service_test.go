package ordering

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore keeps rows in memory and, like Postgres with a per-scope
// unique index, rejects any single write that would give two rows of a
// scope the same positive position. A failing batch is rolled back.
type fakeStore struct {
	rows       []Item
	listErr    error
	applyErr   error
	applyCalls int
}

func (f *fakeStore) ListByScope(_ context.Context, scopeKey string) ([]Item, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []Item
	for _, it := range f.rows {
		if it.ScopeKey == scopeKey {
			out = append(out, it)
		}
	}
	return out, nil
}

func (f *fakeStore) ApplyPositions(_ context.Context, scopeKey string, writes []PositionWrite) error {
	f.applyCalls++
	if f.applyErr != nil {
		return f.applyErr
	}

	snapshot := append([]Item(nil), f.rows...)
	for _, w := range writes {
		if err := f.applyOne(scopeKey, w); err != nil {
			f.rows = snapshot
			return err
		}
	}
	return nil
}

func (f *fakeStore) applyOne(scopeKey string, w PositionWrite) error {
	idx := -1
	for i, it := range f.rows {
		if it.ScopeKey == scopeKey && it.ID == w.ID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("no row %q in scope %q", w.ID, scopeKey)
	}

	if w.Position > 0 {
		for i, it := range f.rows {
			if i != idx && it.ScopeKey == scopeKey && it.Position == w.Position {
				return fmt.Errorf("%w: position %d", ErrPositionConflict, w.Position)
			}
		}
	}

	f.rows[idx].Position = w.Position
	return nil
}

func (f *fakeStore) positions(scopeKey string) map[string]int {
	out := make(map[string]int)
	for _, it := range f.rows {
		if it.ScopeKey == scopeKey {
			out[it.ID] = it.Position
		}
	}
	return out
}

func scoped(scope, id string, pos int, createdOffset int) Item {
	return Item{ID: id, ScopeKey: scope, Position: pos, TieBreak: ts(createdOffset)}
}

func TestApplyExplicitOrderMovesRequestedItemsFirst(t *testing.T) {
	store := &fakeStore{rows: []Item{
		scoped("owner-1", "a", 1, 0),
		scoped("owner-1", "b", 2, 1),
		scoped("owner-1", "c", 3, 2),
	}}
	svc := NewService(store)

	err := svc.ApplyExplicitOrder(context.Background(), "owner-1", []string{"c", "a"})

	require.NoError(t, err)
	assert.Equal(t, map[string]int{"c": 1, "a": 2, "b": 3}, store.positions("owner-1"))
}

func TestApplyExplicitOrderEmptyScopeIsNoop(t *testing.T) {
	store := &fakeStore{}
	svc := NewService(store)

	err := svc.ApplyExplicitOrder(context.Background(), "owner-1", []string{"a"})

	require.NoError(t, err)
	assert.Zero(t, store.applyCalls)
}

func TestApplyExplicitOrderIsIdempotent(t *testing.T) {
	store := &fakeStore{rows: []Item{
		scoped("owner-1", "a", 0, 0),
		scoped("owner-1", "b", 4, 1),
		scoped("owner-1", "c", 2, 2),
	}}
	svc := NewService(store)
	desired := []string{"a", "c"}

	require.NoError(t, svc.ApplyExplicitOrder(context.Background(), "owner-1", desired))
	first := store.positions("owner-1")

	require.NoError(t, svc.ApplyExplicitOrder(context.Background(), "owner-1", desired))
	second := store.positions("owner-1")

	assert.Equal(t, first, second)
	assert.Equal(t, map[string]int{"a": 1, "c": 2, "b": 3}, second)
}

func TestApplyExplicitOrderNeverTripsPerStatementConstraint(t *testing.T) {
	cases := []struct {
		name    string
		rows    []Item
		desired []string
	}{
		{
			name: "dense scope, reversal",
			rows: []Item{
				scoped("s", "a", 1, 0),
				scoped("s", "b", 2, 1),
				scoped("s", "c", 3, 2),
				scoped("s", "d", 4, 3),
			},
			desired: []string{"d", "c", "b", "a"},
		},
		{
			name: "multiple legacy zeros",
			rows: []Item{
				scoped("s", "a", 0, 0),
				scoped("s", "b", 0, 1),
				scoped("s", "c", 0, 2),
				scoped("s", "d", 5, 3),
			},
			desired: nil,
		},
		{
			name: "gaps and huge positions",
			rows: []Item{
				scoped("s", "a", 9000, 0),
				scoped("s", "b", 3, 1),
				scoped("s", "c", 0, 2),
			},
			desired: []string{"c", "b"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := &fakeStore{rows: tc.rows}
			svc := NewService(store)

			err := svc.ApplyExplicitOrder(context.Background(), "s", tc.desired)

			require.NoError(t, err)

			positions := store.positions("s")
			seen := make(map[int]bool)
			for id, pos := range positions {
				assert.GreaterOrEqual(t, pos, 1, "position of %s", id)
				assert.LessOrEqual(t, pos, len(tc.rows), "position of %s", id)
				assert.False(t, seen[pos], "duplicate position %d", pos)
				seen[pos] = true
			}
		})
	}
}

func TestApplyExplicitOrderLeavesOtherScopesAlone(t *testing.T) {
	store := &fakeStore{rows: []Item{
		scoped("owner-1", "a", 2, 0),
		scoped("owner-1", "b", 1, 1),
		scoped("owner-2", "x", 1, 2),
	}}
	svc := NewService(store)

	require.NoError(t, svc.ApplyExplicitOrder(context.Background(), "owner-1", []string{"a"}))

	assert.Equal(t, map[string]int{"x": 1}, store.positions("owner-2"))
}

func TestApplyExplicitOrderWrapsListFailure(t *testing.T) {
	store := &fakeStore{listErr: errors.New("connection refused")}
	svc := NewService(store)

	err := svc.ApplyExplicitOrder(context.Background(), "owner-1", nil)

	var failed *ReconcileFailed
	require.ErrorAs(t, err, &failed)
	assert.Equal(t, "owner-1", failed.ScopeKey)
	assert.ErrorContains(t, err, "connection refused")
}

func TestApplyExplicitOrderWrapsApplyFailure(t *testing.T) {
	store := &fakeStore{
		rows:     []Item{scoped("owner-1", "a", 1, 0)},
		applyErr: errors.New("deadlock detected"),
	}
	svc := NewService(store)

	err := svc.ApplyExplicitOrder(context.Background(), "owner-1", []string{"a"})

	var failed *ReconcileFailed
	require.ErrorAs(t, err, &failed)
	assert.Equal(t, "owner-1", failed.ScopeKey)
}

func TestSwapAdjacentUp(t *testing.T) {
	store := &fakeStore{rows: []Item{
		scoped("s", "a", 1, 0),
		scoped("s", "b", 2, 1),
		scoped("s", "c", 3, 2),
	}}
	svc := NewService(store)

	err := svc.SwapAdjacent(context.Background(), "s", "b", DirectionUp)

	require.NoError(t, err)
	assert.Equal(t, map[string]int{"a": 2, "b": 1, "c": 3}, store.positions("s"))
}

func TestSwapAdjacentDown(t *testing.T) {
	store := &fakeStore{rows: []Item{
		scoped("s", "a", 1, 0),
		scoped("s", "b", 2, 1),
		scoped("s", "c", 3, 2),
	}}
	svc := NewService(store)

	err := svc.SwapAdjacent(context.Background(), "s", "b", DirectionDown)

	require.NoError(t, err)
	assert.Equal(t, map[string]int{"a": 1, "b": 3, "c": 2}, store.positions("s"))
}

func TestSwapAdjacentAtBoundariesIsNoop(t *testing.T) {
	rows := []Item{
		scoped("s", "a", 1, 0),
		scoped("s", "b", 2, 1),
		scoped("s", "c", 3, 2),
	}

	t.Run("first item up", func(t *testing.T) {
		store := &fakeStore{rows: append([]Item(nil), rows...)}
		svc := NewService(store)

		require.NoError(t, svc.SwapAdjacent(context.Background(), "s", "a", DirectionUp))
		assert.Equal(t, map[string]int{"a": 1, "b": 2, "c": 3}, store.positions("s"))
		assert.Zero(t, store.applyCalls)
	})

	t.Run("last item down", func(t *testing.T) {
		store := &fakeStore{rows: append([]Item(nil), rows...)}
		svc := NewService(store)

		require.NoError(t, svc.SwapAdjacent(context.Background(), "s", "c", DirectionDown))
		assert.Equal(t, map[string]int{"a": 1, "b": 2, "c": 3}, store.positions("s"))
		assert.Zero(t, store.applyCalls)
	})
}

func TestSwapAdjacentUnknownItem(t *testing.T) {
	store := &fakeStore{rows: []Item{scoped("s", "a", 1, 0)}}
	svc := NewService(store)

	err := svc.SwapAdjacent(context.Background(), "s", "nope", DirectionUp)

	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestSwapAdjacentInvalidDirection(t *testing.T) {
	store := &fakeStore{rows: []Item{scoped("s", "a", 1, 0)}}
	svc := NewService(store)

	err := svc.SwapAdjacent(context.Background(), "s", "a", Direction("sideways"))

	assert.ErrorIs(t, err, ErrInvalidDirection)
}

func TestSwapAdjacentNormalizesDriftedScopeFirst(t *testing.T) {
	// b and c never got positions; a's is stale. The swap must first
	// densify (a:1, c:2, b:3 — zeros newest-first after positives),
	// then move b one step up.
	store := &fakeStore{rows: []Item{
		scoped("s", "a", 7, 0),
		scoped("s", "b", 0, 1),
		scoped("s", "c", 0, 2),
	}}
	svc := NewService(store)

	err := svc.SwapAdjacent(context.Background(), "s", "b", DirectionUp)

	require.NoError(t, err)
	assert.Equal(t, map[string]int{"a": 1, "b": 2, "c": 3}, store.positions("s"))
}

func TestSwapAdjacentNeverTripsPerStatementConstraint(t *testing.T) {
	// The fake store validates every write; a naive two-write swap
	// would fail here on the first statement.
	store := &fakeStore{rows: []Item{
		scoped("s", "a", 1, 0),
		scoped("s", "b", 2, 1),
	}}
	svc := NewService(store)

	require.NoError(t, svc.SwapAdjacent(context.Background(), "s", "a", DirectionDown))
	assert.Equal(t, map[string]int{"a": 2, "b": 1}, store.positions("s"))
}

func TestSwapAdjacentWrapsStoreFailure(t *testing.T) {
	store := &fakeStore{
		rows: []Item{
			scoped("s", "a", 1, 0),
			scoped("s", "b", 2, 1),
		},
		applyErr: errors.New("connection reset"),
	}
	svc := NewService(store)

	err := svc.SwapAdjacent(context.Background(), "s", "b", DirectionUp)

	var failed *ReconcileFailed
	require.ErrorAs(t, err, &failed)
	assert.Equal(t, "s", failed.ScopeKey)
}

func TestParseDirection(t *testing.T) {
	dir, err := ParseDirection("up")
	require.NoError(t, err)
	assert.Equal(t, DirectionUp, dir)

	dir, err = ParseDirection("down")
	require.NoError(t, err)
	assert.Equal(t, DirectionDown, dir)

	_, err = ParseDirection("left")
	assert.ErrorIs(t, err, ErrInvalidDirection)
}
