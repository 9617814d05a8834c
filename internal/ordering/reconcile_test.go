package ordering

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ts(offsetMinutes int) time.Time {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return base.Add(time.Duration(offsetMinutes) * time.Minute)
}

func item(id string, pos int, createdOffset int) Item {
	return Item{ID: id, ScopeKey: "scope", Position: pos, TieBreak: ts(createdOffset)}
}

// assertDense checks the assignment covers exactly 1..N, each once.
func assertDense(t *testing.T, target map[string]int, n int) {
	t.Helper()
	require.Len(t, target, n)
	seen := make(map[int]bool, n)
	for id, pos := range target {
		assert.GreaterOrEqual(t, pos, 1, "position of %s", id)
		assert.LessOrEqual(t, pos, n, "position of %s", id)
		assert.False(t, seen[pos], "duplicate position %d", pos)
		seen[pos] = true
	}
}

func TestReconcileEmptyScope(t *testing.T) {
	target := Reconcile(nil, []string{"a", "b"})
	assert.Empty(t, target)
}

func TestReconcileDensity(t *testing.T) {
	existing := []Item{
		item("a", 1, 0),
		item("b", 2, 1),
		item("c", 0, 2),
		item("d", 7, 3),
		item("e", 0, 4),
	}

	cases := []struct {
		name    string
		desired []string
	}{
		{"empty desired", nil},
		{"full permutation", []string{"e", "d", "c", "b", "a"}},
		{"partial", []string{"c"}},
		{"duplicates", []string{"a", "a", "b", "a"}},
		{"foreign ids", []string{"x", "y", "z"}},
		{"mixed", []string{"d", "x", "d", "a"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			target := Reconcile(existing, tc.desired)
			assertDense(t, target, len(existing))
		})
	}
}

func TestReconcileFullPermutation(t *testing.T) {
	existing := []Item{
		item("a", 1, 0),
		item("b", 2, 1),
		item("c", 3, 2),
	}

	target := Reconcile(existing, []string{"b", "c", "a"})

	assert.Equal(t, map[string]int{"b": 1, "c": 2, "a": 3}, target)
}

func TestReconcilePartialKeepsRemainderOrder(t *testing.T) {
	existing := []Item{
		item("a", 1, 0),
		item("b", 2, 1),
		item("c", 3, 2),
		item("d", 4, 3),
	}

	// Only d is mentioned; a, b, c keep their relative order after it.
	target := Reconcile(existing, []string{"d"})

	assert.Equal(t, map[string]int{"d": 1, "a": 2, "b": 3, "c": 4}, target)
}

func TestReconcileScenarioExplicitPrefix(t *testing.T) {
	existing := []Item{
		item("a", 1, 0),
		item("b", 2, 1),
		item("c", 3, 2),
	}

	target := Reconcile(existing, []string{"c", "a"})

	assert.Equal(t, map[string]int{"c": 1, "a": 2, "b": 3}, target)
}

func TestReconcileDropsForeignAndDuplicateIDs(t *testing.T) {
	existing := []Item{
		item("a", 1, 0),
		item("b", 2, 1),
		item("c", 3, 2),
	}

	// x is foreign, a repeats: effective desired order is just [a, b].
	target := Reconcile(existing, []string{"x", "a", "a", "b"})

	assert.Equal(t, map[string]int{"a": 1, "b": 2, "c": 3}, target)
}

func TestReconcileLegacyZerosSortLast(t *testing.T) {
	// a and b never got a position; c holds a stale positive one.
	// Positive positions come first, then the unset rows, newest
	// creation first.
	existing := []Item{
		item("a", 0, 0),
		item("b", 0, 10),
		item("c", 5, 20),
	}

	target := Reconcile(existing, nil)

	assert.Equal(t, 1, target["c"])
	assert.Equal(t, 2, target["b"])
	assert.Equal(t, 3, target["a"])
}

func TestReconcileGapsCompact(t *testing.T) {
	// Positions drifted by deletes: 2, 5, 9 must become 1, 2, 3.
	existing := []Item{
		item("a", 5, 0),
		item("b", 2, 1),
		item("c", 9, 2),
	}

	target := Reconcile(existing, nil)

	assert.Equal(t, map[string]int{"b": 1, "a": 2, "c": 3}, target)
}

func TestReconcileIsPure(t *testing.T) {
	existing := []Item{
		item("a", 2, 0),
		item("b", 1, 1),
	}
	desired := []string{"a", "b"}

	first := Reconcile(existing, desired)
	second := Reconcile(existing, desired)

	assert.Equal(t, first, second)
	// Inputs are untouched.
	assert.Equal(t, 2, existing[0].Position)
	assert.Equal(t, []string{"a", "b"}, desired)
}

func TestPlanApplySkipsSentinelRowsInBumpPhase(t *testing.T) {
	existing := []Item{
		item("a", 1, 0),
		item("b", 0, 1),
		item("c", 0, 2),
	}
	target := Reconcile(existing, nil)

	writes := planApply(existing, target)

	// Exactly one bump write (for a); bumping both zero rows would
	// collide them on the same value.
	require.Len(t, writes, 4)
	assert.Equal(t, "a", writes[0].ID)
	assert.Greater(t, writes[0].Position, bumpFloor)

	for _, w := range writes[1:] {
		assert.GreaterOrEqual(t, w.Position, 1)
		assert.LessOrEqual(t, w.Position, len(existing))
	}
}

func TestPlanApplyOffsetClearsLargestPosition(t *testing.T) {
	existing := []Item{
		item("a", 4000, 0),
		item("b", 1, 1),
	}
	target := Reconcile(existing, nil)

	writes := planApply(existing, target)

	// Bumped values must land above every pre-existing position.
	for _, w := range writes[:2] {
		assert.Greater(t, w.Position, 4000)
	}
}
