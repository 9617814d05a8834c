package ordering

import "sort"

// Reconcile computes the final position of every item in a scope.
//
// Items named in desiredIDs come first, in the order given; ids that do
// not belong to the scope are dropped, and for duplicated ids the first
// occurrence wins. All remaining items are appended in their prior
// relative order: position ascending, unset (zero) positions after all
// positive ones, creation time descending as the final tie-break.
//
// The result is total and dense: every existing item gets exactly one
// position in 1..N. The function is pure; unknown or duplicate ids are
// normalized, never rejected.
func Reconcile(existing []Item, desiredIDs []string) map[string]int {
	target := make(map[string]int, len(existing))
	if len(existing) == 0 {
		return target
	}

	known := make(map[string]struct{}, len(existing))
	for _, it := range existing {
		known[it.ID] = struct{}{}
	}

	kept := make(map[string]struct{}, len(desiredIDs))
	finalOrder := make([]string, 0, len(existing))
	for _, id := range desiredIDs {
		if _, ok := known[id]; !ok {
			continue
		}
		if _, dup := kept[id]; dup {
			continue
		}
		kept[id] = struct{}{}
		finalOrder = append(finalOrder, id)
	}

	remainder := make([]Item, 0, len(existing)-len(finalOrder))
	for _, it := range existing {
		if _, ok := kept[it.ID]; !ok {
			remainder = append(remainder, it)
		}
	}

	sort.SliceStable(remainder, func(i, j int) bool {
		a, b := remainder[i], remainder[j]
		aSet, bSet := a.Position > UnsetPosition, b.Position > UnsetPosition
		if aSet != bSet {
			return aSet
		}
		if aSet && a.Position != b.Position {
			return a.Position < b.Position
		}
		return a.TieBreak.After(b.TieBreak)
	})

	for _, it := range remainder {
		finalOrder = append(finalOrder, it.ID)
	}

	for idx, id := range finalOrder {
		target[id] = idx + 1
	}
	return target
}

// planApply turns a target assignment into the two-phase write sequence.
//
// Phase one moves every currently positive position out of the 1..N
// target range by a large offset. Rows at the unset sentinel are left
// alone: bumping them would land them all on the same value and trip
// the constraint mid-transaction. Phase two writes the final positions,
// lowest first. With the old positives parked above the offset and the
// zeros outside the target range, no statement can collide.
func planApply(existing []Item, target map[string]int) []PositionWrite {
	maxPos := 0
	for _, it := range existing {
		if it.Position > maxPos {
			maxPos = it.Position
		}
	}

	offset := bumpFloor
	if maxPos > 0 {
		offset = maxPos + bumpFloor
	}

	writes := make([]PositionWrite, 0, 2*len(existing))
	for _, it := range existing {
		if it.Position > UnsetPosition {
			writes = append(writes, PositionWrite{ID: it.ID, Position: it.Position + offset})
		}
	}

	finals := make([]PositionWrite, 0, len(target))
	for id, pos := range target {
		finals = append(finals, PositionWrite{ID: id, Position: pos})
	}
	sort.Slice(finals, func(i, j int) bool { return finals[i].Position < finals[j].Position })

	return append(writes, finals...)
}

// planSwap produces the three-write dance that exchanges two rows'
// positions through the reserved temp slot, so neither write collides
// with the other row's still-current value.
func planSwap(item, other Item) []PositionWrite {
	return []PositionWrite{
		{ID: item.ID, Position: tempPosition},
		{ID: other.ID, Position: item.Position},
		{ID: item.ID, Position: other.Position},
	}
}
