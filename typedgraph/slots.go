package typedgraph

// table is slot-addressed record storage. Slots count up monotonically
// and are never reused, so a live slot can only ever refer to the entity
// it was created for. Insertion order is preserved for iteration, which
// keeps serialized output deterministic.
type table[S ~uint64, R any] struct {
	recs  map[S]*R
	order []S
	next  S
}

func newTable[S ~uint64, R any]() table[S, R] {
	return table[S, R]{recs: make(map[S]*R)}
}

func (t *table[S, R]) len() int {
	return len(t.recs)
}

func (t *table[S, R]) insert(rec R) S {
	t.next++
	slot := t.next
	t.recs[slot] = &rec
	t.order = append(t.order, slot)
	return slot
}

func (t *table[S, R]) get(slot S) (*R, bool) {
	rec, ok := t.recs[slot]
	return rec, ok
}

func (t *table[S, R]) has(slot S) bool {
	_, ok := t.recs[slot]
	return ok
}

func (t *table[S, R]) remove(slot S) (R, bool) {
	rec, ok := t.recs[slot]
	if !ok {
		var zero R
		return zero, false
	}
	delete(t.recs, slot)
	for i, s := range t.order {
		if s == slot {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
	return *rec, true
}

// slots returns the live slots in insertion order. The returned slice is
// a copy and stays valid across mutations.
func (t *table[S, R]) slots() []S {
	out := make([]S, len(t.order))
	copy(out, t.order)
	return out
}

// slotList is an ordered set of edge slots, used for per-node adjacency.
// Degree-sized linear scans keep it simple; mutation preserves relative
// order of the remaining elements.
type slotList []EdgeSlot

func (l slotList) indexOf(slot EdgeSlot) int {
	for i, s := range l {
		if s == slot {
			return i
		}
	}
	return -1
}

func (l *slotList) add(slot EdgeSlot) {
	*l = append(*l, slot)
}

func (l *slotList) drop(slot EdgeSlot) {
	i := l.indexOf(slot)
	if i < 0 {
		return
	}
	*l = append((*l)[:i], (*l)[i+1:]...)
}

// moveIndex removes the element at from and reinserts it at to, shifting
// everything in between by one position.
func (l slotList) moveIndex(from, to int) {
	if from == to {
		return
	}
	slot := l[from]
	if from < to {
		copy(l[from:to], l[from+1:to+1])
	} else {
		copy(l[to+1:from+1], l[to:from])
	}
	l[to] = slot
}
