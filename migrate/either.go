package migrate

import "github.com/build-aau/typed-graph/typedgraph"

// Either is a two-case tagged union over an old- and a new-schema value.
// With comparable sides it is itself comparable, so it doubles as the
// runtime type value of dual-tagged entities.
type Either[O, N any] struct {
	IsNew bool
	Old   O
	New   N
}

// OldOf tags an old-schema value.
func OldOf[O, N any](v O) Either[O, N] {
	return Either[O, N]{Old: v}
}

// NewOf tags a new-schema value.
func NewOf[O, N any](v N) Either[O, N] {
	return Either[O, N]{IsNew: true, New: v}
}

// Weight is a dual-tagged node or edge weight. Exactly one side is set;
// the tag decides which schema governs it during the transform phase.
type Weight[K, OT, NT comparable, O typedgraph.Entity[K, OT], N typedgraph.Entity[K, NT]] struct {
	isNew bool
	old   O
	new   N
}

// OldWeight wraps an old-schema weight.
func OldWeight[K, OT, NT comparable, O typedgraph.Entity[K, OT], N typedgraph.Entity[K, NT]](v O) Weight[K, OT, NT, O, N] {
	return Weight[K, OT, NT, O, N]{old: v}
}

// NewWeight wraps a new-schema weight.
func NewWeight[K, OT, NT comparable, O typedgraph.Entity[K, OT], N typedgraph.Entity[K, NT]](v N) Weight[K, OT, NT, O, N] {
	return Weight[K, OT, NT, O, N]{isNew: true, new: v}
}

// Key implements typedgraph.Entity.
func (w Weight[K, OT, NT, O, N]) Key() K {
	if w.isNew {
		return w.new.Key()
	}
	return w.old.Key()
}

// TypeOf implements typedgraph.Entity; the tag carries over to the type.
func (w Weight[K, OT, NT, O, N]) TypeOf() Either[OT, NT] {
	if w.isNew {
		return NewOf[OT](w.new.TypeOf())
	}
	return OldOf[OT, NT](w.old.TypeOf())
}

// OldValue returns the wrapped old-schema weight, if that side is set.
func (w Weight[K, OT, NT, O, N]) OldValue() (O, bool) {
	return w.old, !w.isNew
}

// NewValue returns the wrapped new-schema weight, if that side is set.
func (w Weight[K, OT, NT, O, N]) NewValue() (N, bool) {
	return w.new, w.isNew
}
