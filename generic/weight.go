package generic

// Weight is the minimal node or edge payload: a logical id and a runtime
// type value.
type Weight[K, T comparable] struct {
	ID   K `json:"id" yaml:"id"`
	Type T `json:"type" yaml:"type"`
}

// W builds a Weight.
func W[K, T comparable](id K, typ T) Weight[K, T] {
	return Weight[K, T]{ID: id, Type: typ}
}

// Key returns the weight's logical id.
func (w Weight[K, T]) Key() K { return w.ID }

// TypeOf returns the weight's runtime type value.
func (w Weight[K, T]) TypeOf() T { return w.Type }

// SetKey rewrites the logical id. The graph never calls this; it exists
// for callers preparing weights before insertion.
func (w *Weight[K, T]) SetKey(id K) { w.ID = id }
