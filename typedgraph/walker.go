package typedgraph

// Walker is a branching traversal over a graph's query primitives. It
// holds a work-list of branches, each carrying a value, an accumulated
// per-branch state, and possibly an error. Progress steps expand every
// live branch one-to-many; a step failure terminates that branch with
// its error instead of dropping it, and the error resurfaces from the
// terminal collectors.
//
// Expansion is eager per step; nothing walks the graph until a Progress
// call, and nothing beyond the current front is ever materialized.
type Walker[T, St any, NK, EK, NT, ET comparable, N Node[NK, NT], E Edge[EK, ET], S Schema[NT, ET]] struct {
	g        *Graph[NK, EK, NT, ET, N, E, S]
	branches []branch[T, St]
}

type branch[T, St any] struct {
	state St
	val   T
	err   error
}

// Step pairs a state increment with the next value of a branch.
type Step[Inc, T any] struct {
	Inc Inc
	Val T
}

// Target is a surviving branch's final value and state.
type Target[T, St any] struct {
	Val   T
	State St
}

// NewWalker starts a walker with a single empty branch, for traversals
// that find their own starting points in the first step.
func NewWalker[NK, EK, NT, ET comparable, N Node[NK, NT], E Edge[EK, ET], S Schema[NT, ET]](g *Graph[NK, EK, NT, ET, N, E, S]) *Walker[struct{}, struct{}, NK, EK, NT, ET, N, E, S] {
	return &Walker[struct{}, struct{}, NK, EK, NT, ET, N, E, S]{
		g:        g,
		branches: []branch[struct{}, struct{}]{{}},
	}
}

// WalkFrom starts a walker at the node with the given id. A missing node
// yields a walker with no branches rather than an error.
func WalkFrom[NK, EK, NT, ET comparable, N Node[NK, NT], E Edge[EK, ET], S Schema[NT, ET]](g *Graph[NK, EK, NT, ET, N, E, S], start NK) *Walker[N, struct{}, NK, EK, NT, ET, N, E, S] {
	w := &Walker[N, struct{}, NK, EK, NT, ET, N, E, S]{g: g}
	if n, ok := g.NodeOK(start); ok {
		w.branches = []branch[N, struct{}]{{val: n}}
	}
	return w
}

// SetState replaces every branch's state with the given value, typically
// to seed an accumulator before ProgressWithState steps.
func SetState[NewSt any, T, St any, NK, EK, NT, ET comparable, N Node[NK, NT], E Edge[EK, ET], S Schema[NT, ET]](w *Walker[T, St, NK, EK, NT, ET, N, E, S], state NewSt) *Walker[T, NewSt, NK, EK, NT, ET, N, E, S] {
	out := &Walker[T, NewSt, NK, EK, NT, ET, N, E, S]{
		g:        w.g,
		branches: make([]branch[T, NewSt], len(w.branches)),
	}
	for i, b := range w.branches {
		out.branches[i] = branch[T, NewSt]{state: state, val: b.val, err: b.err}
	}
	return out
}

// Progress advances every live branch by one step, ignoring state. The
// step function maps a branch value to its successors; returning an
// empty slice ends the branch silently, returning an error terminates it
// with that error.
func Progress[NewT any, T, St any, NK, EK, NT, ET comparable, N Node[NK, NT], E Edge[EK, ET], S Schema[NT, ET]](
	w *Walker[T, St, NK, EK, NT, ET, N, E, S],
	step func(T, *Graph[NK, EK, NT, ET, N, E, S]) ([]NewT, error),
) *Walker[NewT, St, NK, EK, NT, ET, N, E, S] {
	out := &Walker[NewT, St, NK, EK, NT, ET, N, E, S]{g: w.g}
	for _, b := range w.branches {
		if b.err != nil {
			out.branches = append(out.branches, branch[NewT, St]{state: b.state, err: b.err})
			continue
		}
		next, err := step(b.val, w.g)
		if err != nil {
			out.branches = append(out.branches, branch[NewT, St]{state: b.state, err: err})
			continue
		}
		for _, v := range next {
			out.branches = append(out.branches, branch[NewT, St]{state: b.state, val: v})
		}
	}
	return out
}

// ProgressWithState advances every live branch by one step and folds
// each successor's increment into that branch's state, so sibling
// branches accumulate independently.
func ProgressWithState[NewT, Inc any, T, St any, NK, EK, NT, ET comparable, N Node[NK, NT], E Edge[EK, ET], S Schema[NT, ET]](
	w *Walker[T, St, NK, EK, NT, ET, N, E, S],
	step func(T, *Graph[NK, EK, NT, ET, N, E, S]) ([]Step[Inc, NewT], error),
	fold func(St, Inc) St,
) *Walker[NewT, St, NK, EK, NT, ET, N, E, S] {
	out := &Walker[NewT, St, NK, EK, NT, ET, N, E, S]{g: w.g}
	for _, b := range w.branches {
		if b.err != nil {
			out.branches = append(out.branches, branch[NewT, St]{state: b.state, err: b.err})
			continue
		}
		next, err := step(b.val, w.g)
		if err != nil {
			out.branches = append(out.branches, branch[NewT, St]{state: b.state, err: err})
			continue
		}
		for _, s := range next {
			out.branches = append(out.branches, branch[NewT, St]{state: fold(b.state, s.Inc), val: s.Val})
		}
	}
	return out
}

// One returns the first branch's value. The bool is false when no
// branches survive; a first branch that terminated with an error returns
// that error.
func (w *Walker[T, St, NK, EK, NT, ET, N, E, S]) One() (T, bool, error) {
	var zero T
	if len(w.branches) == 0 {
		return zero, false, nil
	}
	b := w.branches[0]
	if b.err != nil {
		return zero, false, b.err
	}
	return b.val, true, nil
}

// OneWithState is One including the branch's final state.
func (w *Walker[T, St, NK, EK, NT, ET, N, E, S]) OneWithState() (Target[T, St], bool, error) {
	if len(w.branches) == 0 {
		return Target[T, St]{}, false, nil
	}
	b := w.branches[0]
	if b.err != nil {
		return Target[T, St]{}, false, b.err
	}
	return Target[T, St]{Val: b.val, State: b.state}, true, nil
}

// Many collects every surviving branch's value. Any branch that
// terminated with an error aborts collection with that error; it is not
// silently excluded.
func (w *Walker[T, St, NK, EK, NT, ET, N, E, S]) Many() ([]T, error) {
	out := make([]T, 0, len(w.branches))
	for _, b := range w.branches {
		if b.err != nil {
			return nil, b.err
		}
		out = append(out, b.val)
	}
	return out, nil
}

// ManyWithState collects every surviving branch's value and final state.
func (w *Walker[T, St, NK, EK, NT, ET, N, E, S]) ManyWithState() ([]Target[T, St], error) {
	out := make([]Target[T, St], 0, len(w.branches))
	for _, b := range w.branches {
		if b.err != nil {
			return nil, b.err
		}
		out = append(out, Target[T, St]{Val: b.val, State: b.state})
	}
	return out, nil
}
