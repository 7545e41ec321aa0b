package typedgraph

import "fmt"

// Direction tags an edge result with how it was reached from a node.
type Direction int

const (
	// Outgoing means the edge was reached from its source node.
	Outgoing Direction = iota
	// Incoming means the edge was reached from its target node.
	Incoming
)

func (d Direction) String() string {
	if d == Incoming {
		return "incoming"
	}
	return "outgoing"
}

// EdgeRef is an edge together with its resolved endpoints and the
// direction it was traversed in.
type EdgeRef[NK comparable, E any] struct {
	Weight E

	source    NK
	target    NK
	direction Direction
}

// Source returns the logical id of the edge's source node.
func (r EdgeRef[NK, E]) Source() NK { return r.source }

// Target returns the logical id of the edge's target node.
func (r EdgeRef[NK, E]) Target() NK { return r.target }

// Direction returns how the edge was reached.
func (r EdgeRef[NK, E]) Direction() Direction { return r.direction }

// Inner returns the node the edge was traversed from: the source for an
// outgoing edge, the target for an incoming one.
func (r EdgeRef[NK, E]) Inner() NK {
	if r.direction == Incoming {
		return r.target
	}
	return r.source
}

// Outer returns the node the edge leads to, relative to the traversal:
// the target for an outgoing edge, the source for an incoming one.
func (r EdgeRef[NK, E]) Outer() NK {
	if r.direction == Incoming {
		return r.source
	}
	return r.target
}

// Node returns the weight of the node with the given id.
func (g *Graph[NK, EK, NT, ET, N, E, S]) Node(id NK) (N, error) {
	var zero N
	slot, err := g.nodeSlotOf(id)
	if err != nil {
		return zero, err
	}
	rec, err := g.nodeAt(slot)
	if err != nil {
		return zero, err
	}
	return rec.weight, nil
}

// NodeOK is Node without the error: the weight and whether it exists.
func (g *Graph[NK, EK, NT, ET, N, E, S]) NodeOK(id NK) (N, bool) {
	n, err := g.Node(id)
	return n, err == nil
}

// Edge returns the weight of the edge with the given id.
func (g *Graph[NK, EK, NT, ET, N, E, S]) Edge(id EK) (E, error) {
	var zero E
	slot, err := g.edgeSlotOf(id)
	if err != nil {
		return zero, err
	}
	rec, err := g.edgeAt(slot)
	if err != nil {
		return zero, err
	}
	return rec.weight, nil
}

// EdgeOK is Edge without the error: the weight and whether it exists.
func (g *Graph[NK, EK, NT, ET, N, E, S]) EdgeOK(id EK) (E, bool) {
	e, err := g.Edge(id)
	return e, err == nil
}

// EdgeFull returns the edge with its endpoints resolved to logical ids,
// tagged Outgoing.
func (g *Graph[NK, EK, NT, ET, N, E, S]) EdgeFull(id EK) (EdgeRef[NK, E], error) {
	slot, err := g.edgeSlotOf(id)
	if err != nil {
		return EdgeRef[NK, E]{}, err
	}
	rec, err := g.edgeAt(slot)
	if err != nil {
		return EdgeRef[NK, E]{}, err
	}
	return g.edgeRef(rec, Outgoing)
}

func (g *Graph[NK, EK, NT, ET, N, E, S]) edgeRef(rec *edgeRecord[E], dir Direction) (EdgeRef[NK, E], error) {
	src, err := g.nodeAt(rec.source)
	if err != nil {
		return EdgeRef[NK, E]{}, err
	}
	tgt, err := g.nodeAt(rec.target)
	if err != nil {
		return EdgeRef[NK, E]{}, err
	}
	return EdgeRef[NK, E]{
		Weight:    rec.weight,
		source:    src.weight.Key(),
		target:    tgt.weight.Key(),
		direction: dir,
	}, nil
}

func (g *Graph[NK, EK, NT, ET, N, E, S]) adjacency(id NK, list func(*nodeRecord[N]) slotList, dir Direction) ([]EdgeRef[NK, E], error) {
	slot, err := g.nodeSlotOf(id)
	if err != nil {
		return nil, err
	}
	rec, err := g.nodeAt(slot)
	if err != nil {
		return nil, err
	}
	edges := list(rec)
	out := make([]EdgeRef[NK, E], 0, len(edges))
	for _, es := range edges {
		erec, err := g.edgeAt(es)
		if err != nil {
			return nil, err
		}
		ref, err := g.edgeRef(erec, dir)
		if err != nil {
			return nil, err
		}
		out = append(out, ref)
	}
	return out, nil
}

// Incoming returns the edges pointing at the node. Their order carries no
// guarantee.
func (g *Graph[NK, EK, NT, ET, N, E, S]) Incoming(id NK) ([]EdgeRef[NK, E], error) {
	return g.adjacency(id, func(r *nodeRecord[N]) slotList { return r.incoming }, Incoming)
}

// Outgoing returns the edges leaving the node, in their authoritative
// order.
func (g *Graph[NK, EK, NT, ET, N, E, S]) Outgoing(id NK) ([]EdgeRef[NK, E], error) {
	return g.adjacency(id, func(r *nodeRecord[N]) slotList { return r.outgoing }, Outgoing)
}

// IncomingAndOutgoing returns all edges incident to the node, incoming
// first, each tagged with its direction. A self-loop appears twice.
func (g *Graph[NK, EK, NT, ET, N, E, S]) IncomingAndOutgoing(id NK) ([]EdgeRef[NK, E], error) {
	in, err := g.Incoming(id)
	if err != nil {
		return nil, err
	}
	out, err := g.Outgoing(id)
	if err != nil {
		return nil, err
	}
	return append(in, out...), nil
}

// IncomingFilter returns the incoming edges whose weight satisfies keep.
func (g *Graph[NK, EK, NT, ET, N, E, S]) IncomingFilter(id NK, keep func(E) bool) ([]EdgeRef[NK, E], error) {
	refs, err := g.Incoming(id)
	if err != nil {
		return nil, err
	}
	return filterRefs(refs, keep), nil
}

// OutgoingFilter returns the outgoing edges whose weight satisfies keep,
// preserving their order.
func (g *Graph[NK, EK, NT, ET, N, E, S]) OutgoingFilter(id NK, keep func(E) bool) ([]EdgeRef[NK, E], error) {
	refs, err := g.Outgoing(id)
	if err != nil {
		return nil, err
	}
	return filterRefs(refs, keep), nil
}

func filterRefs[NK comparable, E any](refs []EdgeRef[NK, E], keep func(E) bool) []EdgeRef[NK, E] {
	out := make([]EdgeRef[NK, E], 0, len(refs))
	for _, ref := range refs {
		if keep(ref.Weight) {
			out = append(out, ref)
		}
	}
	return out
}

// Nodes returns all node weights in storage order.
func (g *Graph[NK, EK, NT, ET, N, E, S]) Nodes() []N {
	out := make([]N, 0, g.nodes.len())
	for _, slot := range g.nodes.order {
		out = append(out, g.nodes.recs[slot].weight)
	}
	return out
}

// NodeIDs returns all live node ids in storage order.
func (g *Graph[NK, EK, NT, ET, N, E, S]) NodeIDs() []NK {
	out := make([]NK, 0, g.nodes.len())
	for _, slot := range g.nodes.order {
		out = append(out, g.nodes.recs[slot].weight.Key())
	}
	return out
}

// Edges returns all edge weights in storage order.
func (g *Graph[NK, EK, NT, ET, N, E, S]) Edges() []E {
	out := make([]E, 0, g.edges.len())
	for _, slot := range g.edges.order {
		out = append(out, g.edges.recs[slot].weight)
	}
	return out
}

// EdgeIDs returns all live edge ids in storage order.
func (g *Graph[NK, EK, NT, ET, N, E, S]) EdgeIDs() []EK {
	out := make([]EK, 0, g.edges.len())
	for _, slot := range g.edges.order {
		out = append(out, g.edges.recs[slot].weight.Key())
	}
	return out
}

// EdgesFull returns every edge with resolved endpoints, tagged Outgoing,
// in storage order.
func (g *Graph[NK, EK, NT, ET, N, E, S]) EdgesFull() ([]EdgeRef[NK, E], error) {
	out := make([]EdgeRef[NK, E], 0, g.edges.len())
	for _, slot := range g.edges.order {
		ref, err := g.edgeRef(g.edges.recs[slot], Outgoing)
		if err != nil {
			return nil, err
		}
		out = append(out, ref)
	}
	return out, nil
}

// NodeAs looks up a node and narrows its weight to the concrete type T.
// Fails with DOWNCAST_FAILED instead of panicking when the weight is not
// a T.
func NodeAs[T any, NK, EK, NT, ET comparable, N Node[NK, NT], E Edge[EK, ET], S Schema[NT, ET]](g *Graph[NK, EK, NT, ET, N, E, S], id NK) (T, error) {
	var zero T
	n, err := g.Node(id)
	if err != nil {
		return zero, err
	}
	v, ok := any(n).(T)
	if !ok {
		return zero, newDowncastFailed(fmt.Sprintf("%v", n.TypeOf()), fmt.Sprintf("%T", zero))
	}
	return v, nil
}

// EdgeAs looks up an edge and narrows its weight to the concrete type T.
func EdgeAs[T any, NK, EK, NT, ET comparable, N Node[NK, NT], E Edge[EK, ET], S Schema[NT, ET]](g *Graph[NK, EK, NT, ET, N, E, S], id EK) (T, error) {
	var zero T
	e, err := g.Edge(id)
	if err != nil {
		return zero, err
	}
	v, ok := any(e).(T)
	if !ok {
		return zero, newDowncastFailed(fmt.Sprintf("%v", e.TypeOf()), fmt.Sprintf("%T", zero))
	}
	return v, nil
}
