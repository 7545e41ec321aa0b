package typedgraph

// Entity is the capability every weight must expose: a logical id and a
// runtime type value comparable against same-kind type values. Concrete
// weight types that support id rewriting do so with their own setters;
// the graph itself never rewrites an id.
type Entity[K comparable, T comparable] interface {
	Key() K
	TypeOf() T
}

// Node is the weight capability for nodes.
type Node[NK, NT comparable] interface {
	Entity[NK, NT]
}

// Edge is the weight capability for edges.
type Edge[EK, ET comparable] interface {
	Entity[EK, ET]
}

// Schema decides which node and edge types the graph accepts. It is
// consulted on every insert and replace, before anything is committed.
type Schema[NT, ET comparable] interface {
	// Name identifies the schema in diagnostics.
	Name() string

	// AllowNode accepts or rejects a node type. A rejection wraps or is
	// ErrInvalidType.
	AllowNode(nodeType NT) error

	// AllowEdge accepts or rejects an edge. quantity is the number of
	// outgoing edges of this exact (edge type, target type) combination
	// the source would have after the add, letting a schema cap
	// per-(source,edge,target)-type cardinality. Rejections wrap or are
	// ErrInvalidType / ErrTooMany.
	AllowEdge(quantity int, edgeType ET, source, target NT) error
}

// NodeSlot is a stable internal reference to a node record. Slots are
// never reused and never exposed as ids.
type NodeSlot uint64

// EdgeSlot is a stable internal reference to an edge record.
type EdgeSlot uint64

// nodeRecord owns a node weight and its adjacency sets.
type nodeRecord[N any] struct {
	weight N
	// incoming is a lookup cache; its order is not meaningful.
	incoming slotList
	// outgoing order is authoritative and cannot be reconstructed from
	// the edge records. See MoveEdgeOrder.
	outgoing slotList
}

// edgeRecord owns an edge weight and its endpoints.
type edgeRecord[E any] struct {
	weight E
	source NodeSlot
	target NodeSlot
}

// Graph is a schema-validated directed multigraph.
//
// NK and EK are the logical id types for nodes and edges, NT and ET the
// runtime type values, N and E the weight types, S the schema. The zero
// value is not usable; construct with New.
type Graph[NK, EK, NT, ET comparable, N Node[NK, NT], E Edge[EK, ET], S Schema[NT, ET]] struct {
	// nodeLUT and edgeLUT map logical ids to live slots (bijective).
	nodeLUT map[NK]NodeSlot
	edgeLUT map[EK]EdgeSlot

	nodes table[NodeSlot, nodeRecord[N]]
	edges table[EdgeSlot, edgeRecord[E]]

	schema S
}

// New creates an empty graph governed by schema.
func New[NK, EK, NT, ET comparable, N Node[NK, NT], E Edge[EK, ET], S Schema[NT, ET]](schema S) *Graph[NK, EK, NT, ET, N, E, S] {
	return &Graph[NK, EK, NT, ET, N, E, S]{
		nodeLUT: make(map[NK]NodeSlot),
		edgeLUT: make(map[EK]EdgeSlot),
		nodes:   newTable[NodeSlot, nodeRecord[N]](),
		edges:   newTable[EdgeSlot, edgeRecord[E]](),
		schema:  schema,
	}
}

// Schema returns the active schema.
func (g *Graph[NK, EK, NT, ET, N, E, S]) Schema() S {
	return g.schema
}

// NodeCount returns the number of live nodes.
func (g *Graph[NK, EK, NT, ET, N, E, S]) NodeCount() int {
	return g.nodes.len()
}

// EdgeCount returns the number of live edges.
func (g *Graph[NK, EK, NT, ET, N, E, S]) EdgeCount() int {
	return g.edges.len()
}

// HasNode reports whether a node with the given id is live.
func (g *Graph[NK, EK, NT, ET, N, E, S]) HasNode(id NK) bool {
	_, ok := g.nodeLUT[id]
	return ok
}

// HasEdge reports whether an edge with the given id is live.
func (g *Graph[NK, EK, NT, ET, N, E, S]) HasEdge(id EK) bool {
	_, ok := g.edgeLUT[id]
	return ok
}

func (g *Graph[NK, EK, NT, ET, N, E, S]) nodeSlotOf(id NK) (NodeSlot, error) {
	slot, ok := g.nodeLUT[id]
	if !ok {
		return 0, newMissingNode(id)
	}
	return slot, nil
}

func (g *Graph[NK, EK, NT, ET, N, E, S]) edgeSlotOf(id EK) (EdgeSlot, error) {
	slot, ok := g.edgeLUT[id]
	if !ok {
		return 0, newMissingEdge(id)
	}
	return slot, nil
}

func (g *Graph[NK, EK, NT, ET, N, E, S]) nodeAt(slot NodeSlot) (*nodeRecord[N], error) {
	rec, ok := g.nodes.get(slot)
	if !ok {
		return nil, newMissingNodeSlot(slot)
	}
	return rec, nil
}

func (g *Graph[NK, EK, NT, ET, N, E, S]) edgeAt(slot EdgeSlot) (*edgeRecord[E], error) {
	rec, ok := g.edges.get(slot)
	if !ok {
		return nil, newMissingEdgeSlot(slot)
	}
	return rec, nil
}
