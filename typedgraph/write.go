package typedgraph

// InsertPosition selects where a moved edge lands relative to its target
// in MoveEdgeOrder.
type InsertPosition int

const (
	// Before places the moved edge immediately before the target edge.
	Before InsertPosition = iota
	// After places the moved edge immediately after the target edge.
	After
)

func (p InsertPosition) String() string {
	if p == After {
		return "after"
	}
	return "before"
}

// countSameShape counts the outgoing edges from source matching both the
// given edge type and the given target node type. This rescans the
// source's outgoing set on every mutation; O(degree) per add is the
// documented behavior, not an accident to optimize away.
func (g *Graph[NK, EK, NT, ET, N, E, S]) countSameShape(source *nodeRecord[N], edgeType ET, targetType NT) (int, error) {
	quantity := 0
	for _, es := range source.outgoing {
		erec, err := g.edgeAt(es)
		if err != nil {
			return 0, err
		}
		if erec.weight.TypeOf() != edgeType {
			continue
		}
		trec, err := g.nodeAt(erec.target)
		if err != nil {
			return 0, err
		}
		if trec.weight.TypeOf() != targetType {
			continue
		}
		quantity++
	}
	return quantity, nil
}

// AddNode inserts a node or replaces an existing one with the same id.
//
// A plain insert or a same-type replace only touches the weight. A
// replace that changes the node's runtime type is only committed if every
// edge incident to the node still validates against the schema with the
// new type; the first rejection aborts the call with the graph untouched.
func (g *Graph[NK, EK, NT, ET, N, E, S]) AddNode(weight N) (NK, error) {
	var zero NK

	weightType := weight.TypeOf()
	if err := g.schema.AllowNode(weightType); err != nil {
		return zero, newInvalidNodeType(weightType, err)
	}

	id := weight.Key()
	slot, ok := g.nodeLUT[id]
	if !ok {
		slot = g.nodes.insert(nodeRecord[N]{weight: weight})
		g.nodeLUT[id] = slot
		return id, nil
	}

	rec, err := g.nodeAt(slot)
	if err != nil {
		return zero, err
	}

	if rec.weight.TypeOf() != weightType {
		// Type change: every incident edge must still be valid with the
		// new node type. A self-loop sits in both adjacency sets but is
		// checked once.
		if err := g.revalidateIncident(slot, rec, weight); err != nil {
			return zero, err
		}
	}

	rec.weight = weight
	return id, nil
}

// revalidateIncident re-runs the schema edge check for every edge
// incident to the node at slot, substituting replacement for the node's
// weight on whichever endpoints the node occupies.
func (g *Graph[NK, EK, NT, ET, N, E, S]) revalidateIncident(slot NodeSlot, rec *nodeRecord[N], replacement N) error {
	newType := replacement.TypeOf()

	seen := make(map[EdgeSlot]bool, len(rec.incoming)+len(rec.outgoing))
	incident := make(slotList, 0, len(rec.incoming)+len(rec.outgoing))
	for _, es := range rec.incoming {
		if !seen[es] {
			seen[es] = true
			incident = append(incident, es)
		}
	}
	for _, es := range rec.outgoing {
		if !seen[es] {
			seen[es] = true
			incident = append(incident, es)
		}
	}

	for _, es := range incident {
		erec, err := g.edgeAt(es)
		if err != nil {
			return err
		}
		edgeType := erec.weight.TypeOf()

		srcRec, err := g.nodeAt(erec.source)
		if err != nil {
			return err
		}
		sourceType := srcRec.weight.TypeOf()
		if erec.source == slot {
			sourceType = newType
		}

		targetType := newType
		if erec.target != slot {
			trec, err := g.nodeAt(erec.target)
			if err != nil {
				return err
			}
			targetType = trec.weight.TypeOf()
		}

		// Freshly counted against the stored weights; the replacement
		// itself counts as the +1.
		quantity, err := g.countSameShape(srcRec, edgeType, targetType)
		if err != nil {
			return err
		}
		if err := g.schema.AllowEdge(quantity+1, edgeType, sourceType, targetType); err != nil {
			return newInvalidEdgeType(edgeType, sourceType, targetType, err)
		}
	}
	return nil
}

// AddEdge inserts an edge between two existing nodes, or replaces an
// existing edge with the same id, re-pointing its endpoints if they
// changed. On a source change the edge is removed from the old source's
// outgoing set and appended to the new one, so it moves to the end of the
// new source's order.
func (g *Graph[NK, EK, NT, ET, N, E, S]) AddEdge(source, target NK, weight E) (EK, error) {
	var zero EK

	srcSlot, err := g.nodeSlotOf(source)
	if err != nil {
		return zero, err
	}
	tgtSlot, err := g.nodeSlotOf(target)
	if err != nil {
		return zero, err
	}
	srcRec, err := g.nodeAt(srcSlot)
	if err != nil {
		return zero, err
	}
	tgtRec, err := g.nodeAt(tgtSlot)
	if err != nil {
		return zero, err
	}

	weightType := weight.TypeOf()
	sourceType := srcRec.weight.TypeOf()
	targetType := tgtRec.weight.TypeOf()

	// The prospective count deliberately includes the edge being
	// replaced when it already matches this shape.
	quantity, err := g.countSameShape(srcRec, weightType, targetType)
	if err != nil {
		return zero, err
	}
	if err := g.schema.AllowEdge(quantity+1, weightType, sourceType, targetType); err != nil {
		return zero, newInvalidEdgeType(weightType, sourceType, targetType, err)
	}

	id := weight.Key()
	slot, ok := g.edgeLUT[id]
	if !ok {
		slot = g.edges.insert(edgeRecord[E]{weight: weight, source: srcSlot, target: tgtSlot})
		g.edgeLUT[id] = slot
		srcRec.outgoing.add(slot)
		tgtRec.incoming.add(slot)
		return id, nil
	}

	rec, err := g.edgeAt(slot)
	if err != nil {
		return zero, err
	}
	rec.weight = weight

	if rec.source != srcSlot {
		oldSrc, err := g.nodeAt(rec.source)
		if err != nil {
			return zero, err
		}
		oldSrc.outgoing.drop(slot)
		srcRec.outgoing.add(slot)
		rec.source = srcSlot
	}
	if rec.target != tgtSlot {
		oldTgt, err := g.nodeAt(rec.target)
		if err != nil {
			return zero, err
		}
		oldTgt.incoming.drop(slot)
		tgtRec.incoming.add(slot)
		rec.target = tgtSlot
	}
	return id, nil
}

// RemoveNode removes a node and every edge incident to it, returning the
// removed weight.
func (g *Graph[NK, EK, NT, ET, N, E, S]) RemoveNode(id NK) (N, error) {
	var zero N

	slot, ok := g.nodeLUT[id]
	if !ok {
		return zero, newMissingNode(id)
	}
	delete(g.nodeLUT, id)
	rec, ok := g.nodes.remove(slot)
	if !ok {
		return zero, newInvalidState("node id mapped to a removed slot")
	}

	for _, es := range rec.outgoing {
		erec, ok := g.edges.remove(es)
		if !ok {
			return zero, newInvalidState("outgoing set referenced a removed edge")
		}
		delete(g.edgeLUT, erec.weight.Key())
		if erec.target != slot {
			trec, err := g.nodeAt(erec.target)
			if err != nil {
				return zero, err
			}
			trec.incoming.drop(es)
		}
	}

	for _, es := range rec.incoming {
		// A self-loop shows up in both sets and is already gone.
		if !g.edges.has(es) {
			continue
		}
		erec, ok := g.edges.remove(es)
		if !ok {
			return zero, newInvalidState("incoming set referenced a removed edge")
		}
		delete(g.edgeLUT, erec.weight.Key())
		if erec.source != slot {
			srec, err := g.nodeAt(erec.source)
			if err != nil {
				return zero, err
			}
			srec.outgoing.drop(es)
		}
	}

	return rec.weight, nil
}

// RemoveEdge removes an edge and deregisters it from both endpoints,
// returning the removed weight.
func (g *Graph[NK, EK, NT, ET, N, E, S]) RemoveEdge(id EK) (E, error) {
	var zero E

	slot, ok := g.edgeLUT[id]
	if !ok {
		return zero, newMissingEdge(id)
	}
	delete(g.edgeLUT, id)
	rec, ok := g.edges.remove(slot)
	if !ok {
		return zero, newInvalidState("edge id mapped to a removed slot")
	}

	srec, err := g.nodeAt(rec.source)
	if err != nil {
		return zero, err
	}
	srec.outgoing.drop(slot)

	trec, err := g.nodeAt(rec.target)
	if err != nil {
		return zero, err
	}
	trec.incoming.drop(slot)

	return rec.weight, nil
}

// MoveEdgeOrder reorders one outgoing edge relative to a sibling in the
// same node's outgoing set, shifting everything in between.
//
// With Before the moved edge takes the target's current index (unless a
// leftward move already lands there); with After it lands one past the
// target (never past the end). Moving an edge relative to itself is a
// no-op. Fails with INVALID_EDGE_MOVE when the edges do not share a
// source node.
func (g *Graph[NK, EK, NT, ET, N, E, S]) MoveEdgeOrder(moved, relativeTo EK, position InsertPosition) error {
	if moved == relativeTo {
		return nil
	}

	movedSlot, err := g.edgeSlotOf(moved)
	if err != nil {
		return err
	}
	targetSlot, err := g.edgeSlotOf(relativeTo)
	if err != nil {
		return err
	}

	// Both edges must live in the moved edge's source order.
	erec, err := g.edgeAt(movedSlot)
	if err != nil {
		return err
	}
	nrec, err := g.nodeAt(erec.source)
	if err != nil {
		return err
	}
	if len(nrec.outgoing) == 0 {
		return newInvalidState("edge exists but its source has an empty outgoing set")
	}

	srcIdx := nrec.outgoing.indexOf(movedSlot)
	tgtIdx := nrec.outgoing.indexOf(targetSlot)
	if srcIdx < 0 || tgtIdx < 0 {
		return newInvalidEdgeMove(moved, relativeTo)
	}

	// Adjust for the slot vacated by the move so the result reads as
	// "insert immediately before/after the target".
	switch position {
	case After:
		if tgtIdx+1 != len(nrec.outgoing) && srcIdx > tgtIdx {
			tgtIdx++
		}
	case Before:
		if tgtIdx != 0 && srcIdx < tgtIdx {
			tgtIdx--
		}
	}

	nrec.outgoing.moveIndex(srcIdx, tgtIdx)
	return nil
}
