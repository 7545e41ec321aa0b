package typedgraph

import "errors"

// UpdateSchema re-types an entire graph from one schema to another. It is
// the primitive the migration engine is built on.
//
// The source graph is consumed: its edge storage is drained during the
// capture pass and it must not be used afterwards. A fresh graph under
// the new schema is returned.
//
// nodeMap and edgeMap convert weights; returning false drops the entity
// (and, for a node, every edge depending on it). A mapped weight must
// keep its id: an id change fails the whole operation with
// INCONSISTENT_ID.
//
// Edges are replayed in outgoing order. When the new schema rejects an
// edge purely on quantity grounds the edge is silently dropped, so
// shrinking a quantity cap trims the last edges in each node's outgoing
// order first. Any other rejection fails the operation.
func UpdateSchema[
	NK, EK, NT1, ET1, NT2, ET2 comparable,
	N1 Node[NK, NT1], E1 Edge[EK, ET1], S1 Schema[NT1, ET1],
	N2 Node[NK, NT2], E2 Edge[EK, ET2], S2 Schema[NT2, ET2],
](
	g *Graph[NK, EK, NT1, ET1, N1, E1, S1],
	schema S2,
	nodeMap func(old S1, new S2, weight N1) (N2, bool),
	edgeMap func(old S1, new S2, weight E1) (E2, bool),
) (*Graph[NK, EK, NT2, ET2, N2, E2, S2], error) {
	out := New[NK, EK, NT2, ET2, N2, E2, S2](schema)

	// Capture every edge in outgoing order before touching anything:
	// this order drives quantity truncation below and cannot be
	// reconstructed later.
	type capturedEdge struct {
		weight E1
		source NodeSlot
		target NodeSlot
	}
	var captured []capturedEdge
	for _, ns := range g.nodes.slots() {
		rec, ok := g.nodes.get(ns)
		if !ok {
			return nil, newInvalidState("node slot vanished during capture")
		}
		for _, es := range rec.outgoing {
			erec, ok := g.edges.remove(es)
			if !ok {
				return nil, newInvalidState("outgoing set referenced a removed edge")
			}
			captured = append(captured, capturedEdge{erec.weight, erec.source, erec.target})
		}
	}

	idOfSlot := make(map[NodeSlot]NK, g.nodes.len())
	for _, ns := range g.nodes.slots() {
		rec, _ := g.nodes.get(ns)
		oldID := rec.weight.Key()
		idOfSlot[ns] = oldID

		mapped, keep := nodeMap(g.schema, out.schema, rec.weight)
		if !keep {
			continue
		}
		if mapped.Key() != oldID {
			return nil, newInconsistentID("node", oldID, mapped.Key())
		}
		if _, err := out.AddNode(mapped); err != nil {
			return nil, err
		}
	}

	for _, edge := range captured {
		oldID := edge.weight.Key()
		mapped, keep := edgeMap(g.schema, out.schema, edge.weight)
		if !keep {
			continue
		}
		if mapped.Key() != oldID {
			return nil, newInconsistentID("edge", oldID, mapped.Key())
		}

		sourceID, ok := idOfSlot[edge.source]
		if !ok {
			return nil, newInvalidState("edge source slot unknown during re-type")
		}
		targetID, ok := idOfSlot[edge.target]
		if !ok {
			return nil, newInvalidState("edge target slot unknown during re-type")
		}

		// Skip edges whose endpoints were dropped.
		if !out.HasNode(sourceID) || !out.HasNode(targetID) {
			continue
		}

		if _, err := out.AddEdge(sourceID, targetID, mapped); err != nil {
			// Quantity overflow trims the excess edges; everything else
			// is fatal.
			if errors.Is(err, ErrTooMany) {
				continue
			}
			return nil, err
		}
	}

	return out, nil
}
