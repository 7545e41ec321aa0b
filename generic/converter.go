package generic

import "github.com/build-aau/typed-graph/migrate"

// Converter migrates between two generic schemas over the same type
// values. An entity survives when the new schema still allows its type;
// otherwise it is dropped.
//
// It satisfies the migration engine's converter contract for
// Graph[NK, EK, NT, ET] on both sides.
type Converter[NK, EK, NT, ET comparable] struct{}

// UpdateNode keeps node weights whose type the new schema allows.
func (Converter[NK, EK, NT, ET]) UpdateNode(newSchema Schema[NT, ET], node Weight[NK, NT]) (Weight[NK, NT], bool) {
	if newSchema.AllowNode(node.Type) != nil {
		return Weight[NK, NT]{}, false
	}
	return node, true
}

// UpdateEdge keeps edge weights whose type the new schema allows. The
// check is type level only; endpoint shapes and quantities are enforced
// when the edge is replayed into the new graph.
func (Converter[NK, EK, NT, ET]) UpdateEdge(newSchema Schema[NT, ET], edge Weight[EK, ET]) (Weight[EK, ET], bool) {
	if newSchema.AllowEdgeType(edge.Type) != nil {
		return Weight[EK, ET]{}, false
	}
	return edge, true
}

// UpdateNodeType maps a node type to its new-schema equivalent.
func (Converter[NK, EK, NT, ET]) UpdateNodeType(newSchema Schema[NT, ET], nodeType NT) (NT, bool) {
	if newSchema.AllowNode(nodeType) != nil {
		var zero NT
		return zero, false
	}
	return nodeType, true
}

// UpdateEdgeType maps an edge type to its new-schema equivalent.
func (Converter[NK, EK, NT, ET]) UpdateEdgeType(newSchema Schema[NT, ET], edgeType ET) (ET, bool) {
	if newSchema.AllowEdgeType(edgeType) != nil {
		var zero ET
		return zero, false
	}
	return edgeType, true
}

// Migrate re-types a generic graph to a new schema over the same type
// values. The source graph is consumed. Entities the new schema rejects
// are dropped; everything else carries over unchanged, outgoing order
// included.
func Migrate[NK, EK, NT, ET comparable](g *Graph[NK, EK, NT, ET], schema Schema[NT, ET]) (*Graph[NK, EK, NT, ET], error) {
	return migrate.Direct[
		NK, EK, NT, ET, NT, ET,
		Weight[NK, NT], Weight[EK, ET], Weight[NK, NT], Weight[EK, ET],
	](g, schema, Converter[NK, EK, NT, ET]{})
}
