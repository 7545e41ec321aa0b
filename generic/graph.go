package generic

import (
	"fmt"

	"github.com/build-aau/typed-graph/typedgraph"
)

// Graph is a typed graph whose weights are plain (id, type) pairs.
type Graph[NK, EK, NT, ET comparable] = typedgraph.Graph[NK, EK, NT, ET, Weight[NK, NT], Weight[EK, ET], Schema[NT, ET]]

// New creates an empty generic graph governed by schema.
func New[NK, EK, NT, ET comparable](schema Schema[NT, ET]) *Graph[NK, EK, NT, ET] {
	return typedgraph.New[NK, EK, NT, ET, Weight[NK, NT], Weight[EK, ET], Schema[NT, ET]](schema)
}

// String-typed instantiations, used by the CLI, the schema file loader
// and the SQLite snapshot store.
type (
	StringGraph  = Graph[string, string, string, string]
	StringSchema = Schema[string, string]
	StringWeight = Weight[string, string]
)

// NewStringGraph creates an empty string-typed generic graph.
func NewStringGraph(schema StringSchema) *StringGraph {
	return New[string, string](schema)
}

// Equal compares two generic graphs structurally: node and edge counts,
// per-entity types, per-edge endpoints, and the outgoing order of every
// node (order-sensitive). Returns a descriptive error on the first
// mismatch, nil when the graphs are equivalent.
func Equal[NK, EK, NT, ET comparable](a, b *Graph[NK, EK, NT, ET]) error {
	if a.NodeCount() != b.NodeCount() {
		return fmt.Errorf("node count mismatch: %d != %d", a.NodeCount(), b.NodeCount())
	}
	if a.EdgeCount() != b.EdgeCount() {
		return fmt.Errorf("edge count mismatch: %d != %d", a.EdgeCount(), b.EdgeCount())
	}

	for _, n := range a.Nodes() {
		other, err := b.Node(n.ID)
		if err != nil {
			return fmt.Errorf("node %v: %w", n.ID, err)
		}
		if n.Type != other.Type {
			return fmt.Errorf("node %v type mismatch: %v != %v", n.ID, n.Type, other.Type)
		}
	}

	refs, err := a.EdgesFull()
	if err != nil {
		return err
	}
	for _, ref := range refs {
		other, err := b.EdgeFull(ref.Weight.ID)
		if err != nil {
			return fmt.Errorf("edge %v: %w", ref.Weight.ID, err)
		}
		if ref.Weight.Type != other.Weight.Type {
			return fmt.Errorf("edge %v type mismatch: %v != %v", ref.Weight.ID, ref.Weight.Type, other.Weight.Type)
		}
		if ref.Source() != other.Source() || ref.Target() != other.Target() {
			return fmt.Errorf("edge %v endpoint mismatch: (%v,%v) != (%v,%v)",
				ref.Weight.ID, ref.Source(), ref.Target(), other.Source(), other.Target())
		}
	}

	for _, id := range a.NodeIDs() {
		out, err := a.Outgoing(id)
		if err != nil {
			return err
		}
		otherOut, err := b.Outgoing(id)
		if err != nil {
			return err
		}
		for i := range out {
			if out[i].Weight.ID != otherOut[i].Weight.ID {
				return fmt.Errorf("node %v outgoing order mismatch at index %d: %v != %v",
					id, i, out[i].Weight.ID, otherOut[i].Weight.ID)
			}
		}
	}

	return nil
}
