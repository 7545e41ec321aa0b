// Package testutil provides deterministic graph fixtures for tests.
package testutil

import (
	"fmt"
	"testing"

	"github.com/build-aau/typed-graph/generic"
)

// EdgeSpec describes one edge of a fixture graph in insertion order.
type EdgeSpec struct {
	ID     string
	Type   string
	Source string
	Target string
}

// NodeSpec describes one node of a fixture graph.
type NodeSpec struct {
	ID   string
	Type string
}

// BuildGraph constructs a string-typed graph from node and edge specs,
// inserting them in the given order so tests control storage and
// outgoing order exactly. Fails the test on any rejection.
func BuildGraph(t *testing.T, schema generic.StringSchema, nodes []NodeSpec, edges []EdgeSpec) *generic.StringGraph {
	t.Helper()
	g := generic.NewStringGraph(schema)
	for _, n := range nodes {
		if _, err := g.AddNode(generic.W(n.ID, n.Type)); err != nil {
			t.Fatalf("add node %s: %v", n.ID, err)
		}
	}
	for _, e := range edges {
		if _, err := g.AddEdge(e.Source, e.Target, generic.W(e.ID, e.Type)); err != nil {
			t.Fatalf("add edge %s: %v", e.ID, err)
		}
	}
	return g
}

// Chain builds n nodes of one type connected in a line, node-0 through
// node-(n-1), with edge-i from node-i to node-(i+1).
func Chain(t *testing.T, schema generic.StringSchema, n int, nodeType, edgeType string) *generic.StringGraph {
	t.Helper()
	nodes := make([]NodeSpec, n)
	for i := range nodes {
		nodes[i] = NodeSpec{ID: fmt.Sprintf("node-%d", i), Type: nodeType}
	}
	edges := make([]EdgeSpec, 0, n-1)
	for i := 0; i < n-1; i++ {
		edges = append(edges, EdgeSpec{
			ID:     fmt.Sprintf("edge-%d", i),
			Type:   edgeType,
			Source: fmt.Sprintf("node-%d", i),
			Target: fmt.Sprintf("node-%d", i+1),
		})
	}
	return BuildGraph(t, schema, nodes, edges)
}
