package migrate_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/build-aau/typed-graph/generic"
	"github.com/build-aau/typed-graph/internal/testutil"
	"github.com/build-aau/typed-graph/migrate"
	"github.com/build-aau/typed-graph/typedgraph"
)

type (
	sw = generic.StringWeight
	ss = generic.StringSchema
)

type stringDualGraph = migrate.DualGraph[string, string, string, string, string, string, sw, sw, sw, sw, ss, ss]

var conv = generic.Converter[string, string, string, string]{}

func runMigrate(g *generic.StringGraph, schema ss, handler migrate.Handler[string, string, string, string, string, string, sw, sw, sw, sw, ss, ss]) (*generic.StringGraph, error) {
	return migrate.Migrate[string, string, string, string, string, string, sw, sw, sw, sw](g, schema, conv, handler)
}

func defaultHandler() migrate.DefaultHandler[string, string, string, string, string, string, sw, sw, sw, sw, ss, ss] {
	return migrate.DefaultHandler[string, string, string, string, string, string, sw, sw, sw, sw, ss, ss]{}
}

func TestMigrate_DropsDisallowedTypes(t *testing.T) {
	v1 := ss{}.WithName("v1").WithNodeWhitelist("A", "B")
	v2 := ss{}.WithName("v2").WithNodeWhitelist("A")
	g := testutil.BuildGraph(t, v1,
		[]testutil.NodeSpec{{ID: "a1", Type: "A"}, {ID: "a2", Type: "A"}, {ID: "b", Type: "B"}},
		[]testutil.EdgeSpec{
			{ID: "e1", Type: "x", Source: "a1", Target: "a2"},
			{ID: "e2", Type: "x", Source: "a1", Target: "b"},
		},
	)

	got, err := runMigrate(g, v2, defaultHandler())
	require.NoError(t, err)

	want := testutil.BuildGraph(t, v2,
		[]testutil.NodeSpec{{ID: "a1", Type: "A"}, {ID: "a2", Type: "A"}},
		[]testutil.EdgeSpec{{ID: "e1", Type: "x", Source: "a1", Target: "a2"}},
	)
	assert.NoError(t, generic.Equal(got, want))
	assert.Equal(t, "v2", got.Schema().Name())
}

func TestMigrate_HandlerAddsNewEntities(t *testing.T) {
	v1 := ss{}.WithName("v1").WithNodeWhitelist("A")
	v2 := ss{}.WithName("v2").WithNodeWhitelist("A", "B")
	g := testutil.BuildGraph(t, v1,
		[]testutil.NodeSpec{{ID: "a", Type: "A"}},
		nil,
	)

	got, err := runMigrate(g, v2, addNodeHandler{})
	require.NoError(t, err)

	require.True(t, got.HasNode("extra"))
	require.True(t, got.HasEdge("bridge"))
	n, err := got.Node("extra")
	require.NoError(t, err)
	assert.Equal(t, "B", n.Type)

	ref, err := got.EdgeFull("bridge")
	require.NoError(t, err)
	assert.Equal(t, "extra", ref.Source())
	assert.Equal(t, "a", ref.Target())
}

// addNodeHandler inserts a new-schema node and an edge from it to the
// lifted node "a" while both versions coexist.
type addNodeHandler struct{}

func (addNodeHandler) UpdateData(g *stringDualGraph) error {
	node := migrate.NewWeight[string, string, string, sw, sw](generic.W("extra", "B"))
	if _, err := g.AddNode(node); err != nil {
		return err
	}
	edge := migrate.NewWeight[string, string, string, sw, sw](generic.W("bridge", "x"))
	_, err := g.AddEdge("extra", "a", edge)
	return err
}

// failingHandler wires a mixed edge whose old endpoint has no
// new-schema equivalent, forcing a dual schema rejection.
type failingHandler struct{}

func (failingHandler) UpdateData(g *stringDualGraph) error {
	node := migrate.NewWeight[string, string, string, sw, sw](generic.W("extra", "A"))
	if _, err := g.AddNode(node); err != nil {
		return err
	}
	edge := migrate.NewWeight[string, string, string, sw, sw](generic.W("bad", "x"))
	_, err := g.AddEdge("extra", "b", edge)
	return err
}

func TestMigrate_RelabelsMixedEdgeError(t *testing.T) {
	v1 := ss{}.WithName("v1").WithNodeWhitelist("A", "B")
	v2 := ss{}.WithName("v2").WithNodeWhitelist("A")
	g := testutil.BuildGraph(t, v1,
		[]testutil.NodeSpec{{ID: "b", Type: "B"}},
		nil,
	)

	_, err := runMigrate(g, v2, failingHandler{})
	require.Error(t, err)

	var ge *typedgraph.Error
	require.ErrorAs(t, err, &ge)
	assert.Equal(t, typedgraph.ErrCodeInvalidEdgeType, ge.Code)
	assert.Equal(t, "v2::x", ge.EdgeType)
	assert.Equal(t, "v2::A", ge.SourceType)
	assert.Equal(t, "v1::B", ge.TargetType)
}

func TestDualSchema_AllowEdgeRouting(t *testing.T) {
	oldSchema := ss{}.WithName("v1").WithNodeWhitelist("A", "B")
	newSchema := ss{}.WithName("v2").WithNodeWhitelist("A").
		WithEndpointWhitelist(generic.Endpoint[string, string]{Edge: "x", Source: "A", Target: "A"})
	dual := migrate.DualSchema[string, string, string, string, string, string, sw, sw, sw, sw, ss, ss]{
		Old: oldSchema, New: newSchema, Conv: conv,
	}

	assert.Equal(t, "v1 or v2", dual.Name())

	oldN := migrate.OldOf[string, string]
	newN := migrate.NewOf[string, string]

	// All-old edges validate against the old schema only.
	assert.NoError(t, dual.AllowEdge(1, oldN("x"), oldN("B"), oldN("B")))
	// All-new edges validate against the new schema.
	assert.NoError(t, dual.AllowEdge(1, newN("x"), newN("A"), newN("A")))
	assert.Error(t, dual.AllowEdge(1, newN("y"), newN("A"), newN("A")))
	// A mixed edge converts its old sides first; A converts, B does not.
	assert.NoError(t, dual.AllowEdge(1, newN("x"), oldN("A"), newN("A")))
	err := dual.AllowEdge(1, newN("x"), oldN("B"), newN("A"))
	assert.ErrorIs(t, err, typedgraph.ErrInvalidType)
}

func TestDirect_QuantityTruncation(t *testing.T) {
	g := testutil.BuildGraph(t, ss{}.WithName("v1"),
		[]testutil.NodeSpec{{ID: "p", Type: "person"}, {ID: "s1", Type: "ship"}, {ID: "s2", Type: "ship"}},
		[]testutil.EdgeSpec{
			{ID: "c1", Type: "crews", Source: "p", Target: "s1"},
			{ID: "c2", Type: "crews", Source: "p", Target: "s2"},
		},
	)

	capped := ss{}.WithName("v2").WithQuantityLimit("crews", "person", "ship", 1)
	got, err := generic.Migrate(g, capped)
	require.NoError(t, err)

	assert.Equal(t, 1, got.EdgeCount())
	assert.True(t, got.HasEdge("c1"), "truncation should keep the first edge in outgoing order")
	assert.False(t, got.HasEdge("c2"))
}

func TestDirect_EndpointRejectionRelabeled(t *testing.T) {
	v1 := ss{}.WithName("v1").WithNodeWhitelist("A", "B")
	v2 := ss{}.WithName("v2").WithNodeWhitelist("A", "B").
		WithEndpointWhitelist(generic.Endpoint[string, string]{Edge: "x", Source: "A", Target: "A"})
	g := testutil.BuildGraph(t, v1,
		[]testutil.NodeSpec{{ID: "a", Type: "A"}, {ID: "b", Type: "B"}},
		[]testutil.EdgeSpec{{ID: "e", Type: "x", Source: "a", Target: "b"}},
	)

	_, err := generic.Migrate(g, v2)
	require.Error(t, err)
	require.True(t, errors.Is(err, typedgraph.ErrInvalidType))

	var ge *typedgraph.Error
	require.ErrorAs(t, err, &ge)
	assert.Equal(t, "v2::x", ge.EdgeType)
	assert.Equal(t, "v2::A", ge.SourceType)
	assert.Equal(t, "v2::B", ge.TargetType)
}
