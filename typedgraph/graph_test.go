package typedgraph_test

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/build-aau/typed-graph/generic"
	"github.com/build-aau/typed-graph/internal/testutil"
	"github.com/build-aau/typed-graph/typedgraph"
)

func openSchema() generic.StringSchema {
	return generic.StringSchema{}.WithName("open")
}

func errCode(t *testing.T, err error) typedgraph.ErrorCode {
	t.Helper()
	var ge *typedgraph.Error
	if !errors.As(err, &ge) {
		t.Fatalf("expected *typedgraph.Error, got %T: %v", err, err)
	}
	return ge.Code
}

func TestAddNode_Insert(t *testing.T) {
	g := generic.NewStringGraph(openSchema())

	id, err := g.AddNode(generic.W("a", "person"))
	if err != nil {
		t.Fatalf("AddNode() failed: %v", err)
	}
	if id != "a" {
		t.Errorf("AddNode() id = %q, want %q", id, "a")
	}
	if !g.HasNode("a") || g.NodeCount() != 1 {
		t.Errorf("node not stored: has=%v count=%d", g.HasNode("a"), g.NodeCount())
	}
}

func TestAddNode_SchemaRejection(t *testing.T) {
	schema := generic.StringSchema{}.WithNodeWhitelist("person")
	g := generic.NewStringGraph(schema)

	_, err := g.AddNode(generic.W("r", "robot"))
	if err == nil {
		t.Fatal("AddNode() accepted a type outside the whitelist")
	}
	if code := errCode(t, err); code != typedgraph.ErrCodeInvalidNodeType {
		t.Errorf("code = %s, want %s", code, typedgraph.ErrCodeInvalidNodeType)
	}
	if !errors.Is(err, typedgraph.ErrInvalidType) {
		t.Error("rejection does not unwrap to ErrInvalidType")
	}
	if g.NodeCount() != 0 {
		t.Error("rejected node was stored")
	}
}

func TestAddNode_ReplaceSameType(t *testing.T) {
	g := testutil.Chain(t, openSchema(), 2, "person", "knows")

	if _, err := g.AddNode(generic.W("node-0", "person")); err != nil {
		t.Fatalf("replace failed: %v", err)
	}
	if g.NodeCount() != 2 || g.EdgeCount() != 1 {
		t.Errorf("replace changed counts: nodes=%d edges=%d", g.NodeCount(), g.EdgeCount())
	}
}

func TestAddNode_TypeChangeRevalidatesEdges(t *testing.T) {
	schema := generic.StringSchema{}.
		WithNodeWhitelist("person", "robot").
		WithEndpointWhitelist(generic.Endpoint[string, string]{Edge: "knows", Source: "person", Target: "person"})
	g := testutil.BuildGraph(t, schema,
		[]testutil.NodeSpec{{ID: "a", Type: "person"}, {ID: "b", Type: "person"}},
		[]testutil.EdgeSpec{{ID: "e", Type: "knows", Source: "a", Target: "b"}},
	)

	// robot is a valid node type, but knows(robot -> person) is not a
	// valid endpoint, so the re-type must be refused atomically.
	_, err := g.AddNode(generic.W("a", "robot"))
	if err == nil {
		t.Fatal("type change accepted despite invalid incident edge")
	}
	if code := errCode(t, err); code != typedgraph.ErrCodeInvalidEdgeType {
		t.Errorf("code = %s, want %s", code, typedgraph.ErrCodeInvalidEdgeType)
	}

	n, err := g.Node("a")
	if err != nil {
		t.Fatalf("Node() failed: %v", err)
	}
	if n.Type != "person" {
		t.Errorf("failed type change mutated the node: type = %q", n.Type)
	}
}

func TestAddNode_TypeChangeWithSelfLoop(t *testing.T) {
	schema := generic.StringSchema{}.
		WithNodeWhitelist("person", "robot").
		WithEndpointWhitelist(
			generic.Endpoint[string, string]{Edge: "knows", Source: "person", Target: "person"},
			generic.Endpoint[string, string]{Edge: "knows", Source: "robot", Target: "robot"},
		)
	g := testutil.BuildGraph(t, schema,
		[]testutil.NodeSpec{{ID: "a", Type: "person"}},
		[]testutil.EdgeSpec{{ID: "loop", Type: "knows", Source: "a", Target: "a"}},
	)

	// The self-loop is valid with both endpoints substituted at once.
	if _, err := g.AddNode(generic.W("a", "robot")); err != nil {
		t.Fatalf("self-loop type change failed: %v", err)
	}
	n, _ := g.NodeOK("a")
	if n.Type != "robot" {
		t.Errorf("type = %q, want robot", n.Type)
	}
}

func TestAddEdge_MissingEndpoint(t *testing.T) {
	g := generic.NewStringGraph(openSchema())
	if _, err := g.AddNode(generic.W("a", "person")); err != nil {
		t.Fatal(err)
	}

	_, err := g.AddEdge("a", "ghost", generic.W("e", "knows"))
	if !typedgraph.IsMissing(err) {
		t.Errorf("expected missing-node error, got %v", err)
	}
	if g.EdgeCount() != 0 {
		t.Error("edge stored despite missing endpoint")
	}
}

func TestAddEdge_ReplaceRepointsSource(t *testing.T) {
	g := testutil.BuildGraph(t, openSchema(),
		[]testutil.NodeSpec{{ID: "a", Type: "t"}, {ID: "b", Type: "t"}, {ID: "c", Type: "t"}},
		[]testutil.EdgeSpec{
			{ID: "e1", Type: "x", Source: "a", Target: "b"},
			{ID: "e2", Type: "x", Source: "a", Target: "c"},
		},
	)

	// Re-pointing e1 to source b removes it from a's order and appends
	// it to b's.
	if _, err := g.AddEdge("b", "c", generic.W("e1", "x")); err != nil {
		t.Fatalf("replace failed: %v", err)
	}

	assertOutgoingIDs(t, g, "a", []string{"e2"})
	assertOutgoingIDs(t, g, "b", []string{"e1"})

	ref, err := g.EdgeFull("e1")
	if err != nil {
		t.Fatal(err)
	}
	if ref.Source() != "b" || ref.Target() != "c" {
		t.Errorf("endpoints = (%s,%s), want (b,c)", ref.Source(), ref.Target())
	}
}

func TestRemoveNode_Cascade(t *testing.T) {
	g := testutil.BuildGraph(t, openSchema(),
		[]testutil.NodeSpec{{ID: "a", Type: "t"}, {ID: "b", Type: "t"}, {ID: "c", Type: "t"}},
		[]testutil.EdgeSpec{
			{ID: "ab", Type: "x", Source: "a", Target: "b"},
			{ID: "ba", Type: "x", Source: "b", Target: "a"},
			{ID: "bc", Type: "x", Source: "b", Target: "c"},
		},
	)

	w, err := g.RemoveNode("a")
	if err != nil {
		t.Fatalf("RemoveNode() failed: %v", err)
	}
	if w.ID != "a" {
		t.Errorf("removed weight id = %q, want a", w.ID)
	}

	if g.HasNode("a") || g.HasEdge("ab") || g.HasEdge("ba") {
		t.Error("incident entities survived the cascade")
	}
	if !g.HasEdge("bc") {
		t.Error("unrelated edge removed")
	}
	assertOutgoingIDs(t, g, "b", []string{"bc"})
}

func TestRemoveNode_SelfLoop(t *testing.T) {
	g := testutil.BuildGraph(t, openSchema(),
		[]testutil.NodeSpec{{ID: "a", Type: "t"}},
		[]testutil.EdgeSpec{{ID: "loop", Type: "x", Source: "a", Target: "a"}},
	)

	if _, err := g.RemoveNode("a"); err != nil {
		t.Fatalf("RemoveNode() with self-loop failed: %v", err)
	}
	if g.NodeCount() != 0 || g.EdgeCount() != 0 {
		t.Errorf("leftovers after removal: nodes=%d edges=%d", g.NodeCount(), g.EdgeCount())
	}
}

func TestRemoveEdge(t *testing.T) {
	g := testutil.Chain(t, openSchema(), 3, "t", "x")

	w, err := g.RemoveEdge("edge-0")
	if err != nil {
		t.Fatalf("RemoveEdge() failed: %v", err)
	}
	if w.ID != "edge-0" {
		t.Errorf("removed weight id = %q, want edge-0", w.ID)
	}
	if g.EdgeCount() != 1 || g.NodeCount() != 3 {
		t.Errorf("counts after removal: nodes=%d edges=%d", g.NodeCount(), g.EdgeCount())
	}
	assertOutgoingIDs(t, g, "node-0", nil)

	if _, err := g.RemoveEdge("edge-0"); !typedgraph.IsMissing(err) {
		t.Errorf("double remove: expected missing-edge error, got %v", err)
	}
}

func TestLookups(t *testing.T) {
	g := testutil.Chain(t, openSchema(), 2, "person", "knows")

	if _, ok := g.NodeOK("node-0"); !ok {
		t.Error("NodeOK() missed a live node")
	}
	if _, ok := g.NodeOK("ghost"); ok {
		t.Error("NodeOK() found a ghost")
	}
	if _, ok := g.EdgeOK("edge-0"); !ok {
		t.Error("EdgeOK() missed a live edge")
	}

	if _, err := g.Node("ghost"); !typedgraph.IsMissing(err) {
		t.Errorf("Node(ghost) = %v, want missing-node error", err)
	}
	if _, err := g.Edge("ghost"); !typedgraph.IsMissing(err) {
		t.Errorf("Edge(ghost) = %v, want missing-edge error", err)
	}
}

func TestIncomingAndOutgoing_SelfLoopTwice(t *testing.T) {
	g := testutil.BuildGraph(t, openSchema(),
		[]testutil.NodeSpec{{ID: "a", Type: "t"}},
		[]testutil.EdgeSpec{{ID: "loop", Type: "x", Source: "a", Target: "a"}},
	)

	refs, err := g.IncomingAndOutgoing("a")
	if err != nil {
		t.Fatal(err)
	}
	if len(refs) != 2 {
		t.Fatalf("len = %d, want 2 (self-loop reported in both directions)", len(refs))
	}
	if refs[0].Direction() != typedgraph.Incoming || refs[1].Direction() != typedgraph.Outgoing {
		t.Errorf("directions = %v, %v; want incoming then outgoing", refs[0].Direction(), refs[1].Direction())
	}
}

func TestOutgoingFilter(t *testing.T) {
	g := testutil.BuildGraph(t, openSchema(),
		[]testutil.NodeSpec{{ID: "a", Type: "t"}, {ID: "b", Type: "t"}},
		[]testutil.EdgeSpec{
			{ID: "e1", Type: "x", Source: "a", Target: "b"},
			{ID: "e2", Type: "y", Source: "a", Target: "b"},
			{ID: "e3", Type: "x", Source: "a", Target: "b"},
		},
	)

	refs, err := g.OutgoingFilter("a", func(w generic.StringWeight) bool { return w.Type == "x" })
	if err != nil {
		t.Fatal(err)
	}
	if len(refs) != 2 || refs[0].Weight.ID != "e1" || refs[1].Weight.ID != "e3" {
		t.Errorf("filtered = %v, want [e1 e3] in order", edgeIDs(refs))
	}
}

func TestNodeAs_DowncastFailed(t *testing.T) {
	g := testutil.Chain(t, openSchema(), 1, "person", "knows")

	if _, err := typedgraph.NodeAs[generic.StringWeight](g, "node-0"); err != nil {
		t.Fatalf("NodeAs to the concrete weight type failed: %v", err)
	}

	_, err := typedgraph.NodeAs[int](g, "node-0")
	if err == nil {
		t.Fatal("NodeAs[int] succeeded on a string weight")
	}
	if code := errCode(t, err); code != typedgraph.ErrCodeDowncastFailed {
		t.Errorf("code = %s, want %s", code, typedgraph.ErrCodeDowncastFailed)
	}
}

func TestGraph_NonStringKeys(t *testing.T) {
	g := typedgraph.New[
		uuid.UUID, uuid.UUID, string, string,
		generic.Weight[uuid.UUID, string], generic.Weight[uuid.UUID, string], generic.StringSchema,
	](generic.StringSchema{})

	a, b := uuid.New(), uuid.New()
	if _, err := g.AddNode(generic.W(a, "person")); err != nil {
		t.Fatal(err)
	}
	if _, err := g.AddNode(generic.W(b, "person")); err != nil {
		t.Fatal(err)
	}

	e := uuid.New()
	if _, err := g.AddEdge(a, b, generic.W(e, "knows")); err != nil {
		t.Fatalf("AddEdge() with uuid keys failed: %v", err)
	}

	ref, err := g.EdgeFull(e)
	if err != nil {
		t.Fatal(err)
	}
	if ref.Source() != a || ref.Target() != b {
		t.Errorf("endpoints = (%s,%s), want (%s,%s)", ref.Source(), ref.Target(), a, b)
	}
	if _, err := g.RemoveNode(a); err != nil {
		t.Fatal(err)
	}
	if g.HasEdge(e) {
		t.Error("edge survived endpoint removal")
	}
}

func assertOutgoingIDs(t *testing.T, g *generic.StringGraph, node string, want []string) {
	t.Helper()
	refs, err := g.Outgoing(node)
	if err != nil {
		t.Fatalf("Outgoing(%s) failed: %v", node, err)
	}
	got := edgeIDs(refs)
	if len(got) != len(want) {
		t.Fatalf("Outgoing(%s) = %v, want %v", node, got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Outgoing(%s) = %v, want %v", node, got, want)
		}
	}
}

func edgeIDs(refs []typedgraph.EdgeRef[string, generic.StringWeight]) []string {
	out := make([]string, 0, len(refs))
	for _, ref := range refs {
		out = append(out, ref.Weight.ID)
	}
	return out
}
