package typedgraph_test

import (
	"errors"
	"testing"

	"github.com/build-aau/typed-graph/generic"
	"github.com/build-aau/typed-graph/internal/testutil"
	"github.com/build-aau/typed-graph/typedgraph"
)

// successors advances a branch holding a node weight to every node its
// outgoing edges point at.
func successors(n generic.StringWeight, g *generic.StringGraph) ([]generic.StringWeight, error) {
	refs, err := g.Outgoing(n.ID)
	if err != nil {
		return nil, err
	}
	out := make([]generic.StringWeight, 0, len(refs))
	for _, ref := range refs {
		next, err := g.Node(ref.Target())
		if err != nil {
			return nil, err
		}
		out = append(out, next)
	}
	return out, nil
}

func TestWalkFrom_MissingStart(t *testing.T) {
	g := generic.NewStringGraph(generic.StringSchema{})

	w := typedgraph.WalkFrom(g, "ghost")
	vals, err := w.Many()
	if err != nil {
		t.Fatalf("Many() failed: %v", err)
	}
	if len(vals) != 0 {
		t.Errorf("missing start produced %d branches, want 0", len(vals))
	}
	if _, ok, err := w.One(); ok || err != nil {
		t.Errorf("One() = ok=%v err=%v, want no branch and no error", ok, err)
	}
}

func TestProgress_Branches(t *testing.T) {
	g := testutil.BuildGraph(t, generic.StringSchema{},
		[]testutil.NodeSpec{{ID: "root", Type: "t"}, {ID: "l", Type: "t"}, {ID: "r", Type: "t"}, {ID: "rr", Type: "t"}},
		[]testutil.EdgeSpec{
			{ID: "e1", Type: "x", Source: "root", Target: "l"},
			{ID: "e2", Type: "x", Source: "root", Target: "r"},
			{ID: "e3", Type: "x", Source: "r", Target: "rr"},
		},
	)

	one := typedgraph.Progress(typedgraph.WalkFrom(g, "root"), successors)
	vals, err := one.Many()
	if err != nil {
		t.Fatalf("Many() failed: %v", err)
	}
	if len(vals) != 2 || vals[0].ID != "l" || vals[1].ID != "r" {
		t.Fatalf("first step = %v, want [l r] in outgoing order", vals)
	}

	// The l-branch has no outgoing edges and ends silently; only the
	// r-branch survives the second step.
	two := typedgraph.Progress(one, successors)
	vals, err = two.Many()
	if err != nil {
		t.Fatalf("Many() failed: %v", err)
	}
	if len(vals) != 1 || vals[0].ID != "rr" {
		t.Errorf("second step = %v, want [rr]", vals)
	}
}

func TestProgress_ErrorTerminatesBranch(t *testing.T) {
	g := testutil.Chain(t, generic.StringSchema{}, 2, "t", "x")

	boom := errors.New("step failed")
	w := typedgraph.Progress(typedgraph.WalkFrom(g, "node-0"),
		func(n generic.StringWeight, _ *generic.StringGraph) ([]generic.StringWeight, error) {
			return nil, boom
		})

	if _, err := w.Many(); !errors.Is(err, boom) {
		t.Errorf("Many() = %v, want the step error", err)
	}
	if _, _, err := w.One(); !errors.Is(err, boom) {
		t.Errorf("One() = %v, want the step error", err)
	}
}

func TestProgressWithState_AccumulatesPerBranch(t *testing.T) {
	g := testutil.BuildGraph(t, generic.StringSchema{},
		[]testutil.NodeSpec{{ID: "root", Type: "t"}, {ID: "a", Type: "t"}, {ID: "b", Type: "t"}},
		[]testutil.EdgeSpec{
			{ID: "cheap", Type: "x", Source: "root", Target: "a"},
			{ID: "dear", Type: "x", Source: "root", Target: "b"},
		},
	)

	costs := map[string]int{"cheap": 1, "dear": 10}
	step := func(n generic.StringWeight, g *generic.StringGraph) ([]typedgraph.Step[int, generic.StringWeight], error) {
		refs, err := g.Outgoing(n.ID)
		if err != nil {
			return nil, err
		}
		out := make([]typedgraph.Step[int, generic.StringWeight], 0, len(refs))
		for _, ref := range refs {
			next, err := g.Node(ref.Target())
			if err != nil {
				return nil, err
			}
			out = append(out, typedgraph.Step[int, generic.StringWeight]{Inc: costs[ref.Weight.ID], Val: next})
		}
		return out, nil
	}
	add := func(total, inc int) int { return total + inc }

	w := typedgraph.ProgressWithState(typedgraph.SetState(typedgraph.WalkFrom(g, "root"), 0), step, add)
	targets, err := w.ManyWithState()
	if err != nil {
		t.Fatalf("ManyWithState() failed: %v", err)
	}
	if len(targets) != 2 {
		t.Fatalf("got %d branches, want 2", len(targets))
	}
	if targets[0].Val.ID != "a" || targets[0].State != 1 {
		t.Errorf("branch 0 = (%s, %d), want (a, 1)", targets[0].Val.ID, targets[0].State)
	}
	if targets[1].Val.ID != "b" || targets[1].State != 10 {
		t.Errorf("branch 1 = (%s, %d), want (b, 10)", targets[1].Val.ID, targets[1].State)
	}

	first, ok, err := w.OneWithState()
	if err != nil || !ok {
		t.Fatalf("OneWithState() = ok=%v err=%v", ok, err)
	}
	if first.Val.ID != "a" || first.State != 1 {
		t.Errorf("OneWithState() = (%s, %d), want (a, 1)", first.Val.ID, first.State)
	}
}

func TestNewWalker_FindsOwnStart(t *testing.T) {
	g := testutil.Chain(t, generic.StringSchema{}, 3, "t", "x")

	w := typedgraph.Progress(typedgraph.NewWalker(g),
		func(_ struct{}, g *generic.StringGraph) ([]generic.StringWeight, error) {
			return g.Nodes(), nil
		})
	vals, err := w.Many()
	if err != nil {
		t.Fatalf("Many() failed: %v", err)
	}
	if len(vals) != 3 {
		t.Errorf("got %d branches, want one per node", len(vals))
	}
}
