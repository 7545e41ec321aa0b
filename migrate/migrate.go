package migrate

import (
	"errors"
	"fmt"

	"github.com/build-aau/typed-graph/typedgraph"
)

// Migrate re-types g from its current schema to newSchema via the
// dual-schema intermediate representation. The source graph is consumed.
//
// The handler sees the lifted graph with every entity still old-tagged
// and may rewrite it freely under the dual schema's validation. After it
// returns, remaining old-tagged entities are converted (or dropped) by
// conv while new-tagged ones pass through unchanged.
func Migrate[
	NK, EK, ONT, OET, NNT, NET comparable,
	ON typedgraph.Node[NK, ONT], OE typedgraph.Edge[EK, OET],
	NN typedgraph.Node[NK, NNT], NE typedgraph.Edge[EK, NET],
	OS typedgraph.Schema[ONT, OET], NS typedgraph.Schema[NNT, NET],
](
	g *typedgraph.Graph[NK, EK, ONT, OET, ON, OE, OS],
	newSchema NS,
	conv Converter[NK, EK, ONT, OET, NNT, NET, ON, OE, NN, NE, NS],
	handler Handler[NK, EK, ONT, OET, NNT, NET, ON, OE, NN, NE, OS, NS],
) (*typedgraph.Graph[NK, EK, NNT, NET, NN, NE, NS], error) {
	oldName := g.Schema().Name()
	newName := newSchema.Name()
	dual := DualSchema[NK, EK, ONT, OET, NNT, NET, ON, OE, NN, NE, OS, NS]{
		Old:  g.Schema(),
		New:  newSchema,
		Conv: conv,
	}

	lifted, err := typedgraph.UpdateSchema[NK, EK, ONT, OET, Either[ONT, NNT], Either[OET, NET]](
		g, dual,
		func(_ OS, _ DualSchema[NK, EK, ONT, OET, NNT, NET, ON, OE, NN, NE, OS, NS], w ON) (Weight[NK, ONT, NNT, ON, NN], bool) {
			return OldWeight[NK, ONT, NNT, ON, NN](w), true
		},
		func(_ OS, _ DualSchema[NK, EK, ONT, OET, NNT, NET, ON, OE, NN, NE, OS, NS], w OE) (Weight[EK, OET, NET, OE, NE], bool) {
			return OldWeight[EK, OET, NET, OE, NE](w), true
		},
	)
	if err != nil {
		return nil, relabel[ONT, OET, NNT, NET](err, oldName, newName)
	}

	if err := handler.UpdateData(lifted); err != nil {
		return nil, relabel[ONT, OET, NNT, NET](err, oldName, newName)
	}

	out, err := typedgraph.UpdateSchema[NK, EK, Either[ONT, NNT], Either[OET, NET], NNT, NET](
		lifted, newSchema,
		func(_ DualSchema[NK, EK, ONT, OET, NNT, NET, ON, OE, NN, NE, OS, NS], ns NS, w Weight[NK, ONT, NNT, ON, NN]) (NN, bool) {
			if v, ok := w.NewValue(); ok {
				return v, true
			}
			old, _ := w.OldValue()
			return conv.UpdateNode(ns, old)
		},
		func(_ DualSchema[NK, EK, ONT, OET, NNT, NET, ON, OE, NN, NE, OS, NS], ns NS, w Weight[EK, OET, NET, OE, NE]) (NE, bool) {
			if v, ok := w.NewValue(); ok {
				return v, true
			}
			old, _ := w.OldValue()
			return conv.UpdateEdge(ns, old)
		},
	)
	if err != nil {
		return nil, relabel[ONT, OET, NNT, NET](err, oldName, newName)
	}
	return out, nil
}

// Direct re-types g straight to newSchema without the dual
// representation. It fits migrations where every surviving entity maps
// one to one and no transform phase is needed.
func Direct[
	NK, EK, ONT, OET, NNT, NET comparable,
	ON typedgraph.Node[NK, ONT], OE typedgraph.Edge[EK, OET],
	NN typedgraph.Node[NK, NNT], NE typedgraph.Edge[EK, NET],
	OS typedgraph.Schema[ONT, OET], NS typedgraph.Schema[NNT, NET],
](
	g *typedgraph.Graph[NK, EK, ONT, OET, ON, OE, OS],
	newSchema NS,
	conv Converter[NK, EK, ONT, OET, NNT, NET, ON, OE, NN, NE, NS],
) (*typedgraph.Graph[NK, EK, NNT, NET, NN, NE, NS], error) {
	oldName := g.Schema().Name()
	out, err := typedgraph.UpdateSchema[NK, EK, ONT, OET, NNT, NET](
		g, newSchema,
		func(_ OS, ns NS, w ON) (NN, bool) { return conv.UpdateNode(ns, w) },
		func(_ OS, ns NS, w OE) (NE, bool) { return conv.UpdateEdge(ns, w) },
	)
	if err != nil {
		return nil, relabel[ONT, OET, NNT, NET](err, oldName, newSchema.Name())
	}
	return out, nil
}

// relabel rewrites the runtime type values in a graph error as
// "<schema-name>::<type>" so reports name the schema that rejected the
// entity. Non-graph errors pass through untouched.
func relabel[ONT, OET, NNT, NET comparable](err error, oldName, newName string) error {
	var ge *typedgraph.Error
	if !errors.As(err, &ge) {
		return err
	}
	return ge.MapTypes(func(t any) any {
		switch v := t.(type) {
		case Either[ONT, NNT]:
			if v.IsNew {
				return fmt.Sprintf("%s::%v", newName, v.New)
			}
			return fmt.Sprintf("%s::%v", oldName, v.Old)
		case Either[OET, NET]:
			if v.IsNew {
				return fmt.Sprintf("%s::%v", newName, v.New)
			}
			return fmt.Sprintf("%s::%v", oldName, v.Old)
		default:
			return fmt.Sprintf("%s::%v", newName, t)
		}
	})
}
