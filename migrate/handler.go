package migrate

import "github.com/build-aau/typed-graph/typedgraph"

// Handler runs the transform phase of a migration on the dual-schema
// graph. Implementations may add, remove, or rewrite entities; anything
// still carrying an old tag afterwards goes through the Converter
// during the lower phase.
type Handler[
	NK, EK, ONT, OET, NNT, NET comparable,
	ON typedgraph.Node[NK, ONT], OE typedgraph.Edge[EK, OET],
	NN typedgraph.Node[NK, NNT], NE typedgraph.Edge[EK, NET],
	OS typedgraph.Schema[ONT, OET], NS typedgraph.Schema[NNT, NET],
] interface {
	UpdateData(g *DualGraph[NK, EK, ONT, OET, NNT, NET, ON, OE, NN, NE, OS, NS]) error
}

// DefaultHandler is a no-op transform for migrations where the
// Converter alone is enough.
type DefaultHandler[
	NK, EK, ONT, OET, NNT, NET comparable,
	ON typedgraph.Node[NK, ONT], OE typedgraph.Edge[EK, OET],
	NN typedgraph.Node[NK, NNT], NE typedgraph.Edge[EK, NET],
	OS typedgraph.Schema[ONT, OET], NS typedgraph.Schema[NNT, NET],
] struct{}

func (DefaultHandler[NK, EK, ONT, OET, NNT, NET, ON, OE, NN, NE, OS, NS]) UpdateData(*DualGraph[NK, EK, ONT, OET, NNT, NET, ON, OE, NN, NE, OS, NS]) error {
	return nil
}
