package migrate

import "github.com/build-aau/typed-graph/typedgraph"

// Converter is the schema-supplied conversion contract between two
// schema versions. Each method returns the converted value and true, or
// false when the input has no equivalent in the new schema (dropping it
// during the lower phase).
type Converter[
	NK, EK, ONT, OET, NNT, NET comparable,
	ON typedgraph.Node[NK, ONT], OE typedgraph.Edge[EK, OET],
	NN typedgraph.Node[NK, NNT], NE typedgraph.Edge[EK, NET],
	NS typedgraph.Schema[NNT, NET],
] interface {
	UpdateNode(newSchema NS, node ON) (NN, bool)
	UpdateEdge(newSchema NS, edge OE) (NE, bool)
	UpdateNodeType(newSchema NS, nodeType ONT) (NNT, bool)
	UpdateEdgeType(newSchema NS, edgeType OET) (NET, bool)
}

// DualSchema spans an old and a new schema during migration. It
// validates dual-tagged entities by routing on their tags.
type DualSchema[
	NK, EK, ONT, OET, NNT, NET comparable,
	ON typedgraph.Node[NK, ONT], OE typedgraph.Edge[EK, OET],
	NN typedgraph.Node[NK, NNT], NE typedgraph.Edge[EK, NET],
	OS typedgraph.Schema[ONT, OET], NS typedgraph.Schema[NNT, NET],
] struct {
	Old  OS
	New  NS
	Conv Converter[NK, EK, ONT, OET, NNT, NET, ON, OE, NN, NE, NS]
}

// Name implements typedgraph.Schema.
func (d DualSchema[NK, EK, ONT, OET, NNT, NET, ON, OE, NN, NE, OS, NS]) Name() string {
	return d.Old.Name() + " or " + d.New.Name()
}

// AllowNode implements typedgraph.Schema: old-tagged nodes validate
// against the old schema, new-tagged against the new.
func (d DualSchema[NK, EK, ONT, OET, NNT, NET, ON, OE, NN, NE, OS, NS]) AllowNode(nodeType Either[ONT, NNT]) error {
	if nodeType.IsNew {
		return d.New.AllowNode(nodeType.New)
	}
	return d.Old.AllowNode(nodeType.Old)
}

// AllowEdge implements typedgraph.Schema. All-old and all-new edges
// validate against their own schema. A mixed edge is only allowed when
// every old-tagged side converts to a new-schema type; validation then
// proceeds against the new schema.
func (d DualSchema[NK, EK, ONT, OET, NNT, NET, ON, OE, NN, NE, OS, NS]) AllowEdge(quantity int, edgeType Either[OET, NET], source, target Either[ONT, NNT]) error {
	switch {
	case !edgeType.IsNew && !source.IsNew && !target.IsNew:
		return d.Old.AllowEdge(quantity, edgeType.Old, source.Old, target.Old)
	case edgeType.IsNew && source.IsNew && target.IsNew:
		return d.New.AllowEdge(quantity, edgeType.New, source.New, target.New)
	}

	et, ok := d.edgeTypeInNew(edgeType)
	if !ok {
		return typedgraph.ErrInvalidType
	}
	st, ok := d.nodeTypeInNew(source)
	if !ok {
		return typedgraph.ErrInvalidType
	}
	tt, ok := d.nodeTypeInNew(target)
	if !ok {
		return typedgraph.ErrInvalidType
	}
	return d.New.AllowEdge(quantity, et, st, tt)
}

func (d DualSchema[NK, EK, ONT, OET, NNT, NET, ON, OE, NN, NE, OS, NS]) nodeTypeInNew(t Either[ONT, NNT]) (NNT, bool) {
	if t.IsNew {
		return t.New, true
	}
	return d.Conv.UpdateNodeType(d.New, t.Old)
}

func (d DualSchema[NK, EK, ONT, OET, NNT, NET, ON, OE, NN, NE, OS, NS]) edgeTypeInNew(t Either[OET, NET]) (NET, bool) {
	if t.IsNew {
		return t.New, true
	}
	return d.Conv.UpdateEdgeType(d.New, t.Old)
}

// DualGraph is a graph in the intermediate dual-schema representation,
// the value handed to Handler implementations during the transform
// phase.
type DualGraph[
	NK, EK, ONT, OET, NNT, NET comparable,
	ON typedgraph.Node[NK, ONT], OE typedgraph.Edge[EK, OET],
	NN typedgraph.Node[NK, NNT], NE typedgraph.Edge[EK, NET],
	OS typedgraph.Schema[ONT, OET], NS typedgraph.Schema[NNT, NET],
] = typedgraph.Graph[
	NK, EK, Either[ONT, NNT], Either[OET, NET],
	Weight[NK, ONT, NNT, ON, NN], Weight[EK, OET, NET, OE, NE],
	DualSchema[NK, EK, ONT, OET, NNT, NET, ON, OE, NN, NE, OS, NS],
]
