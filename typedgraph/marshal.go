package typedgraph

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// The interchange record is exactly three fields: the schema's own
// serialized form, the node weights, and the edges with resolved
// endpoint ids. Edges are emitted in outgoing-adjacency order (for each
// node in storage order, its outgoing edges in their authoritative
// order) so that replaying the adds on read reconstructs the order.

type edgeEnvelope[NK comparable, E any] struct {
	Weight E  `json:"weight" yaml:"weight"`
	Source NK `json:"source" yaml:"source"`
	Target NK `json:"target" yaml:"target"`
}

type envelope[NK comparable, N, E any, S any] struct {
	Schema S                     `json:"schema" yaml:"schema"`
	Nodes  []N                   `json:"nodes" yaml:"nodes"`
	Edges  []edgeEnvelope[NK, E] `json:"edges" yaml:"edges"`
}

func (g *Graph[NK, EK, NT, ET, N, E, S]) envelope() (envelope[NK, N, E, S], error) {
	env := envelope[NK, N, E, S]{
		Schema: g.schema,
		Nodes:  g.Nodes(),
		Edges:  make([]edgeEnvelope[NK, E], 0, g.edges.len()),
	}
	for _, ns := range g.nodes.order {
		rec := g.nodes.recs[ns]
		for _, es := range rec.outgoing {
			erec, ok := g.edges.get(es)
			if !ok {
				return env, newInvalidState("outgoing set referenced a removed edge")
			}
			ref, err := g.edgeRef(erec, Outgoing)
			if err != nil {
				return env, err
			}
			env.Edges = append(env.Edges, edgeEnvelope[NK, E]{
				Weight: ref.Weight,
				Source: ref.Source(),
				Target: ref.Target(),
			})
		}
	}
	return env, nil
}

// restore rebuilds the graph from an interchange record: schema first,
// then every node, then every edge in record order. Id collisions and
// schema rejections are load-time errors.
func (g *Graph[NK, EK, NT, ET, N, E, S]) restore(env envelope[NK, N, E, S]) error {
	ng := New[NK, EK, NT, ET, N, E, S](env.Schema)
	for _, n := range env.Nodes {
		if _, err := ng.AddNode(n); err != nil {
			return fmt.Errorf("load node: %w", err)
		}
	}
	for _, e := range env.Edges {
		if _, err := ng.AddEdge(e.Source, e.Target, e.Weight); err != nil {
			return fmt.Errorf("load edge: %w", err)
		}
	}
	*g = *ng
	return nil
}

// MarshalJSON implements json.Marshaler using the interchange format.
func (g *Graph[NK, EK, NT, ET, N, E, S]) MarshalJSON() ([]byte, error) {
	env, err := g.envelope()
	if err != nil {
		return nil, err
	}
	return json.Marshal(env)
}

// UnmarshalJSON implements json.Unmarshaler. The receiver is replaced
// wholesale; a failed load leaves it untouched.
func (g *Graph[NK, EK, NT, ET, N, E, S]) UnmarshalJSON(data []byte) error {
	var env envelope[NK, N, E, S]
	if err := json.Unmarshal(data, &env); err != nil {
		return fmt.Errorf("decode graph: %w", err)
	}
	return g.restore(env)
}

// MarshalYAML implements yaml.Marshaler using the interchange format.
func (g *Graph[NK, EK, NT, ET, N, E, S]) MarshalYAML() (any, error) {
	env, err := g.envelope()
	if err != nil {
		return nil, err
	}
	return env, nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (g *Graph[NK, EK, NT, ET, N, E, S]) UnmarshalYAML(value *yaml.Node) error {
	var env envelope[NK, N, E, S]
	if err := value.Decode(&env); err != nil {
		return fmt.Errorf("decode graph: %w", err)
	}
	return g.restore(env)
}
