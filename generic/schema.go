package generic

import (
	"github.com/build-aau/typed-graph/typedgraph"
)

// Endpoint identifies an edge type between a source and a target node
// type.
type Endpoint[NT, ET comparable] struct {
	Edge   ET `json:"edge" yaml:"edge"`
	Source NT `json:"source" yaml:"source"`
	Target NT `json:"target" yaml:"target"`
}

// QuantityLimit caps the number of edges of one endpoint shape that may
// leave a single source node.
type QuantityLimit[NT, ET comparable] struct {
	Endpoint[NT, ET] `yaml:",inline"`

	Max int `json:"max" yaml:"max"`
}

// Schema is a policy-driven schema over plain type values. The zero
// value allows everything. Lists are interpreted as: nil means no
// restriction, an empty whitelist rejects all, blacklists always reject
// what they contain.
type Schema[NT, ET comparable] struct {
	SchemaName        string                 `json:"name,omitempty" yaml:"name,omitempty"`
	NodeWhitelist     []NT                   `json:"node_whitelist,omitempty" yaml:"node_whitelist,omitempty"`
	NodeBlacklist     []NT                   `json:"node_blacklist,omitempty" yaml:"node_blacklist,omitempty"`
	EdgeWhitelist     []ET                   `json:"edge_whitelist,omitempty" yaml:"edge_whitelist,omitempty"`
	EdgeBlacklist     []ET                   `json:"edge_blacklist,omitempty" yaml:"edge_blacklist,omitempty"`
	EndpointWhitelist []Endpoint[NT, ET]     `json:"endpoint_whitelist,omitempty" yaml:"endpoint_whitelist,omitempty"`
	EndpointBlacklist []Endpoint[NT, ET]     `json:"endpoint_blacklist,omitempty" yaml:"endpoint_blacklist,omitempty"`
	QuantityLimits    []QuantityLimit[NT, ET] `json:"quantity_limits,omitempty" yaml:"quantity_limits,omitempty"`
}

// WithName sets the schema's diagnostic name.
func (s Schema[NT, ET]) WithName(name string) Schema[NT, ET] {
	s.SchemaName = name
	return s
}

// WithNodeWhitelist restricts nodes to the given types.
func (s Schema[NT, ET]) WithNodeWhitelist(types ...NT) Schema[NT, ET] {
	s.NodeWhitelist = types
	return s
}

// WithNodeBlacklist rejects nodes of the given types.
func (s Schema[NT, ET]) WithNodeBlacklist(types ...NT) Schema[NT, ET] {
	s.NodeBlacklist = types
	return s
}

// WithEdgeWhitelist restricts edges to the given types.
func (s Schema[NT, ET]) WithEdgeWhitelist(types ...ET) Schema[NT, ET] {
	s.EdgeWhitelist = types
	return s
}

// WithEdgeBlacklist rejects edges of the given types.
func (s Schema[NT, ET]) WithEdgeBlacklist(types ...ET) Schema[NT, ET] {
	s.EdgeBlacklist = types
	return s
}

// WithEndpointWhitelist restricts edges to the given endpoint shapes.
func (s Schema[NT, ET]) WithEndpointWhitelist(endpoints ...Endpoint[NT, ET]) Schema[NT, ET] {
	s.EndpointWhitelist = endpoints
	return s
}

// WithEndpointBlacklist rejects edges of the given endpoint shapes.
func (s Schema[NT, ET]) WithEndpointBlacklist(endpoints ...Endpoint[NT, ET]) Schema[NT, ET] {
	s.EndpointBlacklist = endpoints
	return s
}

// WithQuantityLimit caps edges of one endpoint shape per source node.
func (s Schema[NT, ET]) WithQuantityLimit(edge ET, source, target NT, max int) Schema[NT, ET] {
	s.QuantityLimits = append(s.QuantityLimits, QuantityLimit[NT, ET]{
		Endpoint: Endpoint[NT, ET]{Edge: edge, Source: source, Target: target},
		Max:      max,
	})
	return s
}

// Name implements typedgraph.Schema.
func (s Schema[NT, ET]) Name() string {
	if s.SchemaName != "" {
		return s.SchemaName
	}
	return "GenericSchema"
}

// AllowNode implements typedgraph.Schema.
func (s Schema[NT, ET]) AllowNode(nodeType NT) error {
	if s.NodeWhitelist != nil && !contains(s.NodeWhitelist, nodeType) {
		return typedgraph.ErrInvalidType
	}
	if contains(s.NodeBlacklist, nodeType) {
		return typedgraph.ErrInvalidType
	}
	return nil
}

// AllowEdgeType checks the type-level edge lists only, without endpoint
// context. The migration converter uses it to decide whether an edge
// type has an equivalent under this schema.
func (s Schema[NT, ET]) AllowEdgeType(edgeType ET) error {
	if s.EdgeWhitelist != nil && !contains(s.EdgeWhitelist, edgeType) {
		return typedgraph.ErrInvalidType
	}
	if contains(s.EdgeBlacklist, edgeType) {
		return typedgraph.ErrInvalidType
	}
	return nil
}

// AllowEdge implements typedgraph.Schema.
func (s Schema[NT, ET]) AllowEdge(quantity int, edgeType ET, source, target NT) error {
	if err := s.AllowEdgeType(edgeType); err != nil {
		return err
	}

	endpoint := Endpoint[NT, ET]{Edge: edgeType, Source: source, Target: target}
	if s.EndpointWhitelist != nil && !contains(s.EndpointWhitelist, endpoint) {
		return typedgraph.ErrInvalidType
	}
	if contains(s.EndpointBlacklist, endpoint) {
		return typedgraph.ErrInvalidType
	}

	for _, limit := range s.QuantityLimits {
		if limit.Endpoint == endpoint && quantity > limit.Max {
			return typedgraph.ErrTooMany
		}
	}
	return nil
}

func contains[T comparable](list []T, v T) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
