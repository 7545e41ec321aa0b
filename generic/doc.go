// Package generic provides a ready-made weight and schema for graphs
// whose nodes and edges are fully described by an id and a type value.
//
// The schema is policy-driven: node and edge types can be whitelisted or
// blacklisted, endpoint combinations (edge type between a source and a
// target node type) can be whitelisted or blacklisted, and per-endpoint
// edge quantities can be capped. A nil list means "no restriction"; an
// empty whitelist rejects everything of its kind.
package generic
