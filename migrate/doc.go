// Package migrate re-types a whole graph from one schema to another.
//
// Migration runs in three phases, all pure with respect to the source
// graph (which is consumed, never mutated in place):
//
//  1. Lift: every node and edge is wrapped in an old-tagged union and the
//     graph is re-typed under a dual schema spanning both versions.
//     Nothing can be rejected in this phase.
//  2. Transform: an injected Handler gets mutable access to the dual
//     graph while old- and new-tagged entities coexist. The dual schema
//     routes validation by tag: all-old endpoints check against the old
//     schema, all-new against the new one, and mixed endpoints are only
//     allowed when every old side converts to a new-schema type.
//  3. Lower: the graph is re-typed into the pure new schema. New-tagged
//     entities pass through; old-tagged ones go through the Converter,
//     which may declare them to have no equivalent (dropping them).
//     Quantity-exceeded edges are trimmed from the end of each node's
//     outgoing order; every other rejection fails the migration.
//
// Failures are reported with types relabeled as "<schema-name>::<type>"
// so the caller can tell which schema rejected what.
//
// Direct covers the simpler case where the two schemas convert without
// an intermediate representation.
package migrate
