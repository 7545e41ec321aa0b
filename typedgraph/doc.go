// Package typedgraph implements a mutable directed multigraph where every
// node and edge carries a runtime-checkable type, and every mutation is
// validated against a pluggable schema before it is committed.
//
// The graph separates caller-visible logical ids from internal storage
// slots:
//   - Logical ids (NK for nodes, EK for edges) are chosen by the caller,
//     must be unique among live entities of their kind, and may be reused
//     immediately after removal.
//   - Slots are generated internally, are stable for the lifetime of a
//     record, and are never handed out to callers.
//
// # Critical Invariants
//
// Maintained before and after every public operation:
//   - Every slot in a node's adjacency sets refers to a live edge whose
//     source or target is that node.
//   - Every edge's source and target refer to live nodes.
//   - The id-to-slot lookup is a bijection onto live slots of its kind.
//   - A node's outgoing edge order is authoritative and externally
//     controllable; incoming order carries no guarantee.
//   - A weight's embedded id always equals the id it is indexed under.
//
// Failed operations leave the graph exactly as it was; there is no
// partial mutation.
//
// # Concurrency
//
// A Graph has no internal synchronization. It assumes a single logical
// owner issuing one call at a time. This is a documented precondition,
// not a runtime-checked one.
package typedgraph
