package typedgraph

import (
	"errors"
	"fmt"
)

// Schema rejection reasons. Schemas return these (wrapped or bare) from
// AllowNode and AllowEdge; the graph wraps them into an *Error.
var (
	// ErrInvalidType indicates a node or edge type the schema does not list.
	ErrInvalidType = errors.New("type not allowed by schema")

	// ErrTooMany indicates the per-endpoint edge quantity cap is reached.
	ErrTooMany = errors.New("edge quantity limit reached")
)

// ErrorCode categorizes graph errors.
type ErrorCode string

const (
	// ErrCodeMissingNode indicates a logical node id that is not present.
	ErrCodeMissingNode ErrorCode = "MISSING_NODE"

	// ErrCodeMissingEdge indicates a logical edge id that is not present.
	ErrCodeMissingEdge ErrorCode = "MISSING_EDGE"

	// ErrCodeMissingNodeSlot indicates a dangling internal node slot.
	// Signals a store defect, not caller error.
	ErrCodeMissingNodeSlot ErrorCode = "MISSING_NODE_SLOT"

	// ErrCodeMissingEdgeSlot indicates a dangling internal edge slot.
	// Signals a store defect, not caller error.
	ErrCodeMissingEdgeSlot ErrorCode = "MISSING_EDGE_SLOT"

	// ErrCodeInvalidNodeType indicates the schema rejected a node type.
	ErrCodeInvalidNodeType ErrorCode = "INVALID_NODE_TYPE"

	// ErrCodeInvalidEdgeType indicates the schema rejected an edge, either
	// by type or by quantity. Unwrap distinguishes the two.
	ErrCodeInvalidEdgeType ErrorCode = "INVALID_EDGE_TYPE"

	// ErrCodeInvalidState indicates internal adjacency bookkeeping no
	// longer matches the records. Always a defect.
	ErrCodeInvalidState ErrorCode = "INVALID_STATE"

	// ErrCodeDowncastFailed indicates a weight could not be narrowed to
	// the requested concrete type.
	ErrCodeDowncastFailed ErrorCode = "DOWNCAST_FAILED"

	// ErrCodeInconsistentID indicates a re-typing map changed an entity id.
	ErrCodeInconsistentID ErrorCode = "INCONSISTENT_ID"

	// ErrCodeInvalidEdgeMove indicates a reorder between edges that do not
	// share a source node.
	ErrCodeInvalidEdgeMove ErrorCode = "INVALID_EDGE_MOVE"
)

// Error is the structured error returned by all graph operations.
//
// Only the fields relevant to Code are set. Type fields hold the runtime
// type values involved so callers (and the migration engine) can relabel
// or inspect them; they are formatted with %v in messages.
type Error struct {
	// Code identifies the error category.
	Code ErrorCode

	// ID is the offending logical id (missing entity, id change, move).
	ID any

	// NewID is the id an entity was illegally renamed to.
	NewID any

	// OtherID is the second edge id of a reorder request.
	OtherID any

	// Slot is the dangling internal slot for MISSING_*_SLOT.
	Slot uint64

	// NodeType, EdgeType, SourceType, TargetType carry the runtime type
	// values a schema rejected.
	NodeType   any
	EdgeType   any
	SourceType any
	TargetType any

	// Want and Got describe a failed narrowing.
	Want string
	Got  string

	// Detail is free-form context for INVALID_STATE and INCONSISTENT_ID.
	Detail string

	// Reason is the schema's rejection reason (ErrInvalidType, ErrTooMany
	// or a schema-specific error wrapping one of them).
	Reason error
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch e.Code {
	case ErrCodeMissingNode:
		return fmt.Sprintf("%s: no node with id %v", e.Code, e.ID)
	case ErrCodeMissingEdge:
		return fmt.Sprintf("%s: no edge with id %v", e.Code, e.ID)
	case ErrCodeMissingNodeSlot:
		return fmt.Sprintf("%s: no node at internal slot %d", e.Code, e.Slot)
	case ErrCodeMissingEdgeSlot:
		return fmt.Sprintf("%s: no edge at internal slot %d", e.Code, e.Slot)
	case ErrCodeInvalidNodeType:
		return fmt.Sprintf("%s: node type %v rejected: %v", e.Code, e.NodeType, e.Reason)
	case ErrCodeInvalidEdgeType:
		return fmt.Sprintf("%s: edge type %v from %v to %v rejected: %v",
			e.Code, e.EdgeType, e.SourceType, e.TargetType, e.Reason)
	case ErrCodeDowncastFailed:
		return fmt.Sprintf("%s: could not narrow from reported type %s to requested type %s", e.Code, e.Got, e.Want)
	case ErrCodeInconsistentID:
		return fmt.Sprintf("%s: %s id changed from %v to %v", e.Code, e.Detail, e.ID, e.NewID)
	case ErrCodeInvalidEdgeMove:
		return fmt.Sprintf("%s: cannot move %v relative to %v: edges do not share a source node", e.Code, e.ID, e.OtherID)
	case ErrCodeInvalidState:
		return fmt.Sprintf("%s: %s", e.Code, e.Detail)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Detail)
}

// Unwrap exposes the schema's rejection reason for errors.Is checks.
func (e *Error) Unwrap() error {
	return e.Reason
}

// MapTypes returns a copy of e with every non-nil runtime type field
// replaced by f(field). The migration engine uses this to relabel dual
// schema types as "<schema-name>::<type>" in reported errors.
func (e *Error) MapTypes(f func(any) any) *Error {
	mapped := *e
	if mapped.NodeType != nil {
		mapped.NodeType = f(mapped.NodeType)
	}
	if mapped.EdgeType != nil {
		mapped.EdgeType = f(mapped.EdgeType)
	}
	if mapped.SourceType != nil {
		mapped.SourceType = f(mapped.SourceType)
	}
	if mapped.TargetType != nil {
		mapped.TargetType = f(mapped.TargetType)
	}
	return &mapped
}

// IsMissing reports whether err is a missing-entity error for a logical
// id (as opposed to an internal slot, which signals a defect).
func IsMissing(err error) bool {
	var ge *Error
	if errors.As(err, &ge) {
		return ge.Code == ErrCodeMissingNode || ge.Code == ErrCodeMissingEdge
	}
	return false
}

// IsSchemaRejection reports whether err is a node or edge rejection by
// the active schema.
func IsSchemaRejection(err error) bool {
	var ge *Error
	if errors.As(err, &ge) {
		return ge.Code == ErrCodeInvalidNodeType || ge.Code == ErrCodeInvalidEdgeType
	}
	return false
}

func newMissingNode(id any) *Error {
	return &Error{Code: ErrCodeMissingNode, ID: id}
}

func newMissingEdge(id any) *Error {
	return &Error{Code: ErrCodeMissingEdge, ID: id}
}

func newMissingNodeSlot(slot NodeSlot) *Error {
	return &Error{Code: ErrCodeMissingNodeSlot, Slot: uint64(slot)}
}

func newMissingEdgeSlot(slot EdgeSlot) *Error {
	return &Error{Code: ErrCodeMissingEdgeSlot, Slot: uint64(slot)}
}

func newInvalidNodeType(nodeType any, reason error) *Error {
	return &Error{Code: ErrCodeInvalidNodeType, NodeType: nodeType, Reason: reason}
}

func newInvalidEdgeType(edgeType, sourceType, targetType any, reason error) *Error {
	return &Error{
		Code:       ErrCodeInvalidEdgeType,
		EdgeType:   edgeType,
		SourceType: sourceType,
		TargetType: targetType,
		Reason:     reason,
	}
}

func newInvalidState(detail string) *Error {
	return &Error{Code: ErrCodeInvalidState, Detail: detail}
}

func newInconsistentID(kind string, oldID, newID any) *Error {
	return &Error{Code: ErrCodeInconsistentID, Detail: kind, ID: oldID, NewID: newID}
}

func newInvalidEdgeMove(moved, relativeTo any) *Error {
	return &Error{Code: ErrCodeInvalidEdgeMove, ID: moved, OtherID: relativeTo}
}

func newDowncastFailed(got, want string) *Error {
	return &Error{Code: ErrCodeDowncastFailed, Got: got, Want: want}
}
