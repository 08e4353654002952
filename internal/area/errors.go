package area

import "errors"

var (
	// ErrUnknownNode is returned when an operation references a node that is
	// not present in the graph.
	ErrUnknownNode = errors.New("unknown node")

	// ErrInvalidNodeID is returned for an empty node identity.
	ErrInvalidNodeID = errors.New("invalid node id")

	// ErrSelfLoop is returned when both edge endpoints are the same node.
	ErrSelfLoop = errors.New("self-loops are not allowed")

	// ErrInvalidWeight is returned for negative, NaN or infinite distances.
	ErrInvalidWeight = errors.New("edge weight must be a finite, non-negative number")

	// ErrUnknownKind is returned by ParseKind for unrecognised kind names.
	ErrUnknownKind = errors.New("unknown node kind")
)
