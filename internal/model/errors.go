package model

import "errors"

var (
	// ErrNotFound indicates the backend has no record with the given id.
	ErrNotFound = errors.New("record not found")

	// ErrUnknownKind indicates a request for a resource kind that is not registered.
	ErrUnknownKind = errors.New("unknown resource kind")

	// ErrTrashUnsupported indicates a trash operation on a kind without soft delete.
	ErrTrashUnsupported = errors.New("resource kind has no trash")

	// ErrStaleResponse indicates a fetch finished after a newer one was issued
	// and its result was discarded.
	ErrStaleResponse = errors.New("response superseded by a newer request")
)
