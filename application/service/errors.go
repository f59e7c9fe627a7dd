package service

import "errors"

// Application-level errors surfaced to the API layer.
var (
	// ErrClientClosed indicates the client has been closed.
	ErrClientClosed = errors.New("unifly: client is closed")

	// ErrUnknownEntity indicates the request named an entity the catalog
	// does not serve.
	ErrUnknownEntity = errors.New("unknown entity")

	// ErrNotSearchable indicates a search request against an entity that is
	// not mirrored into the vector index.
	ErrNotSearchable = errors.New("entity is not searchable")
)
