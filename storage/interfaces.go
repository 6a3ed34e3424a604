package storage

import (
	"context"

	"github.com/tessero/ragdesk/core"
)

// SessionRepository persists the identifier of the active file-search store
// between sessions. The session manager is the only component that reads or
// writes this value.
type SessionRepository interface {
	// ActiveStore returns the persisted store identifier.
	// Returns ErrNotFound if no identifier has been persisted yet.
	ActiveStore(ctx context.Context) (string, error)

	// SetActiveStore persists the store identifier, replacing any previous one.
	SetActiveStore(ctx context.Context, storeName string) error

	// Close closes the storage backend and releases resources.
	Close() error
}

// DocumentRepository provides operations for the local catalog of ingested
// documents. Implementations must be thread-safe and support concurrent
// access.
type DocumentRepository interface {
	// AddDocument adds a catalog entry. The Id is derived from the document
	// resource name when zero. Sets IngestedAt if not already set.
	// Returns the record with Id and timestamps populated.
	AddDocument(ctx context.Context, record *core.DocumentRecord) (*core.DocumentRecord, error)

	// UpdateDocument updates an existing catalog entry and its UpdatedAt
	// timestamp. Returns ErrNotFound if the record doesn't exist.
	UpdateDocument(ctx context.Context, record *core.DocumentRecord) (*core.DocumentRecord, error)

	// GetDocument retrieves a catalog entry by ID.
	// Returns ErrNotFound if the record doesn't exist.
	GetDocument(ctx context.Context, id core.ID) (*core.DocumentRecord, error)

	// GetDocumentByName retrieves a catalog entry by the remote document
	// resource name. Returns ErrNotFound if the record doesn't exist.
	GetDocumentByName(ctx context.Context, documentName string) (*core.DocumentRecord, error)

	// ListDocuments returns the catalog entries for a store, ordered by
	// ingestion time ascending. An empty storeName lists all entries.
	ListDocuments(ctx context.Context, storeName string) ([]*core.DocumentRecord, error)

	// DeleteDocument removes a catalog entry by ID.
	// Returns ErrNotFound if the record doesn't exist.
	DeleteDocument(ctx context.Context, id core.ID) error

	// Close closes the storage backend and releases resources.
	Close() error
}
