package ai

import (
	"context"
	"io"

	"github.com/tessero/ragdesk/core"
)

// FileSearch manages remote file-search stores and their documents.
// Implementations must be thread-safe for concurrent use.
type FileSearch interface {
	// CreateStore creates a new file-search store with the given display name.
	// The returned Store carries the opaque resource name assigned by the
	// service.
	CreateStore(ctx context.Context, displayName string) (*core.Store, error)

	// Upload submits file bytes to a store and returns the long-running
	// operation handle for the accepted upload. The operation is usually not
	// done yet when this returns; callers poll it via GetOperation.
	Upload(ctx context.Context, storeName string, data io.Reader, displayName, mimeType string) (*core.Operation, error)

	// GetOperation fetches the current status of a long-running operation
	// by its resource name.
	GetOperation(ctx context.Context, name string) (*core.Operation, error)

	// GetDocument fetches a document by its resource name, including its
	// current processing state.
	GetDocument(ctx context.Context, name string) (*core.Document, error)
}

// Generator produces grounded content from the documents in one or more
// stores. Implementations must be thread-safe for concurrent use.
type Generator interface {
	// GenerateText issues a single generation request grounded in the given
	// stores and returns the extracted answer text. Implementations must not
	// fail merely because the response lacks the expected text field; they
	// fall back to a string rendering of the raw response instead.
	GenerateText(ctx context.Context, prompt string, storeNames []string) (string, error)

	// GenerateImages produces up to count illustration images for the prompt.
	// Returns the raw image bytes for each generated image.
	GenerateImages(ctx context.Context, prompt string, count int) ([][]byte, error)
}

// Provider aggregates the remote services for convenient initialization and
// lifecycle management. A provider owns its HTTP resources; construct it once
// at session start and pass it explicitly to consumers.
type Provider interface {
	// FileSearch returns the store and document management service.
	FileSearch() FileSearch

	// Generator returns the grounded generation service.
	Generator() Generator

	// Close releases resources held by the provider and its services.
	Close() error
}
