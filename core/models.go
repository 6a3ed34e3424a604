package core

import (
	"encoding/binary"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for catalog entries.
// It is generated using content-based hashing of the remote resource name.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Store is a remote container scoping which documents are searchable together.
// Name is the opaque resource identifier assigned by the service.
type Store struct {
	Name        string
	DisplayName string
}

// DocumentState is the processing state of a document inside a store.
type DocumentState int

const (
	// DocumentStateUnspecified means the service did not report a state.
	DocumentStateUnspecified DocumentState = iota
	// DocumentStatePending means the document is still being processed.
	DocumentStatePending
	// DocumentStateActive means the document is processed and searchable.
	DocumentStateActive
	// DocumentStateFailed means processing failed; the document is unusable.
	DocumentStateFailed
)

// ParseDocumentState maps a wire state string to a DocumentState.
// Unknown values map to DocumentStateUnspecified, which is non-terminal.
func ParseDocumentState(s string) DocumentState {
	switch s {
	case "STATE_PENDING", "PENDING":
		return DocumentStatePending
	case "STATE_ACTIVE", "ACTIVE":
		return DocumentStateActive
	case "STATE_FAILED", "FAILED":
		return DocumentStateFailed
	default:
		return DocumentStateUnspecified
	}
}

// String returns the canonical wire name of the state.
func (s DocumentState) String() string {
	switch s {
	case DocumentStatePending:
		return "STATE_PENDING"
	case DocumentStateActive:
		return "STATE_ACTIVE"
	case DocumentStateFailed:
		return "STATE_FAILED"
	default:
		return "STATE_UNSPECIFIED"
	}
}

// Terminal reports whether the state is a terminal processing outcome.
func (s DocumentState) Terminal() bool {
	return s == DocumentStateActive || s == DocumentStateFailed
}

// Document is a processed, searchable unit inside a store. Name is the remote
// resource identifier, distinct from any local file path.
type Document struct {
	Name        string
	DisplayName string
	State       DocumentState
	MIMEType    string
	SizeBytes   int64
	CreateTime  time.Time
}

// OperationError is the failure payload of a completed operation.
type OperationError struct {
	Code    int
	Message string
}

// Operation is a remote long-running task representing an accepted upload.
// Once Done is true, exactly one of Error or DocumentName is expected to be
// populated; Status resolves which.
type Operation struct {
	Name         string
	Done         bool
	Error        *OperationError
	DocumentName string
}

// OperationStatus is the tagged resolution of an Operation.
type OperationStatus int

const (
	// OperationPending means the operation has not completed yet.
	OperationPending OperationStatus = iota + 1
	// OperationSucceeded means the operation completed with a document name.
	OperationSucceeded
	// OperationFailed means the operation completed with an error payload.
	OperationFailed
	// OperationMalformed means the operation completed with neither an error
	// nor a document name, violating the service contract.
	OperationMalformed
)

// Status resolves the operation into exactly one tagged outcome. Callers
// branch on the returned status instead of inspecting Done, Error and
// DocumentName independently.
func (op *Operation) Status() OperationStatus {
	if !op.Done {
		return OperationPending
	}
	if op.Error != nil {
		return OperationFailed
	}
	if op.DocumentName != "" {
		return OperationSucceeded
	}
	return OperationMalformed
}

// DocumentRecord is a local catalog entry for one ingested file. It ties the
// local source path to the remote document resource and tracks its last known
// processing state.
type DocumentRecord struct {
	Id           ID
	StoreName    string
	DocumentName string
	DisplayName  string
	SourcePath   string
	MIMEType     string
	SizeBytes    int64
	State        DocumentState
	IngestedAt   time.Time // When the document was ingested into the store
	UpdatedAt    time.Time // When the record was last updated
}
