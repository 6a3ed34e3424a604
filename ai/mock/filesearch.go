package mock

import (
	"context"
	"fmt"
	"io"

	"github.com/tessero/ragdesk/ai"
	"github.com/tessero/ragdesk/core"
)

// MockFileSearch is a test double for ai.FileSearch.
// It allows custom behavior injection via function fields and supports
// scripted operation and document-state sequences for poller tests.
type MockFileSearch struct {
	// CreateStoreFunc is called by CreateStore if set.
	CreateStoreFunc func(ctx context.Context, displayName string) (*core.Store, error)

	// UploadFunc is called by Upload if set.
	UploadFunc func(ctx context.Context, storeName string, data io.Reader, displayName, mimeType string) (*core.Operation, error)

	// GetOperationFunc is called by GetOperation if set.
	// If nil, operations queued via QueueOperations are returned in order.
	GetOperationFunc func(ctx context.Context, name string) (*core.Operation, error)

	// GetDocumentFunc is called by GetDocument if set.
	// If nil, states queued via QueueDocumentStates are returned in order.
	GetDocumentFunc func(ctx context.Context, name string) (*core.Document, error)

	operations []*core.Operation
	states     []core.DocumentState

	createStoreCalls  int
	uploadCalls       int
	getOperationCalls int
	getDocumentCalls  int
}

var _ ai.FileSearch = (*MockFileSearch)(nil)

// NewMockFileSearch creates a mock file-search service with deterministic
// default behavior.
// Note: Returns concrete type to allow test assertions and scripting.
func NewMockFileSearch() *MockFileSearch {
	return &MockFileSearch{}
}

// QueueOperations scripts the results of successive GetOperation calls.
func (m *MockFileSearch) QueueOperations(ops ...*core.Operation) {
	m.operations = append(m.operations, ops...)
}

// QueueDocumentStates scripts the states of successive GetDocument calls.
func (m *MockFileSearch) QueueDocumentStates(states ...core.DocumentState) {
	m.states = append(m.states, states...)
}

// CreateStore returns a deterministic store unless CreateStoreFunc is set.
func (m *MockFileSearch) CreateStore(ctx context.Context, displayName string) (*core.Store, error) {
	m.createStoreCalls++

	if m.CreateStoreFunc != nil {
		return m.CreateStoreFunc(ctx, displayName)
	}

	return &core.Store{
		Name:        fmt.Sprintf("fileSearchStores/mock-%d", m.createStoreCalls),
		DisplayName: displayName,
	}, nil
}

// Upload returns a pending operation unless UploadFunc is set.
func (m *MockFileSearch) Upload(ctx context.Context, storeName string, data io.Reader, displayName, mimeType string) (*core.Operation, error) {
	m.uploadCalls++

	if m.UploadFunc != nil {
		return m.UploadFunc(ctx, storeName, data, displayName, mimeType)
	}

	if data != nil {
		// Drain the reader like a real upload would.
		if _, err := io.Copy(io.Discard, data); err != nil {
			return nil, err
		}
	}

	return &core.Operation{
		Name: fmt.Sprintf("operations/mock-upload-%d", m.uploadCalls),
	}, nil
}

// GetOperation pops the next scripted operation. When the script is
// exhausted, it returns a completed operation with a document name.
func (m *MockFileSearch) GetOperation(ctx context.Context, name string) (*core.Operation, error) {
	m.getOperationCalls++

	if m.GetOperationFunc != nil {
		return m.GetOperationFunc(ctx, name)
	}

	if len(m.operations) > 0 {
		op := m.operations[0]
		m.operations = m.operations[1:]
		return op, nil
	}

	return &core.Operation{
		Name:         name,
		Done:         true,
		DocumentName: "fileSearchStores/mock-1/documents/mock-1",
	}, nil
}

// GetDocument pops the next scripted state. When the script is exhausted,
// it returns an active document.
func (m *MockFileSearch) GetDocument(ctx context.Context, name string) (*core.Document, error) {
	m.getDocumentCalls++

	if m.GetDocumentFunc != nil {
		return m.GetDocumentFunc(ctx, name)
	}

	state := core.DocumentStateActive
	if len(m.states) > 0 {
		state = m.states[0]
		m.states = m.states[1:]
	}

	return &core.Document{
		Name:  name,
		State: state,
	}, nil
}

// CreateStoreCalls returns how many times CreateStore was called.
func (m *MockFileSearch) CreateStoreCalls() int { return m.createStoreCalls }

// UploadCalls returns how many times Upload was called.
func (m *MockFileSearch) UploadCalls() int { return m.uploadCalls }

// GetOperationCalls returns how many times GetOperation was called.
func (m *MockFileSearch) GetOperationCalls() int { return m.getOperationCalls }

// GetDocumentCalls returns how many times GetDocument was called.
func (m *MockFileSearch) GetDocumentCalls() int { return m.getDocumentCalls }
