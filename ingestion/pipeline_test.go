package ingestion

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tessero/ragdesk/ai/mock"
	"github.com/tessero/ragdesk/core"
	"github.com/tessero/ragdesk/storage"
	storagebadger "github.com/tessero/ragdesk/storage/badger"
)

// recordingMonitor captures progress callbacks in order.
type recordingMonitor struct {
	mu     sync.Mutex
	events []string
}

func (r *recordingMonitor) record(event string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *recordingMonitor) UploadStarted(_ string)      { r.record("upload_started") }
func (r *recordingMonitor) UploadAccepted(_, _ string)  { r.record("upload_accepted") }
func (r *recordingMonitor) DocumentCreated(_, _ string) { r.record("document_created") }
func (r *recordingMonitor) DocumentActive(_, _ string)  { r.record("document_active") }
func (r *recordingMonitor) Failed(_ string, _ error)    { r.record("failed") }

// failingCatalog rejects every write.
type failingCatalog struct {
	storage.DocumentRepository
}

func (f *failingCatalog) AddDocument(_ context.Context, _ *core.DocumentRecord) (*core.DocumentRecord, error) {
	return nil, errors.New("catalog unavailable")
}

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func newTestPipeline(t *testing.T, svc *mock.MockFileSearch, opts ...Option) *Pipeline {
	t.Helper()

	poller, err := NewPoller(svc)
	require.NoError(t, err)
	installFakeClock(poller)

	p, err := NewPipeline(svc, append([]Option{WithPoller(poller)}, opts...)...)
	require.NoError(t, err)
	t.Cleanup(p.Release)
	return p
}

func TestNewPipeline(t *testing.T) {
	t.Run("requires a file-search service", func(t *testing.T) {
		_, err := NewPipeline(nil)
		assert.ErrorIs(t, err, ErrFileSearchRequired)
	})

	t.Run("rejects a nil poller", func(t *testing.T) {
		_, err := NewPipeline(mock.NewMockFileSearch(), WithPoller(nil))
		assert.ErrorIs(t, err, ErrPollerRequired)
	})
}

func TestIngest_Success(t *testing.T) {
	svc := mock.NewMockFileSearch()
	monitor := &recordingMonitor{}
	p := newTestPipeline(t, svc)

	path := writeTempFile(t, "notes.txt", "meeting notes about quarterly goals")

	record, err := p.Ingest(context.Background(), "fileSearchStores/s", path, &IngestOptions{
		Monitor: monitor,
	})
	require.NoError(t, err)
	require.NotNil(t, record)

	assert.Equal(t, "fileSearchStores/s", record.StoreName)
	assert.Equal(t, "fileSearchStores/mock-1/documents/mock-1", record.DocumentName)
	assert.Equal(t, "notes.txt", record.DisplayName)
	assert.Equal(t, path, record.SourcePath)
	assert.Contains(t, record.MIMEType, "text/plain")
	assert.Equal(t, int64(len("meeting notes about quarterly goals")), record.SizeBytes)
	assert.Equal(t, core.DocumentStateActive, record.State)
	assert.False(t, record.IngestedAt.IsZero())

	assert.Equal(t, []string{
		"upload_started",
		"upload_accepted",
		"document_created",
		"document_active",
	}, monitor.events)
}

func TestIngest_DisplayNameOverride(t *testing.T) {
	svc := mock.NewMockFileSearch()

	var uploadedDisplayName, uploadedMIME string
	svc.UploadFunc = func(_ context.Context, _ string, data io.Reader, displayName, mimeType string) (*core.Operation, error) {
		uploadedDisplayName = displayName
		uploadedMIME = mimeType
		_, _ = io.Copy(io.Discard, data)
		return &core.Operation{Name: "operations/upload-1"}, nil
	}
	p := newTestPipeline(t, svc)

	path := writeTempFile(t, "raw.bin", "payload")

	record, err := p.Ingest(context.Background(), "fileSearchStores/s", path, &IngestOptions{
		DisplayName: "Quarterly Report",
		MIMEType:    "application/pdf",
	})
	require.NoError(t, err)

	assert.Equal(t, "Quarterly Report", uploadedDisplayName)
	assert.Equal(t, "application/pdf", uploadedMIME)
	assert.Equal(t, "Quarterly Report", record.DisplayName)
	assert.Equal(t, "application/pdf", record.MIMEType)
}

func TestIngest_MissingFile(t *testing.T) {
	svc := mock.NewMockFileSearch()
	monitor := &recordingMonitor{}
	p := newTestPipeline(t, svc)

	_, err := p.Ingest(context.Background(), "fileSearchStores/s",
		filepath.Join(t.TempDir(), "absent.txt"), &IngestOptions{Monitor: monitor})

	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Equal(t, 0, svc.UploadCalls(), "nothing is uploaded for an unreadable file")
	assert.Equal(t, []string{"failed"}, monitor.events)
}

func TestIngest_UploadSubmissionFails(t *testing.T) {
	svc := mock.NewMockFileSearch()
	submitErr := errors.New("service unavailable")
	svc.UploadFunc = func(_ context.Context, _ string, _ io.Reader, _, _ string) (*core.Operation, error) {
		return nil, submitErr
	}
	monitor := &recordingMonitor{}
	p := newTestPipeline(t, svc)

	path := writeTempFile(t, "notes.txt", "content")

	_, err := p.Ingest(context.Background(), "fileSearchStores/s", path, &IngestOptions{Monitor: monitor})
	assert.ErrorIs(t, err, submitErr)
	assert.Equal(t, []string{"upload_started", "failed"}, monitor.events)
}

func TestIngest_RemoteUploadFailure(t *testing.T) {
	svc := mock.NewMockFileSearch()
	svc.QueueOperations(&core.Operation{
		Name:  "operations/mock-upload-1",
		Done:  true,
		Error: &core.OperationError{Code: 13, Message: "ingestion backend unavailable"},
	})
	p := newTestPipeline(t, svc)

	path := writeTempFile(t, "notes.txt", "content")

	_, err := p.Ingest(context.Background(), "fileSearchStores/s", path, nil)

	var uploadErr *UploadError
	require.ErrorAs(t, err, &uploadErr)
	assert.Equal(t, 0, svc.GetDocumentCalls(), "a failed upload is never followed by document polling")
}

func TestIngest_ProcessingFailure(t *testing.T) {
	svc := mock.NewMockFileSearch()
	svc.QueueDocumentStates(core.DocumentStatePending, core.DocumentStateFailed)
	monitor := &recordingMonitor{}
	p := newTestPipeline(t, svc)

	path := writeTempFile(t, "notes.txt", "content")

	_, err := p.Ingest(context.Background(), "fileSearchStores/s", path, &IngestOptions{Monitor: monitor})

	var procErr *ProcessingError
	require.ErrorAs(t, err, &procErr)
	assert.Equal(t, []string{
		"upload_started",
		"upload_accepted",
		"document_created",
		"failed",
	}, monitor.events)
}

func TestIngest_CatalogRecording(t *testing.T) {
	docRepo, _, backend, err := storagebadger.NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() { _ = backend.Close() })

	svc := mock.NewMockFileSearch()
	p := newTestPipeline(t, svc, WithCatalog(docRepo))

	path := writeTempFile(t, "notes.txt", "content")

	record, err := p.Ingest(context.Background(), "fileSearchStores/s", path, nil)
	require.NoError(t, err)
	require.NotZero(t, record.Id)

	stored, err := docRepo.GetDocumentByName(context.Background(), record.DocumentName)
	require.NoError(t, err)
	assert.Equal(t, record.Id, stored.Id)
	assert.Equal(t, record.DisplayName, stored.DisplayName)
}

func TestIngest_CatalogFailureIsNotFatal(t *testing.T) {
	svc := mock.NewMockFileSearch()
	p := newTestPipeline(t, svc, WithCatalog(&failingCatalog{}))

	path := writeTempFile(t, "notes.txt", "content")

	record, err := p.Ingest(context.Background(), "fileSearchStores/s", path, nil)
	require.NoError(t, err, "the remote ingestion succeeded; a catalog write failure stays local")
	assert.NotNil(t, record)
}

func TestIngestAll(t *testing.T) {
	svc := mock.NewMockFileSearch()
	failPath := "absent.txt"
	p := newTestPipeline(t, svc, WithPoolSize(2))

	dir := t.TempDir()
	paths := make([]string, 0, 4)
	for i := 0; i < 3; i++ {
		path := filepath.Join(dir, fmt.Sprintf("doc-%d.txt", i))
		require.NoError(t, os.WriteFile(path, []byte("content"), 0o600))
		paths = append(paths, path)
	}
	paths = append(paths, filepath.Join(dir, failPath))

	results := p.IngestAll(context.Background(), "fileSearchStores/s", paths, nil)
	require.Len(t, results, len(paths))

	for i, res := range results {
		assert.Equal(t, paths[i], res.Path, "results keep input order")
	}
	for _, res := range results[:3] {
		assert.NoError(t, res.Err)
		assert.NotNil(t, res.Record)
	}
	assert.ErrorIs(t, results[3].Err, os.ErrNotExist)
	assert.Nil(t, results[3].Record)
}
