package badger

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tessero/ragdesk/core"
	"github.com/tessero/ragdesk/storage"
)

func newTestRepos(t *testing.T) (storage.DocumentRepository, storage.SessionRepository) {
	t.Helper()

	docRepo, sessionRepo, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() {
		sessionRepo.Close()
		docRepo.Close()
		backend.Close()
	})
	return docRepo, sessionRepo
}

func testRecord(documentName string) *core.DocumentRecord {
	return &core.DocumentRecord{
		StoreName:    "fileSearchStores/a",
		DocumentName: documentName,
		DisplayName:  "notes.txt",
		SourcePath:   "/tmp/notes.txt",
		MIMEType:     "text/plain",
		SizeBytes:    42,
		State:        core.DocumentStateActive,
	}
}

func TestDocumentRepository_AddAndGet(t *testing.T) {
	docRepo, _ := newTestRepos(t)
	ctx := context.Background()

	added, err := docRepo.AddDocument(ctx, testRecord("fileSearchStores/a/documents/1"))
	require.NoError(t, err)
	assert.NotZero(t, added.Id)
	assert.False(t, added.IngestedAt.IsZero())
	assert.Equal(t, core.IDFromContent("fileSearchStores/a/documents/1"), added.Id)

	got, err := docRepo.GetDocument(ctx, added.Id)
	require.NoError(t, err)
	assert.Equal(t, added.DocumentName, got.DocumentName)
	assert.Equal(t, core.DocumentStateActive, got.State)
}

func TestDocumentRepository_GetByName(t *testing.T) {
	docRepo, _ := newTestRepos(t)
	ctx := context.Background()

	_, err := docRepo.AddDocument(ctx, testRecord("fileSearchStores/a/documents/1"))
	require.NoError(t, err)

	got, err := docRepo.GetDocumentByName(ctx, "fileSearchStores/a/documents/1")
	require.NoError(t, err)
	assert.Equal(t, "notes.txt", got.DisplayName)

	_, err = docRepo.GetDocumentByName(ctx, "fileSearchStores/a/documents/absent")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestDocumentRepository_Update(t *testing.T) {
	docRepo, _ := newTestRepos(t)
	ctx := context.Background()

	added, err := docRepo.AddDocument(ctx, testRecord("fileSearchStores/a/documents/1"))
	require.NoError(t, err)

	added.State = core.DocumentStateFailed
	updated, err := docRepo.UpdateDocument(ctx, added)
	require.NoError(t, err)
	assert.Equal(t, core.DocumentStateFailed, updated.State)

	got, err := docRepo.GetDocument(ctx, added.Id)
	require.NoError(t, err)
	assert.Equal(t, core.DocumentStateFailed, got.State)

	t.Run("missing record", func(t *testing.T) {
		missing := testRecord("fileSearchStores/a/documents/ghost")
		missing.Id = core.IDFromContent(missing.DocumentName)
		missing.IngestedAt = time.Now().UTC()
		_, err := docRepo.UpdateDocument(ctx, missing)
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})
}

func TestDocumentRepository_List(t *testing.T) {
	docRepo, _ := newTestRepos(t)
	ctx := context.Background()

	first := testRecord("fileSearchStores/a/documents/1")
	first.IngestedAt = time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC)
	second := testRecord("fileSearchStores/a/documents/2")
	second.IngestedAt = time.Date(2025, 11, 2, 0, 0, 0, 0, time.UTC)
	other := testRecord("fileSearchStores/b/documents/1")
	other.StoreName = "fileSearchStores/b"

	for _, record := range []*core.DocumentRecord{second, first, other} {
		_, err := docRepo.AddDocument(ctx, record)
		require.NoError(t, err)
	}

	records, err := docRepo.ListDocuments(ctx, "fileSearchStores/a")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "fileSearchStores/a/documents/1", records[0].DocumentName)
	assert.Equal(t, "fileSearchStores/a/documents/2", records[1].DocumentName)

	all, err := docRepo.ListDocuments(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestDocumentRepository_Delete(t *testing.T) {
	docRepo, _ := newTestRepos(t)
	ctx := context.Background()

	added, err := docRepo.AddDocument(ctx, testRecord("fileSearchStores/a/documents/1"))
	require.NoError(t, err)

	require.NoError(t, docRepo.DeleteDocument(ctx, added.Id))

	_, err = docRepo.GetDocument(ctx, added.Id)
	assert.ErrorIs(t, err, storage.ErrNotFound)
	_, err = docRepo.GetDocumentByName(ctx, added.DocumentName)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	assert.ErrorIs(t, docRepo.DeleteDocument(ctx, added.Id), storage.ErrNotFound)
}

func TestSessionRepository(t *testing.T) {
	_, sessionRepo := newTestRepos(t)
	ctx := context.Background()

	_, err := sessionRepo.ActiveStore(ctx)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	require.NoError(t, sessionRepo.SetActiveStore(ctx, "fileSearchStores/a"))

	name, err := sessionRepo.ActiveStore(ctx)
	require.NoError(t, err)
	assert.Equal(t, "fileSearchStores/a", name)

	require.NoError(t, sessionRepo.SetActiveStore(ctx, "fileSearchStores/b"))
	name, err = sessionRepo.ActiveStore(ctx)
	require.NoError(t, err)
	assert.Equal(t, "fileSearchStores/b", name)
}
