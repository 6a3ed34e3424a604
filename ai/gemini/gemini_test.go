package gemini

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tessero/ragdesk/ai"
	"github.com/tessero/ragdesk/core"
)

func newTestProvider(t *testing.T, handler http.Handler) ai.Provider {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	provider, err := NewProvider(ai.NewConfig(
		ai.WithAPIKey("test-key"),
		ai.WithBaseURL(server.URL),
	))
	require.NoError(t, err)
	t.Cleanup(func() { provider.Close() })
	return provider
}

func TestNewProvider_MissingKey(t *testing.T) {
	_, err := NewProvider(ai.NewConfig())
	assert.True(t, errors.Is(err, ai.ErrMissingAPIKey))
}

func TestCreateStore(t *testing.T) {
	provider := newTestProvider(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/v1beta/fileSearchStores", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-goog-api-key"))

		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "local-rag-store", req["displayName"])

		json.NewEncoder(w).Encode(map[string]string{
			"name":        "fileSearchStores/abc",
			"displayName": "local-rag-store",
		})
	}))

	store, err := provider.FileSearch().CreateStore(context.Background(), "local-rag-store")
	require.NoError(t, err)
	assert.Equal(t, "fileSearchStores/abc", store.Name)
	assert.Equal(t, "local-rag-store", store.DisplayName)
}

func TestUpload(t *testing.T) {
	provider := newTestProvider(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/upload/v1beta/fileSearchStores/abc:uploadToFileSearchStore", r.URL.Path)
		assert.Equal(t, "raw", r.Header.Get("X-Goog-Upload-Protocol"))
		assert.Equal(t, "text/plain", r.Header.Get("Content-Type"))
		assert.Equal(t, "notes.txt", r.URL.Query().Get("displayName"))

		json.NewEncoder(w).Encode(map[string]any{
			"name": "operations/op-1",
			"done": false,
		})
	}))

	op, err := provider.FileSearch().Upload(context.Background(),
		"fileSearchStores/abc", strings.NewReader("hello"), "notes.txt", "text/plain")
	require.NoError(t, err)
	assert.Equal(t, "operations/op-1", op.Name)
	assert.Equal(t, core.OperationPending, op.Status())
}

func TestGetOperation(t *testing.T) {
	t.Run("succeeded", func(t *testing.T) {
		provider := newTestProvider(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v1beta/operations/op-1", r.URL.Path)
			json.NewEncoder(w).Encode(map[string]any{
				"name": "operations/op-1",
				"done": true,
				"response": map[string]string{
					"documentName": "fileSearchStores/abc/documents/d1",
				},
			})
		}))

		op, err := provider.FileSearch().GetOperation(context.Background(), "operations/op-1")
		require.NoError(t, err)
		assert.Equal(t, core.OperationSucceeded, op.Status())
		assert.Equal(t, "fileSearchStores/abc/documents/d1", op.DocumentName)
	})

	t.Run("failed", func(t *testing.T) {
		provider := newTestProvider(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]any{
				"name":  "operations/op-1",
				"done":  true,
				"error": map[string]any{"code": 13, "message": "ingestion error"},
			})
		}))

		op, err := provider.FileSearch().GetOperation(context.Background(), "operations/op-1")
		require.NoError(t, err)
		assert.Equal(t, core.OperationFailed, op.Status())
		assert.Equal(t, "ingestion error", op.Error.Message)
	})
}

func TestGetDocument(t *testing.T) {
	provider := newTestProvider(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1beta/fileSearchStores/abc/documents/d1", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{
			"name":        "fileSearchStores/abc/documents/d1",
			"displayName": "notes.txt",
			"state":       "STATE_ACTIVE",
			"mimeType":    "text/plain",
			"sizeBytes":   "2048",
		})
	}))

	doc, err := provider.FileSearch().GetDocument(context.Background(), "fileSearchStores/abc/documents/d1")
	require.NoError(t, err)
	assert.Equal(t, core.DocumentStateActive, doc.State)
	assert.Equal(t, int64(2048), doc.SizeBytes)
}

func TestGenerateText(t *testing.T) {
	t.Run("extracts candidate text", func(t *testing.T) {
		provider := newTestProvider(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v1beta/models/gemini-2.5-flash:generateContent", r.URL.Path)

			var req generateRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			require.Len(t, req.Tools, 1)
			assert.Equal(t, []string{"fileSearchStores/abc"}, req.Tools[0].FileSearch.FileSearchStoreNames)

			json.NewEncoder(w).Encode(map[string]any{
				"candidates": []map[string]any{
					{"content": map[string]any{
						"parts": []map[string]string{{"text": "grounded "}, {"text": "answer"}},
					}},
				},
			})
		}))

		text, err := provider.Generator().GenerateText(context.Background(),
			"what do the documents say?", []string{"fileSearchStores/abc"})
		require.NoError(t, err)
		assert.Equal(t, "grounded answer", text)
	})

	t.Run("falls back to raw body when text is absent", func(t *testing.T) {
		provider := newTestProvider(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"candidates":[]}`))
		}))

		text, err := provider.Generator().GenerateText(context.Background(), "q", nil)
		require.NoError(t, err)
		assert.Contains(t, text, "candidates")
	})

	t.Run("non-2xx surfaces APIError", func(t *testing.T) {
		provider := newTestProvider(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "bad request", http.StatusBadRequest)
		}))

		_, err := provider.Generator().GenerateText(context.Background(), "q", nil)
		var apiErr *APIError
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	})
}

func TestGenerateImages(t *testing.T) {
	payload := base64.StdEncoding.EncodeToString([]byte("image-bytes"))
	provider := newTestProvider(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1beta/models/imagen-3.0:predict", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{
			"predictions": []map[string]string{
				{"bytesBase64Encoded": payload},
				{"bytesBase64Encoded": payload},
			},
		})
	}))

	images, err := provider.Generator().GenerateImages(context.Background(), "illustration", 2)
	require.NoError(t, err)
	require.Len(t, images, 2)
	assert.Equal(t, []byte("image-bytes"), images[0])
}

func TestDo_RetriesServerErrors(t *testing.T) {
	attempts := 0
	provider := newTestProvider(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts == 1 {
			http.Error(w, "overloaded", http.StatusServiceUnavailable)
			return
		}
		json.NewEncoder(w).Encode(map[string]string{
			"name": "fileSearchStores/retry",
		})
	}))

	store, err := provider.FileSearch().CreateStore(context.Background(), "s")
	require.NoError(t, err)
	assert.Equal(t, "fileSearchStores/retry", store.Name)
	assert.Equal(t, 2, attempts)
}
