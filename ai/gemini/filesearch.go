package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"time"

	"github.com/tessero/ragdesk/ai"
	"github.com/tessero/ragdesk/core"
)

// FileSearchService implements ai.FileSearch over the v1beta REST surface.
type FileSearchService struct {
	client *client
	logger *slog.Logger
}

var _ ai.FileSearch = (*FileSearchService)(nil)

type createStoreRequest struct {
	DisplayName string `json:"displayName,omitempty"`
}

type storeResponse struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
}

type operationStatus struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type operationResult struct {
	DocumentName string `json:"documentName"`
}

type operationResponse struct {
	Name     string           `json:"name"`
	Done     bool             `json:"done"`
	Error    *operationStatus `json:"error,omitempty"`
	Response *operationResult `json:"response,omitempty"`
}

type documentResponse struct {
	Name        string    `json:"name"`
	DisplayName string    `json:"displayName"`
	State       string    `json:"state"`
	MimeType    string    `json:"mimeType"`
	SizeBytes   int64     `json:"sizeBytes,string"`
	CreateTime  time.Time `json:"createTime"`
}

// CreateStore creates a new file-search store.
func (s *FileSearchService) CreateStore(ctx context.Context, displayName string) (*core.Store, error) {
	payload, err := json.Marshal(createStoreRequest{DisplayName: displayName})
	if err != nil {
		return nil, err
	}

	body, err := s.client.do(ctx, requestSpec{
		method:      "POST",
		url:         s.client.endpoint("/v1beta/fileSearchStores"),
		body:        payload,
		contentType: "application/json",
	})
	if err != nil {
		return nil, fmt.Errorf("create store: %w", err)
	}

	var store storeResponse
	if err := json.Unmarshal(body, &store); err != nil {
		return nil, fmt.Errorf("create store: decode response: %w", err)
	}

	s.logger.Info("created file-search store", "store", store.Name)
	return &core.Store{Name: store.Name, DisplayName: store.DisplayName}, nil
}

// Upload submits file bytes to a store using the raw media-upload protocol
// and returns the long-running operation handle.
func (s *FileSearchService) Upload(ctx context.Context, storeName string, data io.Reader, displayName, mimeType string) (*core.Operation, error) {
	payload, err := io.ReadAll(data)
	if err != nil {
		return nil, fmt.Errorf("upload: read source: %w", err)
	}

	uploadURL := s.client.endpoint("/upload/v1beta/" + storeName + ":uploadToFileSearchStore")
	if displayName != "" {
		uploadURL += "?displayName=" + url.QueryEscape(displayName)
	}

	body, err := s.client.do(ctx, requestSpec{
		method:      "POST",
		url:         uploadURL,
		body:        payload,
		contentType: mimeType,
		header: map[string]string{
			"X-Goog-Upload-Protocol": "raw",
		},
	})
	if err != nil {
		return nil, fmt.Errorf("upload: %w", err)
	}

	op, err := decodeOperation(body)
	if err != nil {
		return nil, fmt.Errorf("upload: %w", err)
	}

	s.logger.Debug("upload accepted", "store", storeName, "operation", op.Name)
	return op, nil
}

// GetOperation fetches the current status of a long-running operation.
func (s *FileSearchService) GetOperation(ctx context.Context, name string) (*core.Operation, error) {
	body, err := s.client.do(ctx, requestSpec{
		method: "GET",
		url:    s.client.endpoint("/v1beta/" + name),
	})
	if err != nil {
		return nil, fmt.Errorf("get operation: %w", err)
	}

	op, err := decodeOperation(body)
	if err != nil {
		return nil, fmt.Errorf("get operation: %w", err)
	}
	return op, nil
}

// GetDocument fetches a document and its current processing state.
func (s *FileSearchService) GetDocument(ctx context.Context, name string) (*core.Document, error) {
	body, err := s.client.do(ctx, requestSpec{
		method: "GET",
		url:    s.client.endpoint("/v1beta/" + name),
	})
	if err != nil {
		return nil, fmt.Errorf("get document: %w", err)
	}

	var doc documentResponse
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("get document: decode response: %w", err)
	}

	return &core.Document{
		Name:        doc.Name,
		DisplayName: doc.DisplayName,
		State:       core.ParseDocumentState(doc.State),
		MIMEType:    doc.MimeType,
		SizeBytes:   doc.SizeBytes,
		CreateTime:  doc.CreateTime,
	}, nil
}

func decodeOperation(body []byte) (*core.Operation, error) {
	var resp operationResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode operation: %w", err)
	}

	op := &core.Operation{
		Name: resp.Name,
		Done: resp.Done,
	}
	if resp.Error != nil {
		op.Error = &core.OperationError{Code: resp.Error.Code, Message: resp.Error.Message}
	}
	if resp.Response != nil {
		op.DocumentName = resp.Response.DocumentName
	}
	return op, nil
}
