package core

import (
	"errors"
	"testing"
	"time"
)

func validRecord() *DocumentRecord {
	return &DocumentRecord{
		Id:           IDFromContent("fileSearchStores/a/documents/1"),
		StoreName:    "fileSearchStores/a",
		DocumentName: "fileSearchStores/a/documents/1",
		DisplayName:  "notes.pdf",
		SourcePath:   "/tmp/notes.pdf",
		MIMEType:     "application/pdf",
		SizeBytes:    1024,
		State:        DocumentStateActive,
		IngestedAt:   time.Now().UTC(),
		UpdatedAt:    time.Now().UTC(),
	}
}

func TestValidateDocumentRecord(t *testing.T) {
	t.Run("valid record", func(t *testing.T) {
		if err := ValidateDocumentRecord(validRecord()); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("nil record", func(t *testing.T) {
		err := ValidateDocumentRecord(nil)
		if !errors.Is(err, ErrInvalidDocumentRecord) {
			t.Errorf("want ErrInvalidDocumentRecord, got %v", err)
		}
	})

	t.Run("empty store name", func(t *testing.T) {
		record := validRecord()
		record.StoreName = ""
		err := ValidateDocumentRecord(record)
		if !errors.Is(err, ErrEmptyStoreName) {
			t.Errorf("want ErrEmptyStoreName, got %v", err)
		}
	})

	t.Run("empty document name", func(t *testing.T) {
		record := validRecord()
		record.DocumentName = ""
		err := ValidateDocumentRecord(record)
		if !errors.Is(err, ErrEmptyDocumentName) {
			t.Errorf("want ErrEmptyDocumentName, got %v", err)
		}
	})

	t.Run("unknown state", func(t *testing.T) {
		record := validRecord()
		record.State = DocumentState(42)
		err := ValidateDocumentRecord(record)
		if !errors.Is(err, ErrInvalidDocumentState) {
			t.Errorf("want ErrInvalidDocumentState, got %v", err)
		}
	})

	t.Run("future ingestion time", func(t *testing.T) {
		record := validRecord()
		record.IngestedAt = time.Now().Add(2 * time.Hour)
		err := ValidateDocumentRecord(record)
		if !errors.Is(err, ErrInvalidTimestamp) {
			t.Errorf("want ErrInvalidTimestamp, got %v", err)
		}
	})
}

func TestValidateDocumentState(t *testing.T) {
	for _, state := range []DocumentState{
		DocumentStateUnspecified,
		DocumentStatePending,
		DocumentStateActive,
		DocumentStateFailed,
	} {
		if err := ValidateDocumentState(state); err != nil {
			t.Errorf("ValidateDocumentState(%v) = %v, want nil", state, err)
		}
	}

	if err := ValidateDocumentState(DocumentState(-1)); err == nil {
		t.Error("negative state must be invalid")
	}
}
