package badger

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/tessero/ragdesk/core"
	"github.com/tessero/ragdesk/storage"
)

// DocumentRepository implements storage.DocumentRepository over BadgerDB.
type DocumentRepository struct {
	backend *Backend
	logger  *slog.Logger
}

var _ storage.DocumentRepository = (*DocumentRepository)(nil)

// NewDocumentRepository creates a catalog repository over an open backend.
//
// Returns storage.DocumentRepository interface to enforce abstraction.
func NewDocumentRepository(backend *Backend) (storage.DocumentRepository, error) {
	if backend == nil {
		return nil, errors.New("backend required")
	}
	return &DocumentRepository{
		backend: backend,
		logger:  slog.Default().With("component", "badger-documents"),
	}, nil
}

// AddDocument adds a catalog entry, deriving the content-based ID from the
// document resource name when unset.
func (r *DocumentRepository) AddDocument(ctx context.Context, record *core.DocumentRecord) (*core.DocumentRecord, error) {
	if r.backend.IsClosed() {
		return nil, storage.ErrStorageClosed
	}

	stored := *record
	if stored.Id == 0 {
		stored.Id = core.IDFromContent(stored.DocumentName)
	}
	now := time.Now().UTC()
	if stored.IngestedAt.IsZero() {
		stored.IngestedAt = now
	}
	stored.UpdatedAt = now

	if err := core.ValidateDocumentRecord(&stored); err != nil {
		return nil, err
	}

	err := r.backend.Update(func(tx *badger.Txn) error {
		if err := tx.Set(makeDocumentRecordKey(stored.Id), storage.MarshalDocumentRecord(&stored)); err != nil {
			return err
		}
		return tx.Set(makeDocumentNameKey(stored.DocumentName), storage.MarshalID(stored.Id))
	})
	if err != nil {
		return nil, err
	}

	r.logger.Debug("catalogued document", "id", stored.Id, "document", stored.DocumentName)
	return &stored, nil
}

// UpdateDocument replaces an existing catalog entry.
func (r *DocumentRepository) UpdateDocument(ctx context.Context, record *core.DocumentRecord) (*core.DocumentRecord, error) {
	if r.backend.IsClosed() {
		return nil, storage.ErrStorageClosed
	}

	stored := *record
	stored.UpdatedAt = time.Now().UTC()

	if err := core.ValidateDocumentRecord(&stored); err != nil {
		return nil, err
	}

	err := r.backend.Update(func(tx *badger.Txn) error {
		key := makeDocumentRecordKey(stored.Id)
		if _, err := tx.Get(key); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return storage.ErrNotFound
			}
			return err
		}
		return tx.Set(key, storage.MarshalDocumentRecord(&stored))
	})
	if err != nil {
		return nil, err
	}
	return &stored, nil
}

// GetDocument retrieves a catalog entry by ID.
func (r *DocumentRepository) GetDocument(ctx context.Context, id core.ID) (*core.DocumentRecord, error) {
	if r.backend.IsClosed() {
		return nil, storage.ErrStorageClosed
	}

	var record *core.DocumentRecord
	err := r.backend.View(func(tx *badger.Txn) error {
		item, err := tx.Get(makeDocumentRecordKey(id))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return storage.ErrNotFound
			}
			return err
		}
		return item.Value(func(val []byte) error {
			record, err = storage.UnmarshalDocumentRecord(val)
			return err
		})
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}

// GetDocumentByName retrieves a catalog entry via the resource-name index.
func (r *DocumentRepository) GetDocumentByName(ctx context.Context, documentName string) (*core.DocumentRecord, error) {
	if r.backend.IsClosed() {
		return nil, storage.ErrStorageClosed
	}

	var id core.ID
	err := r.backend.View(func(tx *badger.Txn) error {
		item, err := tx.Get(makeDocumentNameKey(documentName))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return storage.ErrNotFound
			}
			return err
		}
		return item.Value(func(val []byte) error {
			id, err = storage.UnmarshalID(val)
			return err
		})
	})
	if err != nil {
		return nil, err
	}
	return r.GetDocument(ctx, id)
}

// ListDocuments scans the catalog prefix and returns entries for the store,
// ordered by ingestion time ascending. The catalog stays small (one entry per
// uploaded file), so ordering is done in memory instead of a date index.
func (r *DocumentRepository) ListDocuments(ctx context.Context, storeName string) ([]*core.DocumentRecord, error) {
	if r.backend.IsClosed() {
		return nil, storage.ErrStorageClosed
	}

	var records []*core.DocumentRecord
	err := r.backend.View(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(documentRecordPrefix + ":")
		it := tx.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				record, err := storage.UnmarshalDocumentRecord(val)
				if err != nil {
					return err
				}
				if storeName == "" || record.StoreName == storeName {
					records = append(records, record)
				}
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].IngestedAt.Before(records[j].IngestedAt)
	})
	return records, nil
}

// DeleteDocument removes a catalog entry and its name index.
func (r *DocumentRepository) DeleteDocument(ctx context.Context, id core.ID) error {
	if r.backend.IsClosed() {
		return storage.ErrStorageClosed
	}

	return r.backend.Update(func(tx *badger.Txn) error {
		key := makeDocumentRecordKey(id)
		item, err := tx.Get(key)
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return storage.ErrNotFound
			}
			return err
		}

		var documentName string
		err = item.Value(func(val []byte) error {
			record, err := storage.UnmarshalDocumentRecord(val)
			if err != nil {
				return err
			}
			documentName = record.DocumentName
			return nil
		})
		if err != nil {
			return err
		}

		if err := tx.Delete(makeDocumentNameKey(documentName)); err != nil {
			return err
		}
		return tx.Delete(key)
	})
}

// Close is a no-op; the shared backend owns the database lifecycle.
func (r *DocumentRepository) Close() error {
	return nil
}
