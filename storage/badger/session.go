package badger

import (
	"context"
	"errors"
	"log/slog"

	"github.com/dgraph-io/badger/v4"
	"github.com/tessero/ragdesk/storage"
)

// SessionRepository implements storage.SessionRepository over BadgerDB.
type SessionRepository struct {
	backend *Backend
	logger  *slog.Logger
}

var _ storage.SessionRepository = (*SessionRepository)(nil)

// NewSessionRepository creates a session repository over an open backend.
//
// Returns storage.SessionRepository interface to enforce abstraction.
func NewSessionRepository(backend *Backend) (storage.SessionRepository, error) {
	if backend == nil {
		return nil, errors.New("backend required")
	}
	return &SessionRepository{
		backend: backend,
		logger:  slog.Default().With("component", "badger-session"),
	}, nil
}

// ActiveStore returns the persisted store identifier.
func (r *SessionRepository) ActiveStore(ctx context.Context) (string, error) {
	if r.backend.IsClosed() {
		return "", storage.ErrStorageClosed
	}

	var name string
	err := r.backend.View(func(tx *badger.Txn) error {
		item, err := tx.Get(makeSessionStoreKey())
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return storage.ErrNotFound
			}
			return err
		}
		return item.Value(func(val []byte) error {
			name = string(val)
			return nil
		})
	})
	if err != nil {
		return "", err
	}
	if name == "" {
		return "", storage.ErrNotFound
	}
	return name, nil
}

// SetActiveStore persists the store identifier.
func (r *SessionRepository) SetActiveStore(ctx context.Context, storeName string) error {
	if r.backend.IsClosed() {
		return storage.ErrStorageClosed
	}

	return r.backend.Update(func(tx *badger.Txn) error {
		return tx.Set(makeSessionStoreKey(), []byte(storeName))
	})
}

// Close is a no-op; the shared backend owns the database lifecycle.
func (r *SessionRepository) Close() error {
	return nil
}
