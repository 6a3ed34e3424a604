// Package statefile persists the active store identifier as a single-line
// text file, compatible with a plain store_name.txt written by other tools.
package statefile

import (
	"context"
	"errors"
	"os"
	"strings"

	"github.com/tessero/ragdesk/storage"
)

// SessionRepository implements storage.SessionRepository over a one-line file.
type SessionRepository struct {
	path string
}

var _ storage.SessionRepository = (*SessionRepository)(nil)

// NewSessionRepository creates a session repository backed by the given file.
// The file does not need to exist yet.
//
// Returns storage.SessionRepository interface to enforce abstraction.
func NewSessionRepository(path string) (storage.SessionRepository, error) {
	if path == "" {
		return nil, errors.New("state file path required")
	}
	return &SessionRepository{path: path}, nil
}

// ActiveStore reads the persisted store identifier.
// A missing or empty file maps to storage.ErrNotFound.
func (r *SessionRepository) ActiveStore(ctx context.Context) (string, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", storage.ErrNotFound
		}
		return "", err
	}

	name := strings.TrimSpace(string(data))
	if name == "" {
		return "", storage.ErrNotFound
	}
	return name, nil
}

// SetActiveStore writes the store identifier, replacing the file contents.
func (r *SessionRepository) SetActiveStore(ctx context.Context, storeName string) error {
	return os.WriteFile(r.path, []byte(storeName+"\n"), 0o600)
}

// Close is a no-op for file-backed state.
func (r *SessionRepository) Close() error {
	return nil
}
