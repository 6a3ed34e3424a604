package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/tessero/ragdesk/ai"
	"github.com/tessero/ragdesk/storage"
)

// EnvStore is the environment variable holding an explicit store override.
const EnvStore = "RAGDESK_STORE"

// DefaultDisplayName labels stores created by the manager.
const DefaultDisplayName = "ragdesk-store"

// Manager owns the active store identifier for a session. It is the sole
// reader and writer of the persisted value.
type Manager struct {
	svc         ai.FileSearch
	repo        storage.SessionRepository
	override    string
	displayName string
	logger      *slog.Logger

	mu      sync.Mutex
	current string
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager) error

// WithOverride pins the active store to an explicit identifier. An override
// wins over any persisted value and is never written back to the repository.
func WithOverride(storeName string) ManagerOption {
	return func(m *Manager) error {
		m.override = storeName
		return nil
	}
}

// WithDisplayName labels stores created by the manager.
// Default is DefaultDisplayName.
func WithDisplayName(displayName string) ManagerOption {
	return func(m *Manager) error {
		if displayName != "" {
			m.displayName = displayName
		}
		return nil
	}
}

// WithManagerLogger sets a custom logger.
// Default is slog.Default().
func WithManagerLogger(logger *slog.Logger) ManagerOption {
	return func(m *Manager) error {
		if logger == nil {
			logger = slog.Default()
		}
		m.logger = logger
		return nil
	}
}

// NewManager creates a store lifecycle manager over the given service and
// repository.
func NewManager(svc ai.FileSearch, repo storage.SessionRepository, opts ...ManagerOption) (*Manager, error) {
	if svc == nil {
		return nil, ErrServiceRequired
	}
	if repo == nil {
		return nil, ErrRepositoryRequired
	}

	m := &Manager{
		svc:         svc,
		repo:        repo,
		displayName: DefaultDisplayName,
		logger:      slog.Default().With("component", "session-manager"),
	}

	for _, opt := range opts {
		if err := opt(m); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// Current returns the active store identifier, resolving it on first use.
// Override wins over the persisted identifier; with neither present a new
// store is created and its identifier persisted.
func (m *Manager) Current(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current != "" {
		return m.current, nil
	}

	if m.override != "" {
		m.logger.Debug("using store override", "store", m.override)
		m.current = m.override
		return m.current, nil
	}

	persisted, err := m.repo.ActiveStore(ctx)
	if err == nil && persisted != "" {
		m.logger.Debug("using persisted store", "store", persisted)
		m.current = persisted
		return m.current, nil
	}
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return "", fmt.Errorf("reading persisted store: %w", err)
	}

	return m.createAndPersist(ctx)
}

// Reset creates a fresh store, persists its identifier, and replaces the
// in-memory handle. The returned identifier always differs from the prior
// one.
func (m *Manager) Reset(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.createAndPersist(ctx)
}

// createAndPersist must be called with the mutex held.
func (m *Manager) createAndPersist(ctx context.Context) (string, error) {
	store, err := m.svc.CreateStore(ctx, m.displayName)
	if err != nil {
		return "", fmt.Errorf("creating store: %w", err)
	}

	if err := m.repo.SetActiveStore(ctx, store.Name); err != nil {
		return "", fmt.Errorf("persisting store %s: %w", store.Name, err)
	}

	m.logger.Info("created store", "store", store.Name)
	m.current = store.Name
	return m.current, nil
}
