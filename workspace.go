// Copyright 2025 Tessero
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package ragdesk wires the remote file-search services, the local document
// catalog, and the session state into one workspace.
package ragdesk

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/tessero/ragdesk/ai"
	"github.com/tessero/ragdesk/ai/gemini"
	"github.com/tessero/ragdesk/ingestion"
	"github.com/tessero/ragdesk/search"
	"github.com/tessero/ragdesk/session"
	"github.com/tessero/ragdesk/storage"
	"github.com/tessero/ragdesk/storage/badger"
	"github.com/tessero/ragdesk/storage/statefile"
)

// Workspace aggregates the services of one session: the remote provider, the
// local document catalog, and the store lifecycle manager. Construct it once
// at session start and pass its parts explicitly to consumers.
type Workspace struct {
	backend     *badger.Backend
	docRepo     storage.DocumentRepository
	sessionRepo storage.SessionRepository
	provider    ai.Provider
	manager     *session.Manager
	logger      *slog.Logger
}

// WorkspaceOption configures a Workspace.
type WorkspaceOption func(*workspaceOptions)

type workspaceOptions struct {
	aiConfig      *ai.Config
	provider      ai.Provider
	sessionRepo   storage.SessionRepository
	storeOverride string
	displayName   string
	inMemory      bool
}

// WithAIConfig replaces the environment-derived provider configuration.
func WithAIConfig(config *ai.Config) WorkspaceOption {
	return func(o *workspaceOptions) {
		o.aiConfig = config
	}
}

// WithProvider injects a pre-built provider instead of constructing one from
// the configuration.
func WithProvider(provider ai.Provider) WorkspaceOption {
	return func(o *workspaceOptions) {
		o.provider = provider
	}
}

// WithSessionRepository replaces the default store-identifier persistence.
func WithSessionRepository(repo storage.SessionRepository) WorkspaceOption {
	return func(o *workspaceOptions) {
		o.sessionRepo = repo
	}
}

// WithStoreOverride pins the active store, taking precedence over both the
// persisted identifier and the RAGDESK_STORE environment variable.
func WithStoreOverride(storeName string) WorkspaceOption {
	return func(o *workspaceOptions) {
		o.storeOverride = storeName
	}
}

// WithStoreDisplayName labels stores created for this workspace.
func WithStoreDisplayName(displayName string) WorkspaceOption {
	return func(o *workspaceOptions) {
		o.displayName = displayName
	}
}

// WithInMemoryStorage keeps all local state in memory. For tests.
func WithInMemoryStorage() WorkspaceOption {
	return func(o *workspaceOptions) {
		o.inMemory = true
	}
}

// NewWorkspace opens the local state under dataDir and connects the remote
// provider. The store identifier is kept in a single-line text file next to
// the catalog; the catalog itself lives in a badger database.
func NewWorkspace(dataDir string, opts ...WorkspaceOption) (*Workspace, error) {
	options := &workspaceOptions{
		aiConfig:      ai.FromEnv(),
		storeOverride: os.Getenv(session.EnvStore),
		displayName:   session.DefaultDisplayName,
	}
	for _, opt := range opts {
		opt(options)
	}

	catalogPath := ""
	if !options.inMemory {
		if err := os.MkdirAll(dataDir, 0o755); err != nil {
			return nil, err
		}
		catalogPath = filepath.Join(dataDir, "catalog")
	}

	backend, err := badger.OpenBackend(catalogPath, options.inMemory)
	if err != nil {
		return nil, err
	}

	docRepo, err := badger.NewDocumentRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	sessionRepo := options.sessionRepo
	if sessionRepo == nil {
		if options.inMemory {
			sessionRepo, err = badger.NewSessionRepository(backend)
		} else {
			sessionRepo, err = statefile.NewSessionRepository(filepath.Join(dataDir, "store_name.txt"))
		}
		if err != nil {
			docRepo.Close()
			backend.Close()
			return nil, err
		}
	}

	provider := options.provider
	if provider == nil {
		provider, err = gemini.NewProvider(options.aiConfig)
		if err != nil {
			sessionRepo.Close()
			docRepo.Close()
			backend.Close()
			return nil, err
		}
	}

	manager, err := session.NewManager(provider.FileSearch(), sessionRepo,
		session.WithOverride(options.storeOverride),
		session.WithDisplayName(options.displayName),
	)
	if err != nil {
		provider.Close()
		sessionRepo.Close()
		docRepo.Close()
		backend.Close()
		return nil, err
	}

	return &Workspace{
		backend:     backend,
		docRepo:     docRepo,
		sessionRepo: sessionRepo,
		provider:    provider,
		manager:     manager,
		logger:      slog.Default(),
	}, nil
}

// Close releases the provider and the local storage.
func (w *Workspace) Close() error {
	if err := w.provider.Close(); err != nil {
		w.logger.Error("error closing provider", "err", err)
	}

	if err := w.sessionRepo.Close(); err != nil {
		w.logger.Error("error closing session repository", "err", err)
		return err
	}
	if err := w.docRepo.Close(); err != nil {
		w.logger.Error("error closing document catalog", "err", err)
		return err
	}
	if err := w.backend.Close(); err != nil {
		w.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

// Provider returns the remote service provider.
func (w *Workspace) Provider() ai.Provider {
	return w.provider
}

// Catalog returns the local catalog of ingested documents.
func (w *Workspace) Catalog() storage.DocumentRepository {
	return w.docRepo
}

// Stores returns the store lifecycle manager.
func (w *Workspace) Stores() *session.Manager {
	return w.manager
}

// NewIngestionPipeline creates a pipeline that records successful ingestions
// in the workspace catalog.
func (w *Workspace) NewIngestionPipeline(opts ...ingestion.Option) (*ingestion.Pipeline, error) {
	opts = append([]ingestion.Option{ingestion.WithCatalog(w.docRepo)}, opts...)
	return ingestion.NewPipeline(w.provider.FileSearch(), opts...)
}

// NewEngine creates a query engine scoped to the active store, resolving the
// store first if the session does not have one yet.
func (w *Workspace) NewEngine(ctx context.Context, opts ...search.Option) (*search.Engine, error) {
	storeName, err := w.manager.Current(ctx)
	if err != nil {
		return nil, err
	}
	return search.NewEngine(w.provider.Generator(), []string{storeName}, opts...)
}
