package ingestion

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/tessero/ragdesk/ai"
	"github.com/tessero/ragdesk/core"
	"github.com/tessero/ragdesk/storage"
)

// Pipeline turns "caller supplies a file" into "document is active and safe
// to query" or exactly one well-defined failure. There is no half-ingested
// state left for the caller to clean up: any polling-stage failure aborts the
// whole attempt.
type Pipeline struct {
	svc     ai.FileSearch
	poller  *Poller
	catalog storage.DocumentRepository
	pool    *ants.Pool
	logger  *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoller replaces the default poller, e.g. to tune timeout and interval.
func WithPoller(poller *Poller) Option {
	return func(p *Pipeline) error {
		if poller == nil {
			return ErrPollerRequired
		}
		p.poller = poller
		return nil
	}
}

// WithCatalog records every successful ingestion in the local catalog.
// Without a catalog the pipeline still works; nothing is recorded locally.
func WithCatalog(catalog storage.DocumentRepository) Option {
	return func(p *Pipeline) error {
		p.catalog = catalog
		return nil
	}
}

// WithPoolSize sets the worker pool size for batch ingestion.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}

		if p.pool != nil {
			p.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		p.pool = pool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates an ingestion pipeline over the given file-search
// service.
func NewPipeline(svc ai.FileSearch, opts ...Option) (*Pipeline, error) {
	if svc == nil {
		return nil, ErrFileSearchRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		svc:    svc,
		pool:   pool,
		logger: slog.Default(),
	}

	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}

	if p.poller == nil {
		poller, err := NewPoller(svc, WithPollerLogger(p.logger))
		if err != nil {
			p.Release()
			return nil, err
		}
		p.poller = poller
	}

	return p, nil
}

// Release frees the batch worker pool.
func (p *Pipeline) Release() {
	if p.pool != nil {
		p.pool.Release()
	}
}

// IngestOptions holds optional parameters for ingestion.
type IngestOptions struct {
	// MIMEType overrides MIME resolution when set.
	MIMEType string

	// DisplayName overrides the document display name.
	// Default is the file's base name.
	DisplayName string

	// Monitor receives progress callbacks. Optional.
	Monitor Monitor
}

// Ingest uploads one file into the store and blocks until the resulting
// document is active. The operation wait always reaches a terminal state
// before the document wait begins; a document that was never accepted is
// never queried.
func (p *Pipeline) Ingest(ctx context.Context, storeName, path string, opts *IngestOptions) (*core.DocumentRecord, error) {
	if opts == nil {
		opts = &IngestOptions{}
	}
	monitor := opts.Monitor
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		monitor.Failed(path, err)
		return nil, err
	}

	displayName := opts.DisplayName
	if displayName == "" {
		displayName = filepath.Base(path)
	}
	mimeType := ResolveMIMEType(path, opts.MIMEType, data)

	monitor.UploadStarted(path)
	p.logger.Info("submitting upload", "store", storeName, "path", path, "mime", mimeType)

	op, err := p.svc.Upload(ctx, storeName, bytes.NewReader(data), displayName, mimeType)
	if err != nil {
		monitor.Failed(path, err)
		return nil, err
	}
	monitor.UploadAccepted(path, op.Name)

	documentName, err := p.poller.WaitForUpload(ctx, op)
	if err != nil {
		monitor.Failed(path, err)
		return nil, err
	}
	monitor.DocumentCreated(path, documentName)
	p.logger.Info("upload complete, waiting for processing", "document", documentName)

	if err := p.poller.WaitForActive(ctx, documentName); err != nil {
		monitor.Failed(path, err)
		return nil, err
	}
	monitor.DocumentActive(path, documentName)

	record := &core.DocumentRecord{
		StoreName:    storeName,
		DocumentName: documentName,
		DisplayName:  displayName,
		SourcePath:   path,
		MIMEType:     mimeType,
		SizeBytes:    int64(len(data)),
		State:        core.DocumentStateActive,
		IngestedAt:   time.Now().UTC(),
	}

	if p.catalog != nil {
		catalogued, err := p.catalog.AddDocument(ctx, record)
		if err != nil {
			// The remote ingestion succeeded; a catalog write failure must
			// not turn it into a reported upload failure.
			p.logger.Warn("failed to catalog ingested document",
				"document", documentName, "err", err)
		} else {
			record = catalogued
		}
	}

	p.logger.Info("document ready for search", "document", documentName)
	return record, nil
}

// Result is the terminal outcome of one file in a batch ingestion.
type Result struct {
	Path   string
	Record *core.DocumentRecord
	Err    error
}

// IngestAll ingests several files concurrently over the worker pool.
// Results are returned in input order, one terminal outcome per path.
func (p *Pipeline) IngestAll(ctx context.Context, storeName string, paths []string, opts *IngestOptions) []Result {
	results := make([]Result, len(paths))
	var wg sync.WaitGroup

	for i, path := range paths {
		i, path := i, path
		wg.Add(1)
		err := p.pool.Submit(func() {
			defer wg.Done()
			record, err := p.Ingest(ctx, storeName, path, opts)
			results[i] = Result{Path: path, Record: record, Err: err}
		})
		if err != nil {
			wg.Done()
			results[i] = Result{Path: path, Err: err}
		}
	}

	wg.Wait()
	return results
}
