package main

import (
	"fmt"
	"io"
	"path/filepath"
	"sync"

	"github.com/tessero/ragdesk/ingestion"
)

// progressMonitor prints ingestion progress. Safe for concurrent use by the
// batch worker pool.
type progressMonitor struct {
	mu  sync.Mutex
	out io.Writer
}

var _ ingestion.Monitor = (*progressMonitor)(nil)

func newProgressMonitor(out io.Writer) *progressMonitor {
	return &progressMonitor{out: out}
}

func (m *progressMonitor) printf(format string, args ...any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	fmt.Fprintf(m.out, format, args...)
}

func (m *progressMonitor) UploadStarted(path string) {
	m.printf("uploading %s ...\n", filepath.Base(path))
}

func (m *progressMonitor) UploadAccepted(path, operationName string) {
	m.printf("%s accepted, waiting for completion\n", filepath.Base(path))
}

func (m *progressMonitor) DocumentCreated(path, documentName string) {
	m.printf("%s uploaded, processing\n", filepath.Base(path))
}

func (m *progressMonitor) DocumentActive(path, documentName string) {
	m.printf("%s is searchable\n", filepath.Base(path))
}

func (m *progressMonitor) Failed(path string, err error) {
	m.printf("%s failed: %v\n", filepath.Base(path), err)
}
