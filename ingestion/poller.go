package ingestion

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/tessero/ragdesk/ai"
	"github.com/tessero/ragdesk/core"
)

const (
	// DefaultTimeout bounds one whole wait for a terminal state.
	DefaultTimeout = 300 * time.Second

	// DefaultInterval is the pause between status fetches.
	DefaultInterval = 2 * time.Second
)

// Poller blocks until a remote operation or document reaches a terminal
// state, fetching status once per tick. Exactly one terminal outcome is
// produced per wait: success, a remote-reported failure, a malformed
// completion, a transient fetch failure, or ErrPollTimeout.
type Poller struct {
	svc              ai.FileSearch
	timeout          time.Duration
	interval         time.Duration
	transientRetries int
	logger           *slog.Logger

	// Injectable for tests; real clock and context-aware sleep by default.
	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

// PollerOption configures a Poller.
type PollerOption func(*Poller) error

// WithTimeout bounds each wait. Default is 300 seconds.
func WithTimeout(timeout time.Duration) PollerOption {
	return func(p *Poller) error {
		if timeout <= 0 {
			return fmt.Errorf("timeout must be positive, got %v", timeout)
		}
		p.timeout = timeout
		return nil
	}
}

// WithInterval sets the pause between status fetches. Default is 2 seconds.
func WithInterval(interval time.Duration) PollerOption {
	return func(p *Poller) error {
		if interval <= 0 {
			return fmt.Errorf("interval must be positive, got %v", interval)
		}
		p.interval = interval
		return nil
	}
}

// WithTransientRetries sets how many consecutive failed status fetches are
// tolerated before the wait gives up with a TransientPollError. Default is 0:
// the first fetch failure ends the wait.
func WithTransientRetries(n int) PollerOption {
	return func(p *Poller) error {
		if n < 0 {
			n = 0
		}
		p.transientRetries = n
		return nil
	}
}

// WithPollerLogger sets a custom logger.
// Default is slog.Default().
func WithPollerLogger(logger *slog.Logger) PollerOption {
	return func(p *Poller) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPoller creates a poller over the given file-search service.
func NewPoller(svc ai.FileSearch, opts ...PollerOption) (*Poller, error) {
	if svc == nil {
		return nil, ErrFileSearchRequired
	}

	p := &Poller{
		svc:      svc,
		timeout:  DefaultTimeout,
		interval: DefaultInterval,
		logger:   slog.Default(),
		now:      time.Now,
		sleep:    sleepContext,
	}

	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, err
		}
	}

	return p, nil
}

// sleepContext pauses for d or until the context is cancelled.
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// WaitForUpload blocks until the upload operation completes, then returns the
// created document's resource name. The operation handed in by Upload is
// inspected first; further status is fetched once per tick.
func (p *Poller) WaitForUpload(ctx context.Context, op *core.Operation) (string, error) {
	if op == nil {
		return "", ErrOperationRequired
	}

	start := p.now()
	current := op
	transientFailures := 0

	for {
		switch current.Status() {
		case core.OperationSucceeded:
			return current.DocumentName, nil
		case core.OperationFailed:
			return "", &UploadError{
				OperationName: op.Name,
				Code:          current.Error.Code,
				Message:       current.Error.Message,
			}
		case core.OperationMalformed:
			return "", fmt.Errorf("%w: %s", ErrMalformedCompletion, op.Name)
		}

		if p.now().Sub(start) >= p.timeout {
			return "", fmt.Errorf("%w: upload %s", ErrPollTimeout, op.Name)
		}

		if err := p.sleep(ctx, p.interval); err != nil {
			return "", err
		}

		next, err := p.svc.GetOperation(ctx, op.Name)
		if err != nil {
			transientFailures++
			if transientFailures > p.transientRetries {
				return "", &TransientPollError{Err: err}
			}
			p.logger.Warn("operation status fetch failed, continuing to poll",
				"operation", op.Name, "failures", transientFailures, "err", err)
			continue
		}
		transientFailures = 0
		current = next
	}
}

// WaitForActive blocks until the document reaches a terminal processing
// state. The first fetch defines the initial state; acceptance and
// processing are independent remote phases, so only the document name is
// needed.
func (p *Poller) WaitForActive(ctx context.Context, documentName string) error {
	start := p.now()
	transientFailures := 0

	for {
		doc, err := p.svc.GetDocument(ctx, documentName)
		if err != nil {
			transientFailures++
			if transientFailures > p.transientRetries {
				return &TransientPollError{Err: err}
			}
			p.logger.Warn("document status fetch failed, continuing to poll",
				"document", documentName, "failures", transientFailures, "err", err)
		} else {
			transientFailures = 0
			switch doc.State {
			case core.DocumentStateActive:
				return nil
			case core.DocumentStateFailed:
				return &ProcessingError{DocumentName: documentName}
			}
		}

		if p.now().Sub(start) >= p.timeout {
			return fmt.Errorf("%w: document %s", ErrPollTimeout, documentName)
		}

		if err := p.sleep(ctx, p.interval); err != nil {
			return err
		}
	}
}
