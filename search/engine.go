package search

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/tessero/ragdesk/ai"
)

// Engine answers questions using only the documents in its retrieval scope.
// Construct one per session and reuse it; it holds no mutable state beyond
// the scope it was created with.
type Engine struct {
	gen    ai.Generator
	stores []string
	logger *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) error {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger
		return nil
	}
}

// NewEngine creates a query engine scoped to the given stores.
func NewEngine(gen ai.Generator, storeNames []string, opts ...Option) (*Engine, error) {
	if gen == nil {
		return nil, ErrGeneratorRequired
	}
	if len(storeNames) == 0 {
		return nil, ErrEmptyScope
	}

	e := &Engine{
		gen:    gen,
		stores: append([]string(nil), storeNames...),
		logger: slog.Default().With("component", "search-engine"),
	}

	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}

	return e, nil
}

// Stores returns the retrieval scope the engine was created with.
func (e *Engine) Stores() []string {
	return append([]string(nil), e.stores...)
}

// Ask submits the question verbatim as a single grounded generation request
// and returns the answer text.
func (e *Engine) Ask(ctx context.Context, question string) (string, error) {
	if strings.TrimSpace(question) == "" {
		return "", ErrEmptyQuestion
	}

	e.logger.Debug("asking grounded question", "stores", len(e.stores))

	answer, err := e.gen.GenerateText(ctx, question, e.stores)
	if err != nil {
		return "", &GenerationError{Op: "question answering", Err: err}
	}
	return answer, nil
}

// Illustrate generates illustration images to accompany a drafted post.
// Returns the raw bytes of each image.
func (e *Engine) Illustrate(ctx context.Context, topic, tone string, count int) ([][]byte, error) {
	if strings.TrimSpace(topic) == "" {
		return nil, ErrEmptyTopic
	}
	if count < 1 {
		count = 1
	}

	prompt := fmt.Sprintf(
		"Simple social media illustration for this topic: %s. Tone: %s. "+
			"Style: clean, readable, minimal text, flat colors.",
		topic, tone,
	)

	images, err := e.gen.GenerateImages(ctx, prompt, count)
	if err != nil {
		return nil, &GenerationError{Op: "image generation", Err: err}
	}
	return images, nil
}
