package mock

import (
	"context"

	"github.com/tessero/ragdesk/ai"
)

// MockGenerator is a test double for ai.Generator.
// It records the last prompt and retrieval scope for test assertions.
type MockGenerator struct {
	// GenerateTextFunc is called by GenerateText if set.
	GenerateTextFunc func(ctx context.Context, prompt string, storeNames []string) (string, error)

	// GenerateImagesFunc is called by GenerateImages if set.
	GenerateImagesFunc func(ctx context.Context, prompt string, count int) ([][]byte, error)

	// Response is the canned answer returned by the default GenerateText.
	Response string

	// LastPrompt holds the prompt of the most recent GenerateText call.
	LastPrompt string

	// LastStores holds the retrieval scope of the most recent GenerateText call.
	LastStores []string

	textCalls  int
	imageCalls int
}

var _ ai.Generator = (*MockGenerator)(nil)

// NewMockGenerator creates a mock generator with a canned answer.
// Note: Returns concrete type to allow test assertions.
func NewMockGenerator() *MockGenerator {
	return &MockGenerator{Response: "mock answer"}
}

// GenerateText records the call and returns the canned response unless
// GenerateTextFunc is set.
func (m *MockGenerator) GenerateText(ctx context.Context, prompt string, storeNames []string) (string, error) {
	m.textCalls++
	m.LastPrompt = prompt
	m.LastStores = storeNames

	if m.GenerateTextFunc != nil {
		return m.GenerateTextFunc(ctx, prompt, storeNames)
	}
	return m.Response, nil
}

// GenerateImages returns count empty payloads unless GenerateImagesFunc is set.
func (m *MockGenerator) GenerateImages(ctx context.Context, prompt string, count int) ([][]byte, error) {
	m.imageCalls++

	if m.GenerateImagesFunc != nil {
		return m.GenerateImagesFunc(ctx, prompt, count)
	}

	images := make([][]byte, count)
	for i := range images {
		images[i] = []byte{0x89, 0x50, 0x4e, 0x47} // PNG magic, enough for tests
	}
	return images, nil
}

// TextCalls returns how many times GenerateText was called.
func (m *MockGenerator) TextCalls() int { return m.textCalls }

// ImageCalls returns how many times GenerateImages was called.
func (m *MockGenerator) ImageCalls() int { return m.imageCalls }
