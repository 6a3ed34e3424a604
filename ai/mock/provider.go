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

package mock

import "github.com/tessero/ragdesk/ai"

// MockProvider is a test double for ai.Provider.
// It aggregates mock file-search and generator instances.
type MockProvider struct {
	fileSearch *MockFileSearch
	generator  *MockGenerator
}

// NewMockProvider creates a new mock provider with default mock services.
//
// Returns ai.Provider interface for consistency with production constructors.
// Use GetMockFileSearch()/GetMockGenerator() to access concrete types for
// test assertions.
func NewMockProvider() ai.Provider {
	return &MockProvider{
		fileSearch: NewMockFileSearch(),
		generator:  NewMockGenerator(),
	}
}

// NewMockProviderWithServices creates a mock provider with custom mock services.
// This allows full control over the behavior of each service.
func NewMockProviderWithServices(fileSearch *MockFileSearch, generator *MockGenerator) ai.Provider {
	return &MockProvider{
		fileSearch: fileSearch,
		generator:  generator,
	}
}

// FileSearch returns the mock file-search service.
func (p *MockProvider) FileSearch() ai.FileSearch {
	return p.fileSearch
}

// Generator returns the mock generator.
func (p *MockProvider) Generator() ai.Generator {
	return p.generator
}

// Close is a no-op for mock provider.
func (p *MockProvider) Close() error {
	return nil
}

// GetMockFileSearch returns the underlying mock file-search service for test
// assertions.
func (p *MockProvider) GetMockFileSearch() *MockFileSearch {
	return p.fileSearch
}

// GetMockGenerator returns the underlying mock generator for test assertions.
func (p *MockProvider) GetMockGenerator() *MockGenerator {
	return p.generator
}
