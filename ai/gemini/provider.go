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

package gemini

import (
	"log/slog"

	"github.com/tessero/ragdesk/ai"
)

// Provider implements ai.Provider over the Generative Language REST API.
// All services share one pooled HTTP client.
type Provider struct {
	config     *ai.Config
	fileSearch *FileSearchService
	generator  *GeneratorService
	logger     *slog.Logger
}

// NewProvider creates a provider for the hosted service. The config is
// validated and normalized before use; a missing API key fails here, before
// any remote call is attempted.
//
// Returns ai.Provider interface (not *Provider) to enforce abstraction.
func NewProvider(config *ai.Config) (ai.Provider, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	logger := slog.Default().With("component", "gemini-provider")
	c := newClient(config, logger)

	return &Provider{
		config:     config,
		fileSearch: &FileSearchService{client: c, logger: logger},
		generator:  &GeneratorService{client: c, logger: logger},
		logger:     logger,
	}, nil
}

// FileSearch returns the store and document management service.
func (p *Provider) FileSearch() ai.FileSearch {
	return p.fileSearch
}

// Generator returns the grounded generation service.
func (p *Provider) Generator() ai.Generator {
	return p.generator
}

// Close releases idle HTTP connections held by the shared client.
func (p *Provider) Close() error {
	p.fileSearch.client.http.CloseIdleConnections()
	return nil
}
