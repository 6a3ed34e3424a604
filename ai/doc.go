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

// Package ai provides abstractions for the remote file-search and generation
// services used by ragdesk.
//
// This package defines interfaces for remote operations including store and
// document management and grounded content generation. It follows the
// dependency inversion principle, allowing the ingestion pipeline, query
// engine and session manager to depend on abstractions rather than concrete
// implementations.
//
// # Design Principles
//
// The package is designed around three key interfaces:
//
//   - FileSearch: Store creation, uploads, operation and document status
//   - Generator: Grounded text generation and image generation
//   - Provider: Aggregates the services for convenient initialization
//
// # Implementation Packages
//
// The ai package includes two implementation sub-packages:
//
//   - ai/gemini: Production implementation over the Generative Language API
//   - ai/mock: Test doubles for unit testing without network access
//
// # Constructor Return Type Pattern
//
// Public constructors (gemini.NewProvider) return INTERFACE types to enforce
// abstraction and prevent accidental coupling to concrete implementations.
// Test utility constructors (mock.NewFileSearch, mock.NewGenerator) return
// CONCRETE types to enable test assertions and behavior injection via the
// mock's public fields.
//
// # Usage Example
//
//	cfg := ai.FromEnv()
//	provider, err := gemini.NewProvider(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer provider.Close()
//
//	store, err := provider.FileSearch().CreateStore(ctx, "local-rag-store")
package ai
