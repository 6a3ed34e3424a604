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

// Package storage provides the local persistence layer for ragdesk.
//
// This package defines repository interfaces that decouple persistence from
// business logic. Two concerns are persisted locally:
//
//   - SessionRepository: the identifier of the active file-search store,
//     read at session start and rewritten whenever a store is created or
//     reset. The session manager owns this value exclusively.
//   - DocumentRepository: a catalog of ingested documents (source path,
//     MIME type, remote resource name, last known processing state).
//
// # Implementations
//
//   - storage/badger: BadgerDB-backed implementation of both repositories,
//     with an in-memory mode for tests.
//   - storage/statefile: SessionRepository over a single-line text file,
//     compatible with a plain store_name.txt.
//
// # Constructor Return Type Pattern
//
// Public constructors return interface types to enforce abstraction:
//
//	repo, err := badger.NewDocumentRepository(backend)  // storage.DocumentRepository
//
// # Thread Safety
//
// All repository implementations must be thread-safe and support concurrent
// access from multiple goroutines.
package storage
