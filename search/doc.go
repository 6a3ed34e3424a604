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

// Package search answers questions grounded in the documents of one or more
// file-search stores.
//
// The Engine issues single generation requests scoped to its store names.
// Direct questions go through Ask unchanged. DraftPosts renders a structured
// social-post instruction from a template and submits it through the same
// path. Every remote failure is wrapped as a recoverable *GenerationError;
// the engine never retries on its own.
package search
