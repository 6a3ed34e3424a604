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

package ai

import "errors"

var (
	// ErrMissingAPIKey is returned when no API credential is configured.
	// This is fatal: a session cannot start without one.
	ErrMissingAPIKey = errors.New("ai config: API key is required (set " + EnvAPIKey + ")")

	// ErrMissingBaseURL is returned when the service endpoint is empty.
	ErrMissingBaseURL = errors.New("ai config: BaseURL is required")

	// ErrMissingTextModel is returned when no text model is configured.
	ErrMissingTextModel = errors.New("ai config: TextModel is required")
)
