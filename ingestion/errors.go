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

package ingestion

import (
	"errors"
	"fmt"
)

var (
	// ErrFileSearchRequired is returned when a file-search service is not provided.
	ErrFileSearchRequired = errors.New("file search service required")

	// ErrPollerRequired is returned when a nil poller is provided.
	ErrPollerRequired = errors.New("poller required")

	// ErrOperationRequired is returned when a nil operation is passed to the poller.
	ErrOperationRequired = errors.New("operation required")

	// ErrPollTimeout indicates a bounded wait elapsed before the remote side
	// reached a terminal state. The attempt is over; re-invoking the pipeline
	// is safe.
	ErrPollTimeout = errors.New("timed out waiting for remote operation")

	// ErrMalformedCompletion indicates the remote side reported a completed
	// operation carrying neither an error nor a document name. This is a
	// contract violation by the service, distinct from an upload failure.
	ErrMalformedCompletion = errors.New("operation completed without error or document name")
)

// UploadError is a remote-reported upload failure. Terminal for the attempt.
type UploadError struct {
	OperationName string
	Code          int
	Message       string
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("upload %s failed: %s (code %d)", e.OperationName, e.Message, e.Code)
}

// ProcessingError is a remote-reported document processing failure.
// Terminal for the attempt.
type ProcessingError struct {
	DocumentName string
}

func (e *ProcessingError) Error() string {
	return fmt.Sprintf("processing of document %s failed", e.DocumentName)
}

// TransientPollError wraps a failed status fetch during polling. It is not a
// statement about the operation itself, only about the fetch; callers decide
// whether to re-invoke the wait.
type TransientPollError struct {
	Err error
}

func (e *TransientPollError) Error() string {
	return fmt.Sprintf("status fetch failed during polling: %v", e.Err)
}

func (e *TransientPollError) Unwrap() error {
	return e.Err
}
