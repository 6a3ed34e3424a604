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

package core

import (
	"fmt"
	"time"
)

// ValidateDocumentRecord validates a DocumentRecord according to domain rules.
//
// Validation rules:
//   - StoreName must not be empty
//   - DocumentName must not be empty
//   - State must be a known DocumentState value
//   - IngestedAt must not be in the future
//
// NOT validated:
//   - Id (derived from DocumentName by the catalog)
//   - MIMEType and SizeBytes (informational, populated by the pipeline)
func ValidateDocumentRecord(record *DocumentRecord) error {
	if record == nil {
		return fmt.Errorf("%w: record is nil", ErrInvalidDocumentRecord)
	}

	if record.StoreName == "" {
		return fmt.Errorf("%w: %w", ErrInvalidDocumentRecord, ErrEmptyStoreName)
	}

	if record.DocumentName == "" {
		return fmt.Errorf("%w: %w", ErrInvalidDocumentRecord, ErrEmptyDocumentName)
	}

	if err := ValidateDocumentState(record.State); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDocumentRecord, err)
	}

	if !IsValidTimestamp(record.IngestedAt) {
		return fmt.Errorf("%w: %w", ErrInvalidDocumentRecord, ErrInvalidTimestamp)
	}

	return nil
}

// ValidateDocumentState validates that a DocumentState has a known value.
func ValidateDocumentState(state DocumentState) error {
	switch state {
	case DocumentStateUnspecified, DocumentStatePending, DocumentStateActive, DocumentStateFailed:
		return nil
	default:
		return fmt.Errorf("%w: %d", ErrInvalidDocumentState, state)
	}
}

// IsValidTimestamp reports whether a timestamp is not in the future.
// A small clock-skew allowance of one minute is tolerated.
func IsValidTimestamp(ts time.Time) bool {
	return !ts.After(time.Now().Add(time.Minute))
}
