// Copyright 2025 Poiesic Systems
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
	"math"
	"path/filepath"
	"strings"
)

// ValidateRequest validates an ImportRequest.
//
// Validation rules:
//   - Name must be a single, non-empty path element (no separators, not "." or "..")
//   - ModelPath, CorpusPath and DatabasePath must not be empty
//
// NOT validated:
//   - existence of the source paths (checked by the stager when it copies them)
func ValidateRequest(req ImportRequest) error {
	if err := ValidateBundleName(req.Name); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}
	if req.ModelPath == "" {
		return fmt.Errorf("%w: model path is required", ErrInvalidRequest)
	}
	if req.CorpusPath == "" {
		return fmt.Errorf("%w: corpus path is required", ErrInvalidRequest)
	}
	if req.DatabasePath == "" {
		return fmt.Errorf("%w: database path is required", ErrInvalidRequest)
	}
	return nil
}

// ValidateBundleName checks that name can be used as a directory under the apps root.
func ValidateBundleName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name is empty", ErrInvalidBundleName)
	}
	if name == "." || name == ".." || strings.ContainsAny(name, `/\`) || filepath.Base(name) != name {
		return fmt.Errorf("%w: %q", ErrInvalidBundleName, name)
	}
	return nil
}

// ValidateModelRecord validates a normalized model record.
//
// Validation rules:
//   - topic and document indexes must not be negative
//   - term weights must name a term
//   - weights and alphas must be finite and non-negative
func ValidateModelRecord(record ModelRecord) error {
	switch r := record.(type) {
	case Topic:
		if r.Index < 0 {
			return fmt.Errorf("%w: topic %d: %w", ErrInvalidRecord, r.Index, ErrNegativeIndex)
		}
		if !validWeight(r.Alpha) {
			return fmt.Errorf("%w: topic %d alpha: %w", ErrInvalidRecord, r.Index, ErrInvalidWeight)
		}
	case TermWeight:
		if r.Topic < 0 {
			return fmt.Errorf("%w: term weight topic %d: %w", ErrInvalidRecord, r.Topic, ErrNegativeIndex)
		}
		if r.Term == "" {
			return fmt.Errorf("%w: topic %d: %w", ErrInvalidRecord, r.Topic, ErrEmptyTerm)
		}
		if !validWeight(r.Weight) {
			return fmt.Errorf("%w: term %q: %w", ErrInvalidRecord, r.Term, ErrInvalidWeight)
		}
	case DocTopic:
		if r.DocIndex < 0 || r.Topic < 0 {
			return fmt.Errorf("%w: doc %d topic %d: %w", ErrInvalidRecord, r.DocIndex, r.Topic, ErrNegativeIndex)
		}
		if !validWeight(r.Weight) {
			return fmt.Errorf("%w: doc %d topic %d: %w", ErrInvalidRecord, r.DocIndex, r.Topic, ErrInvalidWeight)
		}
	case nil:
		return fmt.Errorf("%w: record is nil", ErrInvalidRecord)
	default:
		return fmt.Errorf("%w: unknown record type %T", ErrInvalidRecord, record)
	}
	return nil
}

func validWeight(w float64) bool {
	return !math.IsNaN(w) && !math.IsInf(w, 0) && w >= 0
}
