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

// Package model defines how raw topic model output is read into normalized
// records. Each external format lives in its own subpackage.
package model

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"strings"

	"github.com/poiesic/termite/core"
)

// ErrUnknownFormat indicates no reader handles the requested model format.
var ErrUnknownFormat = errors.New("unknown model format")

// Reader yields the normalized records of a model directory.
//
// Records is lazy: files are read as the sequence is ranged over, and ranging
// may stop early. Errors are wrapped with core.ErrMalformedModel and end the
// sequence.
type Reader interface {
	// Format names the external format, e.g. "mallet".
	Format() string

	// Records yields topics, then term weights, then document-topic weights.
	Records(ctx context.Context, dir string) iter.Seq2[core.ModelRecord, error]
}

// Select returns the reader whose Format matches format, ignoring case.
func Select(format string, readers ...Reader) (Reader, error) {
	names := make([]string, 0, len(readers))
	for _, r := range readers {
		if strings.EqualFold(r.Format(), format) {
			return r, nil
		}
		names = append(names, r.Format())
	}
	return nil, fmt.Errorf("%w: %q (known: %s)", ErrUnknownFormat, format, strings.Join(names, ", "))
}
