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

import "errors"

// Import error kinds. Components wrap the underlying cause with one of these
// so callers can classify failures with errors.Is.
var (
	// ErrAlreadyExists indicates a bundle already exists where one was to be created.
	ErrAlreadyExists = errors.New("already exists")

	// ErrIO indicates a copy, read or write failure on an artifact.
	ErrIO = errors.New("i/o failure")

	// ErrMalformedModel indicates the model directory is unreadable or inconsistent.
	ErrMalformedModel = errors.New("malformed model")

	// ErrComputation indicates a statistics computation could not produce results.
	ErrComputation = errors.New("computation error")

	// ErrStoreAccess indicates a record store could not be opened, written or closed.
	ErrStoreAccess = errors.New("store access error")
)

// Domain validation errors
var (
	// ErrInvalidRequest indicates an ImportRequest failed validation.
	ErrInvalidRequest = errors.New("invalid import request")

	// ErrInvalidBundleName indicates the bundle name is not a single path element.
	ErrInvalidBundleName = errors.New("invalid bundle name")

	// ErrInvalidRecord indicates a model record failed validation.
	ErrInvalidRecord = errors.New("invalid model record")

	// ErrNegativeIndex indicates a topic or document index below zero.
	ErrNegativeIndex = errors.New("index cannot be negative")

	// ErrEmptyTerm indicates a term weight without a term.
	ErrEmptyTerm = errors.New("term cannot be empty")

	// ErrInvalidWeight indicates a weight that is negative, NaN or infinite.
	ErrInvalidWeight = errors.New("weight must be a finite non-negative number")
)
