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

// Package storage provides the storage abstraction layer for termite bundles.
//
// This package defines repository interfaces that decouple the import pipeline
// from the record stores a bundle owns. Two backends implement them:
//
//   - sqlite: the corpus metadata store (corpus.db), which also holds the
//     availability registry
//   - badger: the normalized model store and both statistics stores
//
// # Architecture
//
// The storage layer follows the Repository pattern:
//
//   - CorpusRepository: corpus records plus the ModelRegistry
//   - ModelRepository: topics, term weights and document-topic weights
//   - CorpusStatsRepository: write-once corpus statistics
//   - ModelStatsRepository: write-once model statistics
//
// # Store Lifetime
//
// Every store is opened for the single stage that needs it and closed on
// every exit path. Use wraps that pattern:
//
//	err := storage.Use(func() (*sqlite.CorpusStore, error) {
//	    return sqlite.Open(path)
//	}, func(store *sqlite.CorpusStore) error {
//	    return store.AddModel(ctx, "corpus", "Text corpus")
//	})
//
// # Encoding
//
// Badger values are encoded with the MUS serializers in package core through
// Encode and Decode.
package storage
