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

package badger

import (
	"context"

	"github.com/poiesic/termite/core"
	"github.com/poiesic/termite/storage"
)

// CorpusStatsRepository implements storage.CorpusStatsRepository for BadgerDB.
type CorpusStatsRepository struct {
	backend *Backend
	owned   bool
}

var _ storage.CorpusStatsRepository = (*CorpusStatsRepository)(nil)

// NewCorpusStatsRepository creates a CorpusStatsRepository on a shared backend.
func NewCorpusStatsRepository(backend *Backend) *CorpusStatsRepository {
	return &CorpusStatsRepository{backend: backend}
}

// OpenCorpusStatsRepository opens the corpus statistics store at path.
// Closing the repository closes its backend.
func OpenCorpusStatsRepository(path string, opts ...BackendOption) (*CorpusStatsRepository, error) {
	backend, err := OpenBackend(path, false, opts...)
	if err != nil {
		return nil, err
	}
	return &CorpusStatsRepository{backend: backend, owned: true}, nil
}

// Close releases the backend if the repository owns it.
func (r *CorpusStatsRepository) Close() error {
	if r.owned {
		return r.backend.Close()
	}
	return nil
}

// PutCorpusStats persists all corpus statistics and seals the store.
func (r *CorpusStatsRepository) PutCorpusStats(ctx context.Context, docs []core.DocStats, terms []core.CorpusTermStats, pairs []core.Cooccurrence) error {
	return r.backend.writeOnce(func(set func(k, v []byte) error) error {
		for _, d := range docs {
			if err := set(makeCorpusDocKey(d.Index), storage.Encode(core.DocStatsMUS, d)); err != nil {
				return err
			}
		}
		for _, t := range terms {
			if err := set(makeCorpusTermKey(t.Term), storage.Encode(core.CorpusTermStatsMUS, t)); err != nil {
				return err
			}
		}
		for _, p := range pairs {
			if err := set(makeCorpusPairKey(p.TermA, p.TermB), storage.Encode(core.CooccurrenceMUS, p)); err != nil {
				return err
			}
		}
		return ctx.Err()
	})
}

// DocStats returns document statistics ordered by document index.
func (r *CorpusStatsRepository) DocStats(ctx context.Context) ([]core.DocStats, error) {
	return collect[core.DocStats](ctx, r.backend, corpusDocPrefix, core.DocStatsMUS)
}

// TermStats returns term statistics ordered by term ID.
func (r *CorpusStatsRepository) TermStats(ctx context.Context) ([]core.CorpusTermStats, error) {
	return collect[core.CorpusTermStats](ctx, r.backend, corpusTermPrefix, core.CorpusTermStatsMUS)
}

// Cooccurrences returns sentence co-occurrence records.
func (r *CorpusStatsRepository) Cooccurrences(ctx context.Context) ([]core.Cooccurrence, error) {
	return collect[core.Cooccurrence](ctx, r.backend, corpusPairPrefix, core.CooccurrenceMUS)
}

// Sealed reports whether statistics have been written.
func (r *CorpusStatsRepository) Sealed(ctx context.Context) (bool, error) {
	return r.backend.IsSealed()
}

// ModelStatsRepository implements storage.ModelStatsRepository for BadgerDB.
type ModelStatsRepository struct {
	backend *Backend
	owned   bool
}

var _ storage.ModelStatsRepository = (*ModelStatsRepository)(nil)

// NewModelStatsRepository creates a ModelStatsRepository on a shared backend.
func NewModelStatsRepository(backend *Backend) *ModelStatsRepository {
	return &ModelStatsRepository{backend: backend}
}

// OpenModelStatsRepository opens the model statistics store at path.
// Closing the repository closes its backend.
func OpenModelStatsRepository(path string, opts ...BackendOption) (*ModelStatsRepository, error) {
	backend, err := OpenBackend(path, false, opts...)
	if err != nil {
		return nil, err
	}
	return &ModelStatsRepository{backend: backend, owned: true}, nil
}

// Close releases the backend if the repository owns it.
func (r *ModelStatsRepository) Close() error {
	if r.owned {
		return r.backend.Close()
	}
	return nil
}

// PutModelStats persists all model statistics and seals the store.
func (r *ModelStatsRepository) PutModelStats(ctx context.Context, topics []core.TopicStats, terms []core.ModelTermStats) error {
	return r.backend.writeOnce(func(set func(k, v []byte) error) error {
		for _, t := range topics {
			if err := set(makeModelTopicKey(t.Topic), storage.Encode(core.TopicStatsMUS, t)); err != nil {
				return err
			}
		}
		for _, t := range terms {
			if err := set(makeModelTermKey(t.Term), storage.Encode(core.ModelTermStatsMUS, t)); err != nil {
				return err
			}
		}
		return ctx.Err()
	})
}

// TopicStats returns topic statistics ordered by topic index.
func (r *ModelStatsRepository) TopicStats(ctx context.Context) ([]core.TopicStats, error) {
	return collect[core.TopicStats](ctx, r.backend, modelTopicPrefix, core.TopicStatsMUS)
}

// TermStats returns term statistics ordered by term ID.
func (r *ModelStatsRepository) TermStats(ctx context.Context) ([]core.ModelTermStats, error) {
	return collect[core.ModelTermStats](ctx, r.backend, modelTermPrefix, core.ModelTermStatsMUS)
}

// Sealed reports whether statistics have been written.
func (r *ModelStatsRepository) Sealed(ctx context.Context) (bool, error) {
	return r.backend.IsSealed()
}

// collect decodes every value under prefix.
func collect[T any](ctx context.Context, b *Backend, prefix string, s storage.Serializer[T]) ([]T, error) {
	var out []T
	err := b.ForEachPrefix(ctx, []byte(prefix), func(_, val []byte) error {
		v, err := storage.Decode(s, val)
		if err != nil {
			return err
		}
		out = append(out, v)
		return nil
	})
	return out, err
}
