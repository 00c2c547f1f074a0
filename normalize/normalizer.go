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

// Package normalize converts a raw model directory into the internal model
// schema by draining a model.Reader into a storage.ModelRepository.
//
// Records are validated one at a time and written in batches, so memory use
// is bounded by the batch size rather than the model size. A failure leaves
// whatever batches were already flushed in the repository; the caller decides
// whether the store is usable.
package normalize

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/poiesic/termite/core"
	"github.com/poiesic/termite/model"
	"github.com/poiesic/termite/storage"
)

const (
	DefaultBatchSize      = 1000
	DefaultReportInterval = 10000
)

// Summary counts the records written by Normalize.
type Summary struct {
	Topics      int
	TermWeights int
	DocTopics   int
}

// Total returns the number of records written.
func (s Summary) Total() int {
	return s.Topics + s.TermWeights + s.DocTopics
}

// Normalizer streams model records into a repository.
type Normalizer struct {
	reader         model.Reader
	logger         *slog.Logger
	batchSize      int
	reportInterval int
}

// Option configures a Normalizer.
type Option func(*Normalizer)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(n *Normalizer) {
		if logger != nil {
			n.logger = logger
		}
	}
}

// WithBatchSize sets how many records of one kind are buffered before a write.
func WithBatchSize(size int) Option {
	return func(n *Normalizer) {
		if size > 0 {
			n.batchSize = size
		}
	}
}

// WithReportInterval sets how often progress is logged, in records.
func WithReportInterval(interval int) Option {
	return func(n *Normalizer) {
		if interval > 0 {
			n.reportInterval = interval
		}
	}
}

// NewNormalizer creates a Normalizer reading with reader.
func NewNormalizer(reader model.Reader, opts ...Option) (*Normalizer, error) {
	if reader == nil {
		return nil, ErrReaderRequired
	}
	n := &Normalizer{
		reader:         reader,
		logger:         slog.Default(),
		batchSize:      DefaultBatchSize,
		reportInterval: DefaultReportInterval,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n, nil
}

// Normalize reads the model in dir and writes it to repo.
// Reader and validation failures return core.ErrMalformedModel; write
// failures return core.ErrStoreAccess.
func (n *Normalizer) Normalize(ctx context.Context, dir string, repo storage.ModelRepository) (Summary, error) {
	if repo == nil {
		return Summary{}, ErrRepositoryRequired
	}

	b := &batch{repo: repo, size: n.batchSize}
	progress := NewProgressTracker(n.logger, "normalizing "+n.reader.Format()+" model", n.reportInterval)
	progress.Start()

	for rec, err := range n.reader.Records(ctx, dir) {
		if err != nil {
			return b.summary, readerError(ctx, err)
		}
		if err := ctx.Err(); err != nil {
			return b.summary, err
		}
		if err := core.ValidateModelRecord(rec); err != nil {
			return b.summary, fmt.Errorf("%w: %w", core.ErrMalformedModel, err)
		}
		if err := b.add(ctx, rec); err != nil {
			return b.summary, fmt.Errorf("%w: %w", core.ErrStoreAccess, err)
		}
		progress.Increment(1)
	}
	if err := b.flush(ctx); err != nil {
		return b.summary, fmt.Errorf("%w: %w", core.ErrStoreAccess, err)
	}
	progress.Finish()

	if b.summary.Topics == 0 {
		return b.summary, fmt.Errorf("%w: model has no topics", core.ErrMalformedModel)
	}
	n.logger.Debug("model normalized",
		"topics", b.summary.Topics,
		"term_weights", b.summary.TermWeights,
		"doc_topics", b.summary.DocTopics,
		"elapsed", progress.Elapsed())
	return b.summary, nil
}

func readerError(ctx context.Context, err error) error {
	if errors.Is(err, core.ErrMalformedModel) {
		return err
	}
	if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
		return err
	}
	return fmt.Errorf("%w: %w", core.ErrMalformedModel, err)
}

// batch buffers records per kind. summary only counts flushed records.
type batch struct {
	repo      storage.ModelRepository
	size      int
	topics    []core.Topic
	weights   []core.TermWeight
	docTopics []core.DocTopic
	summary   Summary
}

func (b *batch) add(ctx context.Context, rec core.ModelRecord) error {
	switch r := rec.(type) {
	case core.Topic:
		b.topics = append(b.topics, r)
		if len(b.topics) >= b.size {
			return b.flushTopics(ctx)
		}
	case core.TermWeight:
		b.weights = append(b.weights, r)
		if len(b.weights) >= b.size {
			return b.flushWeights(ctx)
		}
	case core.DocTopic:
		b.docTopics = append(b.docTopics, r)
		if len(b.docTopics) >= b.size {
			return b.flushDocTopics(ctx)
		}
	}
	return nil
}

func (b *batch) flush(ctx context.Context) error {
	if err := b.flushTopics(ctx); err != nil {
		return err
	}
	if err := b.flushWeights(ctx); err != nil {
		return err
	}
	return b.flushDocTopics(ctx)
}

func (b *batch) flushTopics(ctx context.Context) error {
	if len(b.topics) == 0 {
		return nil
	}
	if err := b.repo.AddTopics(ctx, b.topics...); err != nil {
		return fmt.Errorf("writing %d topics: %w", len(b.topics), err)
	}
	b.summary.Topics += len(b.topics)
	b.topics = b.topics[:0]
	return nil
}

func (b *batch) flushWeights(ctx context.Context) error {
	if len(b.weights) == 0 {
		return nil
	}
	if err := b.repo.AddTermWeights(ctx, b.weights...); err != nil {
		return fmt.Errorf("writing %d term weights: %w", len(b.weights), err)
	}
	b.summary.TermWeights += len(b.weights)
	b.weights = b.weights[:0]
	return nil
}

func (b *batch) flushDocTopics(ctx context.Context) error {
	if len(b.docTopics) == 0 {
		return nil
	}
	if err := b.repo.AddDocTopics(ctx, b.docTopics...); err != nil {
		return fmt.Errorf("writing %d document topics: %w", len(b.docTopics), err)
	}
	b.summary.DocTopics += len(b.docTopics)
	b.docTopics = b.docTopics[:0]
	return nil
}
