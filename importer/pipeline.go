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

package importer

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/poiesic/termite/bundle"
	"github.com/poiesic/termite/config"
	"github.com/poiesic/termite/core"
	"github.com/poiesic/termite/model"
	"github.com/poiesic/termite/normalize"
	"github.com/poiesic/termite/registry"
	"github.com/poiesic/termite/segment"
	"github.com/poiesic/termite/staging"
	"github.com/poiesic/termite/stats"
	"github.com/poiesic/termite/storage"
	"github.com/poiesic/termite/storage/badger"
	"github.com/poiesic/termite/storage/sqlite"
)

// Corpus store metadata keys written by a completed import.
const (
	MetaRunID       = "import.run_id"
	MetaModelFormat = "import.model_format"
	MetaFinishedAt  = "import.finished_at"
)

// StageObserver is called on every state transition of a run.
type StageObserver func(runID string, from, to State)

// Result describes the outcome of a run.
type Result struct {
	RunID       string
	State       State
	FailedStage State // Set only when State is Failed
	Bundle      *bundle.Bundle
	Stages      []StageTiming
	Summary     Summary
}

// Pipeline imports topic models into bundles under an apps directory.
type Pipeline struct {
	appsDir        string
	reader         model.Reader
	segmenter      segment.Segmenter
	poolSize       int
	batchSize      int
	reportInterval int
	strictGuard    bool
	corpusOpts     stats.CorpusOptions
	modelOpts      stats.ModelOptions
	observer       StageObserver
	logger         *slog.Logger

	provisioner *bundle.Provisioner
	stager      *staging.Stager
	normalizer  *normalize.Normalizer
	engine      *stats.Engine
	metrics     instruments
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// WithStageObserver registers a callback for state transitions.
func WithStageObserver(observer StageObserver) Option {
	return func(p *Pipeline) error {
		p.observer = observer
		return nil
	}
}

// WithConfig applies worker, batching, guard and statistics settings from cfg.
func WithConfig(cfg *config.Config) Option {
	return func(p *Pipeline) error {
		if err := cfg.Validate(); err != nil {
			return err
		}
		p.poolSize = cfg.PoolSize
		p.batchSize = cfg.BatchSize
		p.reportInterval = cfg.ReportInterval
		p.strictGuard = cfg.StrictGuard
		p.corpusOpts = stats.CorpusOptions{
			Vocabulary:      cfg.Stats.Vocabulary,
			MinCooccurrence: cfg.Stats.MinCooccurrence,
		}
		p.modelOpts = stats.ModelOptions{TopTerms: cfg.Stats.TopTerms}
		return nil
	}
}

// WithPoolSize sets the tokenization pool size.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		p.poolSize = size
		return nil
	}
}

// WithBatchSize sets how many model records are written per store batch.
func WithBatchSize(size int) Option {
	return func(p *Pipeline) error {
		p.batchSize = size
		return nil
	}
}

// WithStrictGuard re-imports existing bundles that have no import manifest.
func WithStrictGuard(strict bool) Option {
	return func(p *Pipeline) error {
		p.strictGuard = strict
		return nil
	}
}

// NewPipeline creates an import pipeline writing bundles under appsDir.
// Call Release when done.
func NewPipeline(appsDir string, reader model.Reader, segmenter segment.Segmenter, opts ...Option) (*Pipeline, error) {
	if appsDir == "" {
		return nil, ErrAppsDirRequired
	}
	if reader == nil {
		return nil, ErrReaderRequired
	}
	if segmenter == nil {
		return nil, ErrSegmenterRequired
	}

	defaults := config.DefaultConfig()
	p := &Pipeline{
		appsDir:        appsDir,
		reader:         reader,
		segmenter:      segmenter,
		poolSize:       defaults.PoolSize,
		batchSize:      defaults.BatchSize,
		reportInterval: defaults.ReportInterval,
		logger:         slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, err
		}
	}

	// Collaborators are built after options so they get the final config.
	p.provisioner = bundle.NewProvisioner(appsDir, bundle.WithLogger(p.logger))

	stager, err := staging.NewStager(segmenter, staging.WithLogger(p.logger))
	if err != nil {
		return nil, err
	}
	p.stager = stager

	normalizer, err := normalize.NewNormalizer(reader,
		normalize.WithLogger(p.logger),
		normalize.WithBatchSize(p.batchSize),
		normalize.WithReportInterval(p.reportInterval))
	if err != nil {
		return nil, err
	}
	p.normalizer = normalizer

	engine, err := stats.NewEngine(
		stats.WithPoolSize(p.poolSize),
		stats.WithCorpusOptions(p.corpusOpts),
		stats.WithModelOptions(p.modelOpts),
		stats.WithLogger(p.logger))
	if err != nil {
		return nil, err
	}
	p.engine = engine
	p.metrics = newInstruments(p.logger)

	return p, nil
}

// Release releases resources including the tokenization pool.
// The pipeline should not be used after calling Release.
func (p *Pipeline) Release() {
	if p.engine != nil {
		p.engine.Release()
	}
}

// Provisioner returns the provisioner locating this pipeline's bundles.
func (p *Pipeline) Provisioner() *bundle.Provisioner {
	return p.provisioner
}

// run is the mutable state of a single Run call.
type run struct {
	req     core.ImportRequest
	result  *Result
	started time.Time
	logger  *slog.Logger
}

// Run imports req. The returned Result is non-nil once the request is valid.
// On failure the error is a *StageError and Result.State is Failed.
func (p *Pipeline) Run(ctx context.Context, req core.ImportRequest) (*Result, error) {
	if err := core.ValidateRequest(req); err != nil {
		return nil, err
	}

	r := &run{
		req:     req,
		result:  &Result{RunID: uuid.NewString(), State: NotRequested},
		started: time.Now().UTC(),
	}
	r.logger = p.logger.With("app", req.Name, "run", r.result.RunID)

	ctx, span := tracer.Start(ctx, "importer.Run", trace.WithAttributes(
		attribute.String("app", req.Name),
		attribute.String("run_id", r.result.RunID),
		attribute.Bool("overwrite", req.Overwrite),
	))
	defer span.End()

	err := p.execute(ctx, r)
	if p.metrics.runs != nil {
		p.metrics.runs.Add(ctx, 1, metric.WithAttributes(attribute.String("state", r.result.State.String())))
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		r.logger.Error("import failed", "stage", r.result.FailedStage.String(), "err", err)
		return r.result, err
	}
	span.SetStatus(codes.Ok, "")
	return r.result, nil
}

func (p *Pipeline) execute(ctx context.Context, r *run) error {
	overwrite, skip, err := p.guard(r)
	if err != nil {
		return p.fail(r, Provisioning, err)
	}
	if skip {
		p.transition(r, Skipped)
		return nil
	}

	if err := p.stage(ctx, r, Provisioning, func(context.Context) error {
		b, err := p.provisioner.Provision(r.req.Name, overwrite)
		if err != nil {
			return err
		}
		r.result.Bundle = b
		p.banner(r)
		return nil
	}); err != nil {
		return err
	}
	b := r.result.Bundle

	if err := p.stage(ctx, r, Staging, func(ctx context.Context) error {
		summary, err := p.stager.Stage(ctx, b, r.req)
		r.result.Summary.Documents = summary.Documents
		r.result.Summary.Sentences = summary.Sentences
		return err
	}); err != nil {
		return err
	}

	if err := p.stage(ctx, r, ComputingCorpusStats, func(ctx context.Context) error {
		return p.corpusStats(ctx, r, b)
	}); err != nil {
		return err
	}

	if err := p.stage(ctx, r, NormalizingModel, func(ctx context.Context) error {
		return classify(storage.Use(func() (*badger.ModelRepository, error) {
			return openBadger(b.ModelStore(), p.logger, badger.OpenModelRepository)
		}, func(repo *badger.ModelRepository) error {
			summary, err := p.normalizer.Normalize(ctx, b.RawModel(), repo)
			r.result.Summary.Topics = summary.Topics
			r.result.Summary.TermWeights = summary.TermWeights
			r.result.Summary.DocTopics = summary.DocTopics
			return err
		}))
	}); err != nil {
		return err
	}

	if err := p.stage(ctx, r, ComputingModelStats, func(ctx context.Context) error {
		return p.modelStats(ctx, r, b)
	}); err != nil {
		return err
	}

	p.transition(r, Done)
	p.writeManifest(r, b)
	r.logger.Info("import complete",
		"path", b.Root,
		"documents", r.result.Summary.Documents,
		"topics", r.result.Summary.Topics,
		"elapsed", time.Since(r.started).Round(time.Millisecond).String())
	return nil
}

// guard decides whether an existing bundle is skipped. It returns the
// overwrite flag to provision with.
func (p *Pipeline) guard(r *run) (overwrite, skip bool, err error) {
	exists, err := p.provisioner.Exists(r.req.Name)
	if err != nil {
		return false, false, err
	}
	if !exists || r.req.Overwrite {
		return r.req.Overwrite, false, nil
	}

	b, err := p.provisioner.Open(r.req.Name)
	if err != nil {
		return false, false, err
	}
	if _, statErr := os.Stat(b.Manifest()); errors.Is(statErr, fs.ErrNotExist) {
		if p.strictGuard {
			r.logger.Warn("bundle has no import manifest, importing again", "path", b.Root)
			return true, false, nil
		}
		r.logger.Warn("bundle has no import manifest and may be incomplete", "path", b.Root)
	}
	r.result.Bundle = b
	r.logger.Info("Already available: " + b.Root)
	return false, true, nil
}

func (p *Pipeline) banner(r *run) {
	r.logger.Debug("importing topic model",
		"app_name", r.req.Name,
		"app_path", r.result.Bundle.Root,
		"model_path", r.req.ModelPath,
		"model_format", p.reader.Format(),
		"corpus_filename", r.req.CorpusFile(),
		"database_filename", r.req.DatabaseFile())
}

// corpusStats computes corpus statistics and marks the corpus available.
func (p *Pipeline) corpusStats(ctx context.Context, r *run, b *bundle.Bundle) error {
	return storage.Use(func() (*sqlite.CorpusStore, error) {
		return openCorpus(b.CorpusDB(), p.logger)
	}, func(store *sqlite.CorpusStore) error {
		err := storage.Use(func() (*badger.CorpusStatsRepository, error) {
			return openBadger(b.CorpusStatsStore(), p.logger, badger.OpenCorpusStatsRepository)
		}, func(out *badger.CorpusStatsRepository) error {
			in := stats.CorpusInput{Store: store, CorpusText: b.CorpusText(), Sentences: b.Sentences()}
			result, err := p.engine.Corpus(ctx, in, out)
			if err != nil {
				return err
			}
			r.result.Summary.Terms = len(result.Terms)
			r.result.Summary.Pairs = len(result.Pairs)
			return nil
		})
		if err != nil {
			return classify(err)
		}
		return registry.New(store).MarkAvailable(ctx, registry.Corpus)
	})
}

// modelStats computes model statistics and marks the model available.
func (p *Pipeline) modelStats(ctx context.Context, r *run, b *bundle.Bundle) error {
	err := storage.Use(func() (*badger.ModelRepository, error) {
		return openBadger(b.ModelStore(), p.logger, badger.OpenModelRepository)
	}, func(repo *badger.ModelRepository) error {
		return storage.Use(func() (*badger.ModelStatsRepository, error) {
			return openBadger(b.ModelStatsStore(), p.logger, badger.OpenModelStatsRepository)
		}, func(out *badger.ModelStatsRepository) error {
			_, err := p.engine.Model(ctx, repo, out)
			return err
		})
	})
	if err != nil {
		return classify(err)
	}

	return storage.Use(func() (*sqlite.CorpusStore, error) {
		return openCorpus(b.CorpusDB(), p.logger)
	}, func(store *sqlite.CorpusStore) error {
		meta := []struct{ key, value string }{
			{MetaRunID, r.result.RunID},
			{MetaModelFormat, p.reader.Format()},
			{MetaFinishedAt, time.Now().UTC().Format(time.RFC3339)},
		}
		for _, m := range meta {
			if err := store.SetMetadata(ctx, m.key, m.value); err != nil {
				return fmt.Errorf("%w: %w", core.ErrStoreAccess, err)
			}
		}
		// The availability record commits the model, so it is written last.
		return registry.New(store).MarkAvailable(ctx, registry.LDAModel)
	})
}

// writeManifest records the completed run. The bundle is already marked
// available, so a failure here is logged rather than failing the run.
func (p *Pipeline) writeManifest(r *run, b *bundle.Bundle) {
	m := &Manifest{
		RunID:       r.result.RunID,
		App:         r.req.Name,
		ModelFormat: p.reader.Format(),
		Request: ManifestRequest{
			ModelPath:    r.req.ModelPath,
			CorpusPath:   r.req.CorpusPath,
			DatabasePath: r.req.DatabasePath,
			Overwrite:    r.req.Overwrite,
		},
		StartedAt:  r.started,
		FinishedAt: time.Now().UTC(),
		Stages:     r.result.Stages,
		Counts:     r.result.Summary,
	}
	if err := WriteManifest(b.Manifest(), m); err != nil {
		r.logger.Error("import manifest not written", "path", b.Manifest(), "err", err)
	}
}

// stage runs fn as state, recording a span, its duration and any failure.
func (p *Pipeline) stage(ctx context.Context, r *run, state State, fn func(ctx context.Context) error) error {
	p.transition(r, state)
	if err := ctx.Err(); err != nil {
		return p.fail(r, state, err)
	}

	ctx, span := tracer.Start(ctx, "importer."+state.String(),
		trace.WithAttributes(attribute.String("app", r.req.Name)))
	defer span.End()

	start := time.Now()
	err := fn(ctx)
	elapsed := time.Since(start)
	r.result.Stages = append(r.result.Stages, StageTiming{Stage: state, Duration: elapsed})

	attrs := metric.WithAttributes(attribute.String("stage", state.String()))
	if p.metrics.stageDuration != nil {
		p.metrics.stageDuration.Record(ctx, elapsed.Seconds(), attrs)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		if p.metrics.stageFailures != nil {
			p.metrics.stageFailures.Add(ctx, 1, attrs)
		}
		return p.fail(r, state, err)
	}
	span.SetStatus(codes.Ok, "")
	r.logger.Debug("stage complete", "stage", state.String(), "elapsed", elapsed.Round(time.Millisecond).String())
	return nil
}

func (p *Pipeline) fail(r *run, state State, err error) error {
	r.result.FailedStage = state
	p.transition(r, Failed)
	return &StageError{Stage: state, Err: err}
}

func (p *Pipeline) transition(r *run, to State) {
	from := r.result.State
	r.result.State = to
	if p.observer != nil {
		p.observer(r.result.RunID, from, to)
	}
}

func openCorpus(path string, logger *slog.Logger) (*sqlite.CorpusStore, error) {
	store, err := sqlite.OpenExisting(path, sqlite.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", core.ErrStoreAccess, err)
	}
	return store, nil
}

func openBadger[T any](path string, logger *slog.Logger, open func(string, ...badger.BackendOption) (T, error)) (T, error) {
	repo, err := open(path, badger.WithLogger(logger))
	if err != nil {
		var zero T
		return zero, fmt.Errorf("%w: %w", core.ErrStoreAccess, err)
	}
	return repo, nil
}

// classify wraps errors that carry no error kind, which only store Close
// produces, with core.ErrStoreAccess.
func classify(err error) error {
	if err == nil {
		return nil
	}
	for _, kind := range []error{
		core.ErrStoreAccess, core.ErrComputation, core.ErrIO, core.ErrMalformedModel,
		context.Canceled, context.DeadlineExceeded,
	} {
		if errors.Is(err, kind) {
			return err
		}
	}
	return fmt.Errorf("%w: %w", core.ErrStoreAccess, err)
}
