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

// Package termite imports topic models and their training corpora into
// self-contained bundles under an apps directory.
package termite

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"

	"github.com/poiesic/termite/bundle"
	"github.com/poiesic/termite/config"
	"github.com/poiesic/termite/core"
	"github.com/poiesic/termite/importer"
	"github.com/poiesic/termite/model"
	"github.com/poiesic/termite/model/mallet"
	"github.com/poiesic/termite/registry"
	"github.com/poiesic/termite/segment"
	"github.com/poiesic/termite/storage"
	"github.com/poiesic/termite/storage/sqlite"
)

// Apps is a directory of bundles.
type Apps struct {
	cfg         *config.Config
	provisioner *bundle.Provisioner
	logger      *slog.Logger
}

// AppsOption configures Apps.
type AppsOption func(*appsOptions)

type appsOptions struct {
	cfg    *config.Config
	logger *slog.Logger
}

// WithConfig sets the configuration. Default is config.DefaultConfig().
func WithConfig(cfg *config.Config) AppsOption {
	return func(o *appsOptions) {
		o.cfg = cfg
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) AppsOption {
	return func(o *appsOptions) {
		o.logger = logger
	}
}

// Open returns the apps directory named by the configuration.
// The directory itself is created by the first import.
func Open(opts ...AppsOption) (*Apps, error) {
	options := &appsOptions{
		cfg:    config.DefaultConfig(),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(options)
	}
	if options.logger == nil {
		options.logger = slog.Default()
	}
	if err := options.cfg.Validate(); err != nil {
		return nil, err
	}

	return &Apps{
		cfg:         options.cfg,
		provisioner: bundle.NewProvisioner(options.cfg.AppsDir, bundle.WithLogger(options.logger)),
		logger:      options.logger,
	}, nil
}

// Dir returns the apps directory.
func (a *Apps) Dir() string {
	return a.provisioner.AppsDir()
}

// Readers returns every supported model reader.
func Readers(logger *slog.Logger) []model.Reader {
	return []model.Reader{
		mallet.NewReader(mallet.WithLogger(logger)),
	}
}

// NewImporter creates an import pipeline reading models in the configured
// format and segmenting sentences on Unicode boundaries.
// Callers must Release the pipeline.
func (a *Apps) NewImporter(opts ...importer.Option) (*importer.Pipeline, error) {
	reader, err := model.Select(a.cfg.ModelFormat, Readers(a.logger)...)
	if err != nil {
		return nil, err
	}
	opts = append([]importer.Option{
		importer.WithConfig(a.cfg),
		importer.WithLogger(a.logger),
	}, opts...)
	return importer.NewPipeline(a.cfg.AppsDir, reader, segment.UAX29{}, opts...)
}

// Import runs a single import with a pipeline created for it.
func (a *Apps) Import(ctx context.Context, req core.ImportRequest, opts ...importer.Option) (*importer.Result, error) {
	pipeline, err := a.NewImporter(opts...)
	if err != nil {
		return nil, err
	}
	defer pipeline.Release()
	return pipeline.Run(ctx, req)
}

// Status describes an existing bundle.
type Status struct {
	Bundle    *bundle.Bundle
	Available []string           // Subsystems marked available
	Metadata  map[string]string  // Corpus store metadata
	Manifest  *importer.Manifest // Nil unless an import completed
}

// Ready reports whether every subsystem is available.
func (s *Status) Ready() bool {
	ready := map[string]bool{}
	for _, subsystem := range s.Available {
		ready[subsystem] = true
	}
	return ready[registry.Corpus] && ready[registry.LDAModel]
}

// Status reports what an existing bundle holds. A bundle whose import
// failed before its corpus store was staged has no available subsystems.
func (a *Apps) Status(ctx context.Context, name string) (*Status, error) {
	if err := core.ValidateBundleName(name); err != nil {
		return nil, err
	}
	b, err := a.provisioner.Open(name)
	if err != nil {
		return nil, err
	}
	status := &Status{Bundle: b, Metadata: map[string]string{}}

	err = storage.Use(func() (*sqlite.CorpusStore, error) {
		return sqlite.OpenExisting(b.CorpusDB(), sqlite.WithLogger(a.logger))
	}, func(store *sqlite.CorpusStore) error {
		available, err := registry.New(store).Available(ctx)
		if err != nil {
			return err
		}
		status.Available = available
		status.Metadata, err = store.Metadata(ctx)
		return err
	})
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return nil, err
	}

	manifest, err := importer.ReadManifest(b.Manifest())
	switch {
	case err == nil:
		status.Manifest = manifest
	case !errors.Is(err, fs.ErrNotExist):
		return nil, err
	}
	return status, nil
}
