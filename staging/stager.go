// Package staging copies the artifacts of an import into a provisioned
// bundle and derives the sentence stream from the corpus text.
//
// Independent copies run concurrently. A failed copy aborts the stage but
// leaves whatever was already written; the orchestrator reports the failure
// and never marks the bundle available.
package staging

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/poiesic/termite/bundle"
	"github.com/poiesic/termite/core"
	"github.com/poiesic/termite/segment"
)

// ErrSegmenterRequired indicates a Stager was built without a segmenter.
var ErrSegmenterRequired = errors.New("segmenter is required")

// Summary describes what a stage copied and derived.
type Summary struct {
	Documents int
	Sentences int
}

// Stager copies request artifacts into bundles.
type Stager struct {
	segmenter segment.Segmenter
	logger    *slog.Logger
}

// Option configures a Stager.
type Option func(*Stager)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Stager) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewStager creates a Stager that segments corpus text with seg.
func NewStager(seg segment.Segmenter, opts ...Option) (*Stager, error) {
	if seg == nil {
		return nil, ErrSegmenterRequired
	}
	s := &Stager{segmenter: seg, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Stage copies corpus.db, corpus.txt and the raw model directory of req into
// b and writes the derived sentence stream. Every failure wraps core.ErrIO.
func (s *Stager) Stage(ctx context.Context, b *bundle.Bundle, req core.ImportRequest) (Summary, error) {
	var summary Summary

	sources := []struct {
		path string
		dir  bool
	}{
		{req.DatabaseFile(), false},
		{req.CorpusFile(), false},
		{req.ModelPath, true},
	}
	for _, src := range sources {
		info, err := os.Stat(src.path)
		if err != nil {
			return summary, fmt.Errorf("%w: source %s: %w", core.ErrIO, src.path, err)
		}
		if info.IsDir() != src.dir {
			return summary, fmt.Errorf("%w: source %s: unexpected file type", core.ErrIO, src.path)
		}
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return copyFile(gCtx, req.DatabaseFile(), b.DataCorpusDB())
	})
	g.Go(func() error {
		return copyFile(gCtx, req.DatabaseFile(), b.CorpusDB())
	})
	// Sentences are derived from the staged copy, so the split waits on it.
	g.Go(func() error {
		if err := copyFile(gCtx, req.CorpusFile(), b.CorpusText()); err != nil {
			return err
		}
		split, err := s.split(gCtx, b.CorpusText(), b.Sentences())
		summary = Summary{Documents: split.Documents, Sentences: split.Sentences}
		return err
	})
	g.Go(func() error {
		if err := os.CopyFS(b.RawModel(), os.DirFS(req.ModelPath)); err != nil {
			return fmt.Errorf("copying model %s: %w", req.ModelPath, err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return summary, fmt.Errorf("%w: %w", core.ErrIO, err)
	}

	s.logger.Debug("artifacts staged",
		"bundle", b.Name,
		"documents", summary.Documents,
		"sentences", summary.Sentences)
	return summary, nil
}

func (s *Stager) split(ctx context.Context, src, dst string) (split segment.SplitSummary, err error) {
	in, err := os.Open(src)
	if err != nil {
		return split, err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return split, err
	}
	defer func() {
		if closeErr := out.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	split, err = segment.Split(ctx, in, out, s.segmenter)
	if err != nil {
		return split, fmt.Errorf("segmenting %s: %w", src, err)
	}
	return split, nil
}

// copyFile copies src to dst byte for byte, creating dst's parent directory.
func copyFile(ctx context.Context, src, dst string) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return err
	}
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := out.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("copying %s: %w", src, err)
	}
	return nil
}
