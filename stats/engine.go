package stats

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"os"
	"runtime"

	"github.com/panjf2000/ants/v2"

	"github.com/poiesic/termite/core"
	"github.com/poiesic/termite/segment"
	"github.com/poiesic/termite/storage"
)

// indexBatchSize is how many documents are written per transaction when the
// corpus store has to be filled from corpus text.
const indexBatchSize = 1000

var errStopped = errors.New("consumer stopped")

func defaultPoolSize() int {
	size := runtime.NumCPU() / 2
	if size < 1 {
		size = 1
	}
	return size
}

// Engine computes statistics for a bundle and persists them.
type Engine struct {
	pool   *ants.Pool
	corpus CorpusOptions
	model  ModelOptions
	logger *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine) error

// WithPoolSize sets the tokenization pool size.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(e *Engine) error {
		if size < 1 {
			size = 1
		}
		if e.pool != nil {
			e.pool.Release()
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		e.pool = pool
		return nil
	}
}

// WithCorpusOptions sets co-occurrence tuning. The pool field is ignored.
func WithCorpusOptions(opts CorpusOptions) Option {
	return func(e *Engine) error {
		e.corpus = opts.withDefaults()
		return nil
	}
}

// WithModelOptions sets model statistics tuning.
func WithModelOptions(opts ModelOptions) Option {
	return func(e *Engine) error {
		e.model = opts
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) error {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger
		return nil
	}
}

// NewEngine creates an Engine. Call Release when done.
func NewEngine(opts ...Option) (*Engine, error) {
	pool, err := ants.NewPool(defaultPoolSize())
	if err != nil {
		return nil, err
	}
	e := &Engine{
		pool:   pool,
		corpus: CorpusOptions{}.withDefaults(),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		if optErr := opt(e); optErr != nil {
			e.Release()
			return nil, optErr
		}
	}
	return e, nil
}

// Release releases the tokenization pool.
func (e *Engine) Release() {
	if e.pool != nil {
		e.pool.Release()
	}
}

// CorpusInput locates the inputs of corpus statistics.
type CorpusInput struct {
	Store      storage.CorpusRepository // Working copy of corpus.db
	CorpusText string                   // Path of the staged corpus.txt
	Sentences  string                   // Path of the derived sentences.txt
}

// Corpus computes corpus statistics and writes them to out.
//
// Documents are read from the corpus store. A store without corpus records is
// first filled from the corpus text so later readers find the documents there.
func (e *Engine) Corpus(ctx context.Context, in CorpusInput, out storage.CorpusStatsRepository) (*CorpusResult, error) {
	n, err := in.Store.CountDocuments(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", core.ErrStoreAccess, err)
	}
	if n == 0 {
		indexed, err := e.indexCorpus(ctx, in.Store, in.CorpusText)
		if err != nil {
			return nil, err
		}
		e.logger.Debug("indexed corpus text into corpus store", "documents", indexed)
	}

	sentences, err := os.Open(in.Sentences)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", core.ErrIO, err)
	}
	defer sentences.Close()

	opts := e.corpus
	opts.Pool = e.pool
	result, err := ComputeCorpus(ctx, storeDocuments(ctx, in.Store), segment.ReadSentences(sentences), opts)
	if err != nil {
		return nil, err
	}

	if err := out.PutCorpusStats(ctx, result.Docs, result.Terms, result.Pairs); err != nil {
		return nil, fmt.Errorf("%w: %w", core.ErrStoreAccess, err)
	}
	e.logger.Debug("corpus statistics written",
		"documents", len(result.Docs),
		"terms", len(result.Terms),
		"pairs", len(result.Pairs))
	return result, nil
}

// Model computes model statistics from repo and writes them to out.
func (e *Engine) Model(ctx context.Context, repo storage.ModelQuerier, out storage.ModelStatsRepository) (*ModelResult, error) {
	result, err := ComputeModel(ctx, repo, e.model)
	if err != nil {
		return nil, err
	}
	if err := out.PutModelStats(ctx, result.Topics, result.Terms); err != nil {
		return nil, fmt.Errorf("%w: %w", core.ErrStoreAccess, err)
	}
	e.logger.Debug("model statistics written",
		"topics", len(result.Topics),
		"terms", len(result.Terms))
	return result, nil
}

func (e *Engine) indexCorpus(ctx context.Context, store storage.CorpusRepository, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", core.ErrIO, err)
	}
	defer f.Close()

	count := 0
	batch := make([]core.Document, 0, indexBatchSize)
	flush := func() error {
		if err := store.AddDocuments(ctx, batch...); err != nil {
			return fmt.Errorf("%w: %w", core.ErrStoreAccess, err)
		}
		count += len(batch)
		batch = batch[:0]
		return nil
	}
	for doc, err := range segment.Documents(f) {
		if err != nil {
			return count, fmt.Errorf("%w: %w", core.ErrIO, err)
		}
		batch = append(batch, doc)
		if len(batch) == indexBatchSize {
			if err := flush(); err != nil {
				return count, err
			}
		}
	}
	if err := flush(); err != nil {
		return count, err
	}
	return count, nil
}

// storeDocuments adapts ForEachDocument to a sequence.
func storeDocuments(ctx context.Context, store storage.CorpusRepository) iter.Seq2[core.Document, error] {
	return func(yield func(core.Document, error) bool) {
		err := store.ForEachDocument(ctx, func(doc core.Document) error {
			if !yield(doc, nil) {
				return errStopped
			}
			return nil
		})
		if err != nil && !errors.Is(err, errStopped) {
			yield(core.Document{}, err)
		}
	}
}
