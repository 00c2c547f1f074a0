package storage

import (
	"context"

	"github.com/poiesic/termite/core"
)

// ModelEntry is one row of the availability registry kept in the corpus store.
type ModelEntry struct {
	Key         string
	Description string
}

// ModelRegistry records which subsystems of a bundle are fully persisted.
type ModelRegistry interface {
	// AddModel marks a subsystem as available.
	// Adding an existing key again has no additional effect.
	AddModel(ctx context.Context, key, description string) error

	// Models returns every registered subsystem ordered by key.
	Models(ctx context.Context) ([]ModelEntry, error)
}

// CorpusRepository provides access to a bundle's corpus metadata store.
type CorpusRepository interface {
	ModelRegistry

	// CountDocuments returns the number of corpus records.
	CountDocuments(ctx context.Context) (int, error)

	// GetDocument retrieves a corpus record by its document ID.
	// Returns ErrNotFound if no record has that ID.
	GetDocument(ctx context.Context, docID string) (*core.Document, error)

	// ForEachDocument calls fn for every corpus record in index order.
	// Iteration stops on the first error returned by fn.
	ForEachDocument(ctx context.Context, fn func(core.Document) error) error

	// AddDocuments stores corpus records, replacing any record with the same index.
	AddDocuments(ctx context.Context, docs ...core.Document) error

	// SetMetadata stores a key/value pair describing the corpus or its import.
	SetMetadata(ctx context.Context, key, value string) error

	// Metadata returns every stored key/value pair.
	Metadata(ctx context.Context) (map[string]string, error)

	// Close releases the underlying database handle.
	Close() error
}

// ModelQuerier is the read side of a normalized model store.
type ModelQuerier interface {
	// Topics returns all topics ordered by index.
	Topics(ctx context.Context) ([]core.Topic, error)

	// ForEachTermWeight calls fn for every term weight, grouped by topic.
	ForEachTermWeight(ctx context.Context, fn func(core.TermWeight) error) error

	// ForEachDocTopic calls fn for every document-topic weight, grouped by document.
	ForEachDocTopic(ctx context.Context, fn func(core.DocTopic) error) error
}

// ModelRepository stores a topic model in the internal schema.
type ModelRepository interface {
	ModelQuerier

	// AddTopics stores topics, replacing any topic with the same index.
	AddTopics(ctx context.Context, topics ...core.Topic) error

	// AddTermWeights stores term weights keyed by (topic, term).
	AddTermWeights(ctx context.Context, weights ...core.TermWeight) error

	// AddDocTopics stores document-topic weights keyed by (document, topic).
	AddDocTopics(ctx context.Context, assignments ...core.DocTopic) error

	// Close releases the repository.
	Close() error
}

// CorpusStatsRepository holds derived corpus statistics.
// It is written once; a second write returns ErrSealed.
type CorpusStatsRepository interface {
	// PutCorpusStats persists all corpus statistics and seals the store.
	PutCorpusStats(ctx context.Context, docs []core.DocStats, terms []core.CorpusTermStats, pairs []core.Cooccurrence) error

	// DocStats returns document statistics ordered by document index.
	DocStats(ctx context.Context) ([]core.DocStats, error)

	// TermStats returns term statistics ordered by term ID.
	TermStats(ctx context.Context) ([]core.CorpusTermStats, error)

	// Cooccurrences returns sentence co-occurrence records.
	Cooccurrences(ctx context.Context) ([]core.Cooccurrence, error)

	// Sealed reports whether statistics have been written.
	Sealed(ctx context.Context) (bool, error)

	// Close releases the repository.
	Close() error
}

// ModelStatsRepository holds derived model statistics.
// It is written once; a second write returns ErrSealed.
type ModelStatsRepository interface {
	// PutModelStats persists all model statistics and seals the store.
	PutModelStats(ctx context.Context, topics []core.TopicStats, terms []core.ModelTermStats) error

	// TopicStats returns topic statistics ordered by topic index.
	TopicStats(ctx context.Context) ([]core.TopicStats, error)

	// TermStats returns term statistics ordered by term ID.
	TermStats(ctx context.Context) ([]core.ModelTermStats, error)

	// Sealed reports whether statistics have been written.
	Sealed(ctx context.Context) (bool, error)

	// Close releases the repository.
	Close() error
}
