package badger

import (
	"context"

	"github.com/poiesic/termite/core"
	"github.com/poiesic/termite/storage"
)

// ModelRepository implements storage.ModelRepository for BadgerDB.
type ModelRepository struct {
	backend *Backend
	owned   bool
}

var _ storage.ModelRepository = (*ModelRepository)(nil)

// NewModelRepository creates a ModelRepository on a shared backend.
// Closing the repository leaves the backend open.
func NewModelRepository(backend *Backend) *ModelRepository {
	return &ModelRepository{backend: backend}
}

// OpenModelRepository opens the model store at path.
// Closing the repository closes its backend.
func OpenModelRepository(path string, opts ...BackendOption) (*ModelRepository, error) {
	backend, err := OpenBackend(path, false, opts...)
	if err != nil {
		return nil, err
	}
	return &ModelRepository{backend: backend, owned: true}, nil
}

// Close releases the backend if the repository owns it.
func (r *ModelRepository) Close() error {
	if r.owned {
		return r.backend.Close()
	}
	return nil
}

// AddTopics stores topics, replacing any topic with the same index.
func (r *ModelRepository) AddTopics(ctx context.Context, topics ...core.Topic) error {
	return r.backend.WriteBatch(func(set func(k, v []byte) error) error {
		for _, t := range topics {
			if err := set(makeTopicKey(t.Index), storage.Encode(core.TopicMUS, t)); err != nil {
				return err
			}
		}
		return nil
	})
}

// AddTermWeights stores term weights keyed by (topic, term).
func (r *ModelRepository) AddTermWeights(ctx context.Context, weights ...core.TermWeight) error {
	return r.backend.WriteBatch(func(set func(k, v []byte) error) error {
		for _, w := range weights {
			if err := set(makeTermWeightKey(w.Topic, w.Term), storage.Encode(core.TermWeightMUS, w)); err != nil {
				return err
			}
		}
		return nil
	})
}

// AddDocTopics stores document-topic weights keyed by (document, topic).
func (r *ModelRepository) AddDocTopics(ctx context.Context, assignments ...core.DocTopic) error {
	return r.backend.WriteBatch(func(set func(k, v []byte) error) error {
		for _, a := range assignments {
			if err := set(makeDocTopicKey(a.DocIndex, a.Topic), storage.Encode(core.DocTopicMUS, a)); err != nil {
				return err
			}
		}
		return nil
	})
}

// Topics returns all topics ordered by index.
func (r *ModelRepository) Topics(ctx context.Context) ([]core.Topic, error) {
	var topics []core.Topic
	err := r.backend.ForEachPrefix(ctx, []byte(topicPrefix), func(_, val []byte) error {
		t, err := storage.Decode[core.Topic](core.TopicMUS, val)
		if err != nil {
			return err
		}
		topics = append(topics, t)
		return nil
	})
	return topics, err
}

// ForEachTermWeight calls fn for every term weight, grouped by topic.
func (r *ModelRepository) ForEachTermWeight(ctx context.Context, fn func(core.TermWeight) error) error {
	return r.backend.ForEachPrefix(ctx, []byte(termWeightPrefix), func(_, val []byte) error {
		w, err := storage.Decode[core.TermWeight](core.TermWeightMUS, val)
		if err != nil {
			return err
		}
		return fn(w)
	})
}

// ForEachDocTopic calls fn for every document-topic weight, grouped by document.
func (r *ModelRepository) ForEachDocTopic(ctx context.Context, fn func(core.DocTopic) error) error {
	return r.backend.ForEachPrefix(ctx, []byte(docTopicPrefix), func(_, val []byte) error {
		a, err := storage.Decode[core.DocTopic](core.DocTopicMUS, val)
		if err != nil {
			return err
		}
		return fn(a)
	})
}
