package badger

import (
	"context"
	"testing"

	"github.com/poiesic/termite/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModelRepository_Topics(t *testing.T) {
	repo, err := NewMemoryModelRepository()
	require.NoError(t, err)
	defer repo.Close()

	ctx := context.Background()
	require.NoError(t, repo.AddTopics(ctx,
		core.Topic{Index: 2, Label: "c"},
		core.Topic{Index: 0, Alpha: 0.5, Label: "a"},
		core.Topic{Index: 1, Label: "b"},
	))

	topics, err := repo.Topics(ctx)
	require.NoError(t, err)
	require.Len(t, topics, 3)
	for i, topic := range topics {
		assert.Equal(t, i, topic.Index)
	}
	assert.Equal(t, 0.5, topics[0].Alpha)
}

func TestModelRepository_TopicReplaced(t *testing.T) {
	repo, err := NewMemoryModelRepository()
	require.NoError(t, err)
	defer repo.Close()

	ctx := context.Background()
	require.NoError(t, repo.AddTopics(ctx, core.Topic{Index: 0, Label: "old"}))
	require.NoError(t, repo.AddTopics(ctx, core.Topic{Index: 0, Label: "new"}))

	topics, err := repo.Topics(ctx)
	require.NoError(t, err)
	require.Len(t, topics, 1)
	assert.Equal(t, "new", topics[0].Label)
}

func TestModelRepository_TermWeights(t *testing.T) {
	repo, err := NewMemoryModelRepository()
	require.NoError(t, err)
	defer repo.Close()

	ctx := context.Background()
	require.NoError(t, repo.AddTermWeights(ctx,
		core.TermWeight{Topic: 1, Term: "river", Weight: 3},
		core.TermWeight{Topic: 0, Term: "bank", Weight: 5},
		core.TermWeight{Topic: 0, Term: "money", Weight: 4},
	))

	var weights []core.TermWeight
	require.NoError(t, repo.ForEachTermWeight(ctx, func(w core.TermWeight) error {
		weights = append(weights, w)
		return nil
	}))
	require.Len(t, weights, 3)
	// grouped by topic
	assert.Equal(t, 0, weights[0].Topic)
	assert.Equal(t, 0, weights[1].Topic)
	assert.Equal(t, 1, weights[2].Topic)
}

func TestModelRepository_DocTopics(t *testing.T) {
	repo, err := NewMemoryModelRepository()
	require.NoError(t, err)
	defer repo.Close()

	ctx := context.Background()
	require.NoError(t, repo.AddDocTopics(ctx,
		core.DocTopic{DocIndex: 1, DocID: "b", Topic: 0, Weight: 0.3},
		core.DocTopic{DocIndex: 0, DocID: "a", Topic: 1, Weight: 0.6},
		core.DocTopic{DocIndex: 0, DocID: "a", Topic: 0, Weight: 0.4},
	))

	var got []core.DocTopic
	require.NoError(t, repo.ForEachDocTopic(ctx, func(a core.DocTopic) error {
		got = append(got, a)
		return nil
	}))
	require.Len(t, got, 3)
	assert.Equal(t, core.DocTopic{DocIndex: 0, DocID: "a", Topic: 0, Weight: 0.4}, got[0])
	assert.Equal(t, core.DocTopic{DocIndex: 0, DocID: "a", Topic: 1, Weight: 0.6}, got[1])
	assert.Equal(t, "b", got[2].DocID)
}

func TestOpenModelRepository_Reopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	repo, err := OpenModelRepository(dir)
	require.NoError(t, err)
	require.NoError(t, repo.AddTopics(ctx, core.Topic{Index: 4, Label: "persisted"}))
	require.NoError(t, repo.Close())

	repo, err = OpenModelRepository(dir)
	require.NoError(t, err)
	defer repo.Close()

	topics, err := repo.Topics(ctx)
	require.NoError(t, err)
	require.Len(t, topics, 1)
	assert.Equal(t, "persisted", topics[0].Label)
}
