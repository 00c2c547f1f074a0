package registry

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/termite/core"
	"github.com/poiesic/termite/storage"
	"github.com/poiesic/termite/storage/sqlite"
)

type brokenStore struct{}

func (brokenStore) AddModel(context.Context, string, string) error { return assert.AnError }

func (brokenStore) Models(context.Context) ([]storage.ModelEntry, error) { return nil, assert.AnError }

func newRegistry(t *testing.T) (*Registry, *sqlite.CorpusStore) {
	t.Helper()
	store, err := sqlite.Open(filepath.Join(t.TempDir(), core.CorpusDBFile))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return New(store), store
}

func TestRegistry_MarkAvailable(t *testing.T) {
	reg, store := newRegistry(t)
	ctx := context.Background()

	ok, err := reg.IsAvailable(ctx, Corpus)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, reg.MarkAvailable(ctx, Corpus))
	require.NoError(t, reg.MarkAvailable(ctx, Corpus))

	ok, err = reg.IsAvailable(ctx, Corpus)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = reg.IsAvailable(ctx, LDAModel)
	require.NoError(t, err)
	assert.False(t, ok)

	models, err := store.Models(ctx)
	require.NoError(t, err)
	assert.Equal(t, []storage.ModelEntry{{Key: "corpus", Description: "Text corpus"}}, models)
}

func TestRegistry_Available(t *testing.T) {
	reg, _ := newRegistry(t)
	ctx := context.Background()

	require.NoError(t, reg.MarkAvailable(ctx, LDAModel))
	require.NoError(t, reg.MarkAvailable(ctx, Corpus))

	available, err := reg.Available(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"corpus", "lda model"}, available)
}

func TestRegistry_UnknownSubsystem(t *testing.T) {
	reg, _ := newRegistry(t)
	err := reg.MarkAvailable(context.Background(), "word2vec")
	assert.ErrorIs(t, err, ErrUnknownSubsystem)
}

func TestRegistry_StoreFailure(t *testing.T) {
	reg := New(brokenStore{})
	ctx := context.Background()

	err := reg.MarkAvailable(ctx, Corpus)
	assert.ErrorIs(t, err, core.ErrStoreAccess)

	_, err = reg.IsAvailable(ctx, Corpus)
	assert.ErrorIs(t, err, core.ErrStoreAccess)
}
