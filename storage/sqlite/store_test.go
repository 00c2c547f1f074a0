package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/termite/core"
	"github.com/poiesic/termite/storage"
)

// setupTestStore creates a corpus database in a temporary directory.
func setupTestStore(t *testing.T) *CorpusStore {
	t.Helper()

	store, err := Open(filepath.Join(t.TempDir(), core.CorpusDBFile))
	require.NoError(t, err)
	require.NotNil(t, store)
	t.Cleanup(func() {
		assert.NoError(t, store.Close())
	})
	return store
}

func TestOpen_CreatesSchema(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	n, err := store.CountDocuments(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	models, err := store.Models(ctx)
	require.NoError(t, err)
	assert.Empty(t, models)
}

func TestOpen_ReopenKeepsRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), core.CorpusDBFile)
	ctx := context.Background()

	store, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, store.AddDocuments(ctx, core.Document{Index: 0, ID: "a", Content: "alpha"}))
	require.NoError(t, store.Close())

	store, err = Open(path)
	require.NoError(t, err)
	defer store.Close()

	n, err := store.CountDocuments(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestOpenExisting(t *testing.T) {
	dir := t.TempDir()

	_, err := OpenExisting(filepath.Join(dir, "missing.db"))
	assert.ErrorIs(t, err, storage.ErrNotFound)

	_, err = OpenExisting(dir)
	assert.Error(t, err)

	path := filepath.Join(dir, core.CorpusDBFile)
	store, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	store, err = OpenExisting(path)
	require.NoError(t, err)
	assert.Equal(t, path, store.Path())
	require.NoError(t, store.Close())

	_, err = os.Stat(path)
	require.NoError(t, err)
}

func TestAddModel(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.AddModel(ctx, "lda model", "LDA model"))
	require.NoError(t, store.AddModel(ctx, "corpus", "Text corpus"))
	// idempotent
	require.NoError(t, store.AddModel(ctx, "corpus", "Text corpus"))

	models, err := store.Models(ctx)
	require.NoError(t, err)
	assert.Equal(t, []storage.ModelEntry{
		{Key: "corpus", Description: "Text corpus"},
		{Key: "lda model", Description: "LDA model"},
	}, models)
}

func TestDocuments(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	docs := []core.Document{
		{Index: 2, ID: "c", Content: "gamma"},
		{Index: 0, ID: "a", Content: "alpha"},
		{Index: 1, ID: "b", Content: "beta"},
	}
	require.NoError(t, store.AddDocuments(ctx, docs...))

	n, err := store.CountDocuments(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	doc, err := store.GetDocument(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, core.Document{Index: 1, ID: "b", Content: "beta"}, *doc)

	_, err = store.GetDocument(ctx, "zzz")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	var ids []string
	require.NoError(t, store.ForEachDocument(ctx, func(d core.Document) error {
		ids = append(ids, d.ID)
		return nil
	}))
	assert.Equal(t, []string{"a", "b", "c"}, ids)
}

func TestForEachDocument_StopsOnError(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.AddDocuments(ctx,
		core.Document{Index: 0, ID: "a", Content: "alpha"},
		core.Document{Index: 1, ID: "b", Content: "beta"},
	))

	calls := 0
	err := store.ForEachDocument(ctx, func(core.Document) error {
		calls++
		return assert.AnError
	})
	assert.ErrorIs(t, err, assert.AnError)
	assert.Equal(t, 1, calls)
}

func TestMetadata(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SetMetadata(ctx, "import_run", "one"))
	require.NoError(t, store.SetMetadata(ctx, "import_run", "two"))
	require.NoError(t, store.SetMetadata(ctx, "language", "en"))

	meta, err := store.Metadata(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"import_run": "two", "language": "en"}, meta)
}
