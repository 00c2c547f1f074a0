package bundle

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/termite/core"
)

func TestBundlePaths(t *testing.T) {
	b := &Bundle{Name: "news", Root: filepath.Join("apps", "news")}

	assert.Equal(t, filepath.Join("apps", "news", "data"), b.DataPath())
	assert.Equal(t, filepath.Join("apps", "news", "databases"), b.DatabasePath())
	assert.Equal(t, filepath.Join("apps", "news", "data", "corpus.txt"), b.CorpusText())
	assert.Equal(t, filepath.Join("apps", "news", "data", "sentences.txt"), b.Sentences())
	assert.Equal(t, filepath.Join("apps", "news", "data", "corpus.db"), b.DataCorpusDB())
	assert.Equal(t, filepath.Join("apps", "news", "databases", "corpus.db"), b.CorpusDB())
	assert.Equal(t, filepath.Join("apps", "news", "data", "lda-model"), b.RawModel())
	assert.Equal(t, filepath.Join("apps", "news", "databases", "lda"), b.ModelStore())
	assert.Equal(t, filepath.Join("apps", "news", "databases", "corpus-stats"), b.CorpusStatsStore())
	assert.Equal(t, filepath.Join("apps", "news", "databases", "lda-stats"), b.ModelStatsStore())
	assert.Equal(t, filepath.Join("apps", "news", "import.yaml"), b.Manifest())
}

func TestProvision_Fresh(t *testing.T) {
	apps := filepath.Join(t.TempDir(), "apps")
	p := NewProvisioner(apps)

	b, err := p.Provision("news", false)
	require.NoError(t, err)
	assert.Equal(t, "news", b.Name)
	assert.Equal(t, filepath.Join(apps, "news"), b.Root)

	for _, dir := range []string{b.Root, b.DataPath(), b.DatabasePath()} {
		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}

	exists, err := p.Exists("news")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestProvision_AlreadyExists(t *testing.T) {
	p := NewProvisioner(t.TempDir())
	b, err := p.Provision("news", false)
	require.NoError(t, err)
	marker := filepath.Join(b.DataPath(), "marker")
	require.NoError(t, os.WriteFile(marker, []byte("keep"), 0644))

	_, err = p.Provision("news", false)
	assert.ErrorIs(t, err, core.ErrAlreadyExists)

	// untouched
	_, err = os.Stat(marker)
	assert.NoError(t, err)
}

func TestProvision_Overwrite(t *testing.T) {
	p := NewProvisioner(t.TempDir())
	b, err := p.Provision("news", false)
	require.NoError(t, err)
	marker := filepath.Join(b.DataPath(), "marker")
	require.NoError(t, os.WriteFile(marker, []byte("old"), 0644))

	b, err = p.Provision("news", true)
	require.NoError(t, err)

	_, err = os.Stat(marker)
	assert.True(t, errors.Is(err, os.ErrNotExist))
	_, err = os.Stat(b.DatabasePath())
	assert.NoError(t, err)
}

func TestProvision_RollbackOnFailure(t *testing.T) {
	apps := t.TempDir()
	p := NewProvisioner(apps)
	p.mkdir = func(dir string, perm os.FileMode) error {
		if filepath.Base(dir) == DatabasesDir {
			return errors.New("no space left on device")
		}
		return os.Mkdir(dir, perm)
	}

	_, err := p.Provision("news", false)
	assert.ErrorIs(t, err, core.ErrIO)

	_, statErr := os.Stat(filepath.Join(apps, "news"))
	assert.True(t, errors.Is(statErr, os.ErrNotExist), "partial bundle must be removed")

	exists, err := p.Exists("news")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestProvision_InvalidName(t *testing.T) {
	p := NewProvisioner(t.TempDir())
	for _, name := range []string{"", "..", "a/b"} {
		_, err := p.Provision(name, false)
		assert.ErrorIs(t, err, core.ErrInvalidBundleName, name)
	}
}

func TestOpen(t *testing.T) {
	p := NewProvisioner(t.TempDir())

	_, err := p.Open("news")
	assert.ErrorIs(t, err, ErrBundleNotFound)

	_, err = p.Provision("news", false)
	require.NoError(t, err)

	b, err := p.Open("news")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(p.AppsDir(), "news"), b.Root)
}
