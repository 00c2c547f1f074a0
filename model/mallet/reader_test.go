package mallet

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/termite/core"
)

func readAll(t *testing.T, dir string) ([]core.ModelRecord, error) {
	t.Helper()
	var records []core.ModelRecord
	for rec, err := range NewReader().Records(context.Background(), dir) {
		if err != nil {
			return records, err
		}
		records = append(records, rec)
	}
	return records, nil
}

func TestReader_Format(t *testing.T) {
	assert.Equal(t, "mallet", NewReader().Format())
}

func TestReader_Records(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, WriteTestModel(dir, 3, 10))

	records, err := readAll(t, dir)
	require.NoError(t, err)

	var topics, weights, docTopics int
	for _, rec := range records {
		switch r := rec.(type) {
		case core.Topic:
			topics++
			// topics come first
			assert.Zero(t, weights+docTopics)
		case core.TermWeight:
			weights++
			assert.Zero(t, docTopics)
		case core.DocTopic:
			docTopics++
			assert.Equal(t, "doc", r.DocID[:3])
		}
	}
	assert.Equal(t, 3, topics)
	assert.Equal(t, 3*len(testVocabulary), weights)
	assert.Equal(t, 30, docTopics)

	first, ok := records[0].(core.Topic)
	require.True(t, ok)
	assert.Equal(t, core.Topic{Index: 0, Alpha: 0.1, Label: "river bank money"}, first)
}

func TestReader_EarlyStop(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, WriteTestModel(dir, 2, 4))

	count := 0
	for _, err := range NewReader().Records(context.Background(), dir) {
		require.NoError(t, err)
		count++
		if count == 3 {
			break
		}
	}
	assert.Equal(t, 3, count)
}

func TestReader_Malformed(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"empty topic keys", TopicKeysFile, "# nothing\n"},
		{"bad alpha", TopicKeysFile, "0\tnot-a-number\tword\n"},
		{"negative topic", TopicKeysFile, "-1\t0.1\tword\n"},
		{"duplicate topic", TopicKeysFile, "0\t0.1\ta\n0\t0.1\tb\n"},
		{"unknown topic weight", TopicWordWeightsFile, "9\triver\t1\n"},
		{"short weight line", TopicWordWeightsFile, "0\triver\n"},
		{"wrong proportion count", DocTopicsFile, "0\tdoc0\t0.5\n"},
		{"bad proportion", DocTopicsFile, "0\tdoc0\tx\t0.5\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			require.NoError(t, WriteTestModel(dir, 2, 2))
			require.NoError(t, os.WriteFile(filepath.Join(dir, tt.file), []byte(tt.content), 0644))

			_, err := readAll(t, dir)
			require.Error(t, err)
			assert.ErrorIs(t, err, core.ErrMalformedModel)
		})
	}
}

func TestReader_MissingFile(t *testing.T) {
	for _, name := range []string{TopicKeysFile, TopicWordWeightsFile, DocTopicsFile} {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			require.NoError(t, WriteTestModel(dir, 2, 2))
			require.NoError(t, os.Remove(filepath.Join(dir, name)))

			_, err := readAll(t, dir)
			assert.ErrorIs(t, err, core.ErrMalformedModel)
		})
	}
}

func TestReader_LineNumberInError(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, WriteTestModel(dir, 1, 1))
	content := "# comment\n0\t0.1\tword\nbroken\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, TopicKeysFile), []byte(content), 0644))

	_, err := readAll(t, dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "topic-keys.txt line 3")
}

func TestReader_Cancelled(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, WriteTestModel(dir, 2, 2))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var lastErr error
	for _, err := range NewReader().Records(ctx, dir) {
		lastErr = err
	}
	assert.ErrorIs(t, lastErr, context.Canceled)
}
