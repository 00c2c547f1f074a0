package segment

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/termite/core"
)

const sampleCorpus = "d1\tThe river bank flooded. Boats drifted away.\n" +
	"\n" +
	"d2\tThe bank raised rates!\tExtra column stays in content.\n" +
	"no tab on this line\n"

func collectDocs(t *testing.T, text string) []core.Document {
	t.Helper()
	var docs []core.Document
	for doc, err := range Documents(strings.NewReader(text)) {
		require.NoError(t, err)
		docs = append(docs, doc)
	}
	return docs
}

func TestDocuments(t *testing.T) {
	docs := collectDocs(t, sampleCorpus)
	require.Len(t, docs, 3)

	assert.Equal(t, core.Document{Index: 0, ID: "d1", Content: "The river bank flooded. Boats drifted away."}, docs[0])
	assert.Equal(t, 1, docs[1].Index)
	assert.Equal(t, "d2", docs[1].ID)
	assert.Equal(t, "The bank raised rates!\tExtra column stays in content.", docs[1].Content)
	// line number 3, after the blank line
	assert.Equal(t, core.Document{Index: 2, ID: "3", Content: "no tab on this line"}, docs[2])
}

func TestDocuments_EarlyStop(t *testing.T) {
	count := 0
	for range Documents(strings.NewReader(sampleCorpus)) {
		count++
		break
	}
	assert.Equal(t, 1, count)
}

func TestUAX29_Sentences(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"two sentences", "The river bank flooded. Boats drifted away.", []string{"The river bank flooded.", "Boats drifted away."}},
		{"question and exclamation", "Is it wet? Yes!", []string{"Is it wet?", "Yes!"}},
		{"empty", "", nil},
		{"whitespace only", "   ", nil},
		{"tab replaced", "one\ttwo.", []string{"one two."}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, UAX29{}.Sentences(tt.text))
		})
	}
}

func TestSplit(t *testing.T) {
	var out bytes.Buffer
	summary, err := Split(context.Background(), strings.NewReader(sampleCorpus), &out, UAX29{})
	require.NoError(t, err)
	assert.Equal(t, 3, summary.Documents)

	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	assert.Equal(t, summary.Sentences, len(lines))
	assert.Equal(t, "d1\t0\tThe river bank flooded.", lines[0])
	assert.Equal(t, "d1\t1\tBoats drifted away.", lines[1])
	assert.True(t, strings.HasPrefix(lines[len(lines)-1], "3\t0\t"))
}

func TestSplit_Deterministic(t *testing.T) {
	var first, second bytes.Buffer
	_, err := Split(context.Background(), strings.NewReader(sampleCorpus), &first, UAX29{})
	require.NoError(t, err)
	_, err = Split(context.Background(), strings.NewReader(sampleCorpus), &second, UAX29{})
	require.NoError(t, err)
	assert.Equal(t, first.Bytes(), second.Bytes())
}

func TestSplit_NilSegmenter(t *testing.T) {
	_, err := Split(context.Background(), strings.NewReader(sampleCorpus), &bytes.Buffer{}, nil)
	assert.ErrorIs(t, err, ErrSegmenterRequired)
}

func TestSplit_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Split(ctx, strings.NewReader(sampleCorpus), &bytes.Buffer{}, UAX29{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestReadSentences_RoundTrip(t *testing.T) {
	var out bytes.Buffer
	summary, err := Split(context.Background(), strings.NewReader(sampleCorpus), &out, UAX29{})
	require.NoError(t, err)

	var got []core.Sentence
	for s, err := range ReadSentences(&out) {
		require.NoError(t, err)
		got = append(got, s)
	}
	require.Len(t, got, summary.Sentences)
	assert.Equal(t, core.Sentence{DocID: "d1", Index: 1, Text: "Boats drifted away."}, got[1])
}

func TestReadSentences_Malformed(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"two fields", "d1\tonly two\n"},
		{"bad index", "d1\tx\tsentence\n"},
		{"negative index", "d1\t-1\tsentence\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var lastErr error
			for _, err := range ReadSentences(strings.NewReader(tt.text)) {
				lastErr = err
			}
			assert.ErrorIs(t, lastErr, ErrMalformedSentence)
		})
	}
}
