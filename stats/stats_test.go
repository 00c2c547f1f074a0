package stats

import (
	"bytes"
	"context"
	"errors"
	"iter"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/termite/core"
	"github.com/poiesic/termite/segment"
	"github.com/poiesic/termite/storage"
	"github.com/poiesic/termite/storage/badger"
	"github.com/poiesic/termite/storage/sqlite"
)

const testCorpus = "d0\tThe river bank flooded. The river rose.\n" +
	"d1\tThe bank raised rates. Money is tight.\n"

func seq[T any](items []T, err error) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		for _, it := range items {
			if !yield(it, nil) {
				return
			}
		}
		if err != nil {
			var zero T
			yield(zero, err)
		}
	}
}

func corpusInputs(t *testing.T) (iter.Seq2[core.Document, error], iter.Seq2[core.Sentence, error]) {
	t.Helper()
	var docs []core.Document
	for d, err := range segment.Documents(strings.NewReader(testCorpus)) {
		require.NoError(t, err)
		docs = append(docs, d)
	}
	var buf bytes.Buffer
	_, err := segment.Split(context.Background(), strings.NewReader(testCorpus), &buf, segment.UAX29{})
	require.NoError(t, err)
	return seq(docs, nil), segment.ReadSentences(&buf)
}

func TestTokenize(t *testing.T) {
	assert.Equal(t, []string{"the", "river's", "bank", "rose", "times"}, Tokenize("The river's bank, rose 42 times!"))
	assert.Empty(t, Tokenize("  123 ... "))
}

func TestComputeCorpus(t *testing.T) {
	docs, sentences := corpusInputs(t)
	result, err := ComputeCorpus(context.Background(), docs, sentences, CorpusOptions{})
	require.NoError(t, err)

	require.Len(t, result.Docs, 2)
	assert.Equal(t, core.DocStats{Index: 0, DocID: "d0", Tokens: 7, UniqueTerms: 5, Sentences: 2}, result.Docs[0])
	assert.Equal(t, core.DocStats{Index: 1, DocID: "d1", Tokens: 7, UniqueTerms: 7, Sentences: 2}, result.Docs[1])

	terms := make(map[string]core.CorpusTermStats)
	for _, ts := range result.Terms {
		terms[ts.Term] = ts
	}
	assert.Equal(t, 3, terms["the"].Frequency)
	assert.Equal(t, 2, terms["the"].DocFrequency)
	assert.InDelta(t, 3.0/14.0, terms["the"].Probability, 1e-9)
	assert.Equal(t, 1, terms["river"].DocFrequency)

	require.Len(t, result.Pairs, 2)
	assert.Equal(t, "bank", result.Pairs[0].TermA)
	assert.Equal(t, "the", result.Pairs[0].TermB)
	assert.Equal(t, 2, result.Pairs[0].Sentences)
	assert.InDelta(t, math.Log(4.0/3.0), result.Pairs[0].PMI, 1e-9)
	assert.Equal(t, "river", result.Pairs[1].TermA)
}

func TestComputeCorpus_Deterministic(t *testing.T) {
	docs, sentences := corpusInputs(t)
	first, err := ComputeCorpus(context.Background(), docs, sentences, CorpusOptions{MinCooccurrence: 1})
	require.NoError(t, err)

	docs, sentences = corpusInputs(t)
	second, err := ComputeCorpus(context.Background(), docs, sentences, CorpusOptions{MinCooccurrence: 1})
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestComputeCorpus_VocabularyLimit(t *testing.T) {
	docs, sentences := corpusInputs(t)
	result, err := ComputeCorpus(context.Background(), docs, sentences, CorpusOptions{Vocabulary: 1, MinCooccurrence: 1})
	require.NoError(t, err)
	// a single-term vocabulary cannot form pairs
	assert.Empty(t, result.Pairs)
}

func TestComputeCorpus_Errors(t *testing.T) {
	ctx := context.Background()
	noSentences := seq[core.Sentence](nil, nil)

	_, err := ComputeCorpus(ctx, seq[core.Document](nil, nil), noSentences, CorpusOptions{})
	assert.ErrorIs(t, err, core.ErrComputation)
	assert.ErrorIs(t, err, ErrNoDocuments)

	_, err = ComputeCorpus(ctx, seq([]core.Document{{ID: "x", Content: "42 17"}}, nil), noSentences, CorpusOptions{})
	assert.ErrorIs(t, err, ErrNoTokens)

	_, err = ComputeCorpus(ctx, seq([]core.Document{{ID: "x", Content: "words"}}, errors.New("bad read")), noSentences, CorpusOptions{})
	assert.ErrorIs(t, err, core.ErrComputation)

	_, err = ComputeCorpus(ctx, seq([]core.Document{{ID: "x", Content: "words"}}, nil), seq[core.Sentence](nil, errors.New("bad sentences")), CorpusOptions{})
	assert.ErrorIs(t, err, core.ErrComputation)
}

func newModelRepo(t *testing.T) *badger.ModelRepository {
	t.Helper()
	repo, err := badger.NewMemoryModelRepository()
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	ctx := context.Background()
	require.NoError(t, repo.AddTopics(ctx, core.Topic{Index: 0}, core.Topic{Index: 1}))
	require.NoError(t, repo.AddTermWeights(ctx,
		core.TermWeight{Topic: 0, Term: "river", Weight: 3},
		core.TermWeight{Topic: 0, Term: "bank", Weight: 1},
		core.TermWeight{Topic: 1, Term: "bank", Weight: 2},
		core.TermWeight{Topic: 1, Term: "money", Weight: 2},
	))
	require.NoError(t, repo.AddDocTopics(ctx,
		core.DocTopic{DocIndex: 0, DocID: "d0", Topic: 0, Weight: 0.75},
		core.DocTopic{DocIndex: 0, DocID: "d0", Topic: 1, Weight: 0.25},
		core.DocTopic{DocIndex: 1, DocID: "d1", Topic: 0, Weight: 0.25},
		core.DocTopic{DocIndex: 1, DocID: "d1", Topic: 1, Weight: 0.75},
	))
	return repo
}

func TestComputeModel(t *testing.T) {
	result, err := ComputeModel(context.Background(), newModelRepo(t), ModelOptions{})
	require.NoError(t, err)

	require.Len(t, result.Topics, 2)
	assert.Equal(t, core.TopicStats{Topic: 0, TermWeight: 4, DocWeight: 1, Prevalence: 0.5, TopTerms: []string{"river", "bank"}}, result.Topics[0])
	assert.Equal(t, []string{"bank", "money"}, result.Topics[1].TopTerms)

	require.Len(t, result.Terms, 3)
	bank, money, river := result.Terms[0], result.Terms[1], result.Terms[2]
	assert.Equal(t, "bank", bank.Term)
	assert.Equal(t, 3.0, bank.Frequency)
	assert.InDelta(t, 1.0/3.0*math.Log(2.0/3.0)+2.0/3.0*math.Log(4.0/3.0), bank.Distinctiveness, 1e-9)
	assert.InDelta(t, math.Ln2, money.Distinctiveness, 1e-9)
	assert.InDelta(t, 3.0/8.0*math.Ln2, river.Saliency, 1e-9)
}

func TestComputeModel_TopTermsLimit(t *testing.T) {
	result, err := ComputeModel(context.Background(), newModelRepo(t), ModelOptions{TopTerms: 1})
	require.NoError(t, err)
	assert.Equal(t, []string{"river"}, result.Topics[0].TopTerms)
}

func TestComputeModel_Empty(t *testing.T) {
	repo, err := badger.NewMemoryModelRepository()
	require.NoError(t, err)
	defer repo.Close()

	_, err = ComputeModel(context.Background(), repo, ModelOptions{})
	assert.ErrorIs(t, err, core.ErrComputation)
	assert.ErrorIs(t, err, ErrNoTopics)

	require.NoError(t, repo.AddTopics(context.Background(), core.Topic{Index: 0}))
	_, err = ComputeModel(context.Background(), repo, ModelOptions{})
	assert.ErrorIs(t, err, ErrNoTermWeights)
}

func TestEngine_Corpus(t *testing.T) {
	dir := t.TempDir()
	corpusText := filepath.Join(dir, "corpus.txt")
	sentencesPath := filepath.Join(dir, "sentences.txt")
	require.NoError(t, os.WriteFile(corpusText, []byte(testCorpus), 0644))

	var buf bytes.Buffer
	_, err := segment.Split(context.Background(), strings.NewReader(testCorpus), &buf, segment.UAX29{})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(sentencesPath, buf.Bytes(), 0644))

	store, err := sqlite.Open(filepath.Join(dir, "corpus.db"))
	require.NoError(t, err)
	defer store.Close()

	corpusStats, modelStats, err := badger.NewMemoryStatsRepositories()
	require.NoError(t, err)
	defer corpusStats.Close()
	defer modelStats.Close()

	engine, err := NewEngine(WithPoolSize(2))
	require.NoError(t, err)
	defer engine.Release()

	ctx := context.Background()
	in := CorpusInput{Store: store, CorpusText: corpusText, Sentences: sentencesPath}
	result, err := engine.Corpus(ctx, in, corpusStats)
	require.NoError(t, err)
	assert.Len(t, result.Docs, 2)

	// documents were indexed into the empty store
	n, err := store.CountDocuments(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	stored, err := corpusStats.DocStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, result.Docs, stored)

	_, err = engine.Corpus(ctx, in, corpusStats)
	assert.ErrorIs(t, err, core.ErrStoreAccess)
	assert.ErrorIs(t, err, storage.ErrSealed)
}

func TestEngine_CorpusMissingSentences(t *testing.T) {
	dir := t.TempDir()
	store, err := sqlite.Open(filepath.Join(dir, "corpus.db"))
	require.NoError(t, err)
	defer store.Close()
	require.NoError(t, store.AddDocuments(context.Background(), core.Document{Index: 0, ID: "a", Content: "words"}))

	corpusStats, modelStats, err := badger.NewMemoryStatsRepositories()
	require.NoError(t, err)
	defer corpusStats.Close()
	defer modelStats.Close()

	engine, err := NewEngine()
	require.NoError(t, err)
	defer engine.Release()

	_, err = engine.Corpus(context.Background(), CorpusInput{Store: store, Sentences: filepath.Join(dir, "missing.txt")}, corpusStats)
	assert.ErrorIs(t, err, core.ErrIO)

	sealed, err := corpusStats.Sealed(context.Background())
	require.NoError(t, err)
	assert.False(t, sealed)
}

func TestEngine_Model(t *testing.T) {
	corpusStats, modelStats, err := badger.NewMemoryStatsRepositories()
	require.NoError(t, err)
	defer corpusStats.Close()
	defer modelStats.Close()

	engine, err := NewEngine(WithModelOptions(ModelOptions{TopTerms: 5}))
	require.NoError(t, err)
	defer engine.Release()

	result, err := engine.Model(context.Background(), newModelRepo(t), modelStats)
	require.NoError(t, err)

	stored, err := modelStats.TopicStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, result.Topics, stored)
}
