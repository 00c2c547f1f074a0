// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package stats

import (
	"cmp"
	"context"
	"fmt"
	"iter"
	"math"
	"slices"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/poiesic/termite/core"
)

const (
	DefaultVocabulary      = 500
	DefaultMinCooccurrence = 2
)

// CorpusOptions tunes ComputeCorpus.
type CorpusOptions struct {
	// Vocabulary is how many of the most frequent terms take part in
	// co-occurrence counting.
	Vocabulary int
	// MinCooccurrence is the least number of sentences a pair must share.
	MinCooccurrence int
	// Pool runs per-document tokenization. A temporary pool is used when nil.
	Pool *ants.Pool
}

func (o CorpusOptions) withDefaults() CorpusOptions {
	if o.Vocabulary <= 0 {
		o.Vocabulary = DefaultVocabulary
	}
	if o.MinCooccurrence <= 0 {
		o.MinCooccurrence = DefaultMinCooccurrence
	}
	return o
}

// CorpusResult holds derived corpus statistics. Docs are ordered by index,
// Terms by term and Pairs by (TermA, TermB) with TermA < TermB.
type CorpusResult struct {
	Docs  []core.DocStats
	Terms []core.CorpusTermStats
	Pairs []core.Cooccurrence
}

// ComputeCorpus derives document, term and co-occurrence statistics.
// Both sequences are consumed once. Failures wrap core.ErrComputation.
func ComputeCorpus(ctx context.Context, docs iter.Seq2[core.Document, error], sentences iter.Seq2[core.Sentence, error], opts CorpusOptions) (*CorpusResult, error) {
	opts = opts.withDefaults()

	var corpus []core.Document
	for doc, err := range docs {
		if err != nil {
			return nil, fmt.Errorf("%w: reading documents: %w", core.ErrComputation, err)
		}
		corpus = append(corpus, doc)
	}
	if len(corpus) == 0 {
		return nil, fmt.Errorf("%w: %w", core.ErrComputation, ErrNoDocuments)
	}

	tokens, err := tokenizeAll(ctx, corpus, opts.Pool)
	if err != nil {
		return nil, fmt.Errorf("%w: tokenizing: %w", core.ErrComputation, err)
	}

	freq := make(map[string]int)
	docFreq := make(map[string]int)
	total := 0
	result := &CorpusResult{Docs: make([]core.DocStats, len(corpus))}
	for i, doc := range corpus {
		unique := make(map[string]struct{}, len(tokens[i]))
		for _, tok := range tokens[i] {
			freq[tok]++
			unique[tok] = struct{}{}
		}
		for tok := range unique {
			docFreq[tok]++
		}
		total += len(tokens[i])
		result.Docs[i] = core.DocStats{
			Index:       doc.Index,
			DocID:       doc.ID,
			Tokens:      len(tokens[i]),
			UniqueTerms: len(unique),
		}
	}
	if total == 0 {
		return nil, fmt.Errorf("%w: %w", core.ErrComputation, ErrNoTokens)
	}

	result.Terms = make([]core.CorpusTermStats, 0, len(freq))
	for term, f := range freq {
		result.Terms = append(result.Terms, core.CorpusTermStats{
			Term:         term,
			Frequency:    f,
			DocFrequency: docFreq[term],
			Probability:  float64(f) / float64(total),
		})
	}
	slices.SortFunc(result.Terms, func(a, b core.CorpusTermStats) int {
		return cmp.Compare(a.Term, b.Term)
	})

	vocab := topVocabulary(result.Terms, opts.Vocabulary)
	sentenceCounts, pairs, err := cooccurrences(ctx, sentences, vocab, opts.MinCooccurrence)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", core.ErrComputation, err)
	}
	for i := range result.Docs {
		result.Docs[i].Sentences = sentenceCounts[result.Docs[i].DocID]
	}
	slices.SortFunc(result.Docs, func(a, b core.DocStats) int {
		return cmp.Compare(a.Index, b.Index)
	})
	result.Pairs = pairs
	return result, nil
}

// tokenizeAll tokenizes every document on the pool, preserving order.
func tokenizeAll(ctx context.Context, corpus []core.Document, pool *ants.Pool) ([][]string, error) {
	if pool == nil {
		p, err := ants.NewPool(defaultPoolSize())
		if err != nil {
			return nil, err
		}
		defer p.Release()
		pool = p
	}

	tokens := make([][]string, len(corpus))
	var wg sync.WaitGroup
	for i := range corpus {
		if err := ctx.Err(); err != nil {
			wg.Wait()
			return nil, err
		}
		wg.Add(1)
		if err := pool.Submit(func() {
			defer wg.Done()
			tokens[i] = Tokenize(corpus[i].Content)
		}); err != nil {
			wg.Done()
			wg.Wait()
			return nil, err
		}
	}
	wg.Wait()
	return tokens, ctx.Err()
}

// topVocabulary returns the n most frequent terms, ties broken by term.
func topVocabulary(terms []core.CorpusTermStats, n int) map[string]struct{} {
	ranked := slices.Clone(terms)
	slices.SortFunc(ranked, func(a, b core.CorpusTermStats) int {
		if c := cmp.Compare(b.Frequency, a.Frequency); c != 0 {
			return c
		}
		return cmp.Compare(a.Term, b.Term)
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	vocab := make(map[string]struct{}, len(ranked))
	for _, t := range ranked {
		vocab[t.Term] = struct{}{}
	}
	return vocab
}

type termPair struct{ a, b string }

// cooccurrences counts sentences per document and sentence-level
// co-occurrence of vocabulary terms, scored with pointwise mutual information.
func cooccurrences(ctx context.Context, sentences iter.Seq2[core.Sentence, error], vocab map[string]struct{}, minCount int) (map[string]int, []core.Cooccurrence, error) {
	perDoc := make(map[string]int)
	termSentences := make(map[string]int)
	pairSentences := make(map[termPair]int)
	numSentences := 0

	for s, err := range sentences {
		if err != nil {
			return nil, nil, fmt.Errorf("reading sentences: %w", err)
		}
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		perDoc[s.DocID]++
		numSentences++

		present := make(map[string]struct{})
		for _, tok := range Tokenize(s.Text) {
			if _, ok := vocab[tok]; ok {
				present[tok] = struct{}{}
			}
		}
		terms := make([]string, 0, len(present))
		for tok := range present {
			terms = append(terms, tok)
			termSentences[tok]++
		}
		slices.Sort(terms)
		for i := range terms {
			for j := i + 1; j < len(terms); j++ {
				pairSentences[termPair{terms[i], terms[j]}]++
			}
		}
	}

	pairs := make([]core.Cooccurrence, 0)
	for p, n := range pairSentences {
		if n < minCount {
			continue
		}
		pmi := math.Log(float64(n) * float64(numSentences) / (float64(termSentences[p.a]) * float64(termSentences[p.b])))
		pairs = append(pairs, core.Cooccurrence{TermA: p.a, TermB: p.b, Sentences: n, PMI: pmi})
	}
	slices.SortFunc(pairs, func(x, y core.Cooccurrence) int {
		if c := cmp.Compare(x.TermA, y.TermA); c != 0 {
			return c
		}
		return cmp.Compare(x.TermB, y.TermB)
	})
	return perDoc, pairs, nil
}
