package stats

import (
	"cmp"
	"context"
	"fmt"
	"math"
	"slices"

	"github.com/poiesic/termite/core"
	"github.com/poiesic/termite/storage"
)

const DefaultTopTerms = 10

// ModelOptions tunes ComputeModel.
type ModelOptions struct {
	// TopTerms is how many terms are listed per topic.
	TopTerms int
}

// ModelResult holds derived model statistics. Topics are ordered by topic
// index and Terms by term.
type ModelResult struct {
	Topics []core.TopicStats
	Terms  []core.ModelTermStats
}

type weightedTerm struct {
	term   string
	weight float64
}

// ComputeModel derives topic and term statistics from a normalized model.
// Failures wrap core.ErrComputation.
func ComputeModel(ctx context.Context, repo storage.ModelQuerier, opts ModelOptions) (*ModelResult, error) {
	if opts.TopTerms <= 0 {
		opts.TopTerms = DefaultTopTerms
	}

	topics, err := repo.Topics(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: reading topics: %w", core.ErrComputation, err)
	}
	if len(topics) == 0 {
		return nil, fmt.Errorf("%w: %w", core.ErrComputation, ErrNoTopics)
	}
	position := make(map[int]int, len(topics))
	for i, t := range topics {
		position[t.Index] = i
	}

	topicTerms := make([][]weightedTerm, len(topics))
	topicWeight := make([]float64, len(topics))
	termWeights := make(map[string][]float64)
	totalWeight := 0.0
	err = repo.ForEachTermWeight(ctx, func(w core.TermWeight) error {
		pos, ok := position[w.Topic]
		if !ok {
			return fmt.Errorf("term %q references unknown topic %d", w.Term, w.Topic)
		}
		topicTerms[pos] = append(topicTerms[pos], weightedTerm{w.Term, w.Weight})
		topicWeight[pos] += w.Weight
		per, ok := termWeights[w.Term]
		if !ok {
			per = make([]float64, len(topics))
			termWeights[w.Term] = per
		}
		per[pos] += w.Weight
		totalWeight += w.Weight
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: reading term weights: %w", core.ErrComputation, err)
	}
	if len(termWeights) == 0 || totalWeight == 0 {
		return nil, fmt.Errorf("%w: %w", core.ErrComputation, ErrNoTermWeights)
	}

	docWeight := make([]float64, len(topics))
	totalDocWeight := 0.0
	err = repo.ForEachDocTopic(ctx, func(a core.DocTopic) error {
		pos, ok := position[a.Topic]
		if !ok {
			return fmt.Errorf("document %d references unknown topic %d", a.DocIndex, a.Topic)
		}
		docWeight[pos] += a.Weight
		totalDocWeight += a.Weight
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: reading document topics: %w", core.ErrComputation, err)
	}

	// Topic marginal P(T): document prevalence when documents are known,
	// otherwise the topic's share of term weight.
	marginal := make([]float64, len(topics))
	for i := range topics {
		if totalDocWeight > 0 {
			marginal[i] = docWeight[i] / totalDocWeight
		} else {
			marginal[i] = topicWeight[i] / totalWeight
		}
	}

	result := &ModelResult{Topics: make([]core.TopicStats, len(topics))}
	for i, t := range topics {
		prevalence := 0.0
		if totalDocWeight > 0 {
			prevalence = docWeight[i] / totalDocWeight
		}
		result.Topics[i] = core.TopicStats{
			Topic:      t.Index,
			TermWeight: topicWeight[i],
			DocWeight:  docWeight[i],
			Prevalence: prevalence,
			TopTerms:   topTerms(topicTerms[i], opts.TopTerms),
		}
	}

	result.Terms = make([]core.ModelTermStats, 0, len(termWeights))
	for term, per := range termWeights {
		freq := 0.0
		for _, w := range per {
			freq += w
		}
		distinct := 0.0
		if freq > 0 {
			for i, w := range per {
				if w == 0 || marginal[i] == 0 {
					continue
				}
				p := w / freq
				distinct += p * math.Log(p/marginal[i])
			}
		}
		result.Terms = append(result.Terms, core.ModelTermStats{
			Term:            term,
			Frequency:       freq,
			Distinctiveness: distinct,
			Saliency:        freq / totalWeight * distinct,
		})
	}
	slices.SortFunc(result.Terms, func(a, b core.ModelTermStats) int {
		return cmp.Compare(a.Term, b.Term)
	})
	return result, nil
}

// topTerms returns up to n terms by descending weight, ties broken by term.
func topTerms(terms []weightedTerm, n int) []string {
	slices.SortFunc(terms, func(a, b weightedTerm) int {
		if c := cmp.Compare(b.weight, a.weight); c != 0 {
			return c
		}
		return cmp.Compare(a.term, b.term)
	})
	if len(terms) > n {
		terms = terms[:n]
	}
	out := make([]string, len(terms))
	for i, t := range terms {
		out[i] = t.term
	}
	return out
}
