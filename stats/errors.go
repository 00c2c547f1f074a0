package stats

import "errors"

var (
	// ErrNoDocuments indicates a corpus without any document.
	ErrNoDocuments = errors.New("corpus has no documents")

	// ErrNoTokens indicates a corpus whose documents contain no word tokens.
	ErrNoTokens = errors.New("corpus has no word tokens")

	// ErrNoTopics indicates a model store without topics.
	ErrNoTopics = errors.New("model has no topics")

	// ErrNoTermWeights indicates a model store without term weights.
	ErrNoTermWeights = errors.New("model has no term weights")
)
