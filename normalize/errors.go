package normalize

import "errors"

var (
	// ErrReaderRequired indicates a Normalizer was built without a model reader.
	ErrReaderRequired = errors.New("model reader is required")

	// ErrRepositoryRequired indicates Normalize was called without a target repository.
	ErrRepositoryRequired = errors.New("model repository is required")
)
