package importer

import (
	"errors"
	"fmt"
)

var (
	// ErrReaderRequired is returned when a model reader is not provided.
	ErrReaderRequired = errors.New("model reader required")

	// ErrSegmenterRequired is returned when a sentence segmenter is not provided.
	ErrSegmenterRequired = errors.New("sentence segmenter required")

	// ErrAppsDirRequired is returned when no apps directory is configured.
	ErrAppsDirRequired = errors.New("apps directory required")
)

// StageError reports the stage an import failed in.
type StageError struct {
	Stage State
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("stage %s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}
