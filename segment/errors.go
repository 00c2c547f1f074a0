package segment

import "errors"

var (
	// ErrMalformedSentence indicates a sentence stream line that does not have three fields.
	ErrMalformedSentence = errors.New("malformed sentence line")

	// ErrSegmenterRequired indicates Split was called without a segmenter.
	ErrSegmenterRequired = errors.New("segmenter is required")
)
