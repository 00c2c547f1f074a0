package segment

import (
	"bufio"
	"fmt"
	"io"
	"iter"
	"strconv"
	"strings"

	"github.com/poiesic/termite/core"
)

// maxLineSize bounds a single corpus or sentence line.
const maxLineSize = 16 * 1024 * 1024

func newScanner(r io.Reader) *bufio.Scanner {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	return scanner
}

// Documents parses corpus text lazily. A line without a tab uses its
// zero-based line number as document ID. Blank lines are skipped and do not
// consume a document index.
func Documents(r io.Reader) iter.Seq2[core.Document, error] {
	return func(yield func(core.Document, error) bool) {
		scanner := newScanner(r)
		line, index := 0, 0
		for scanner.Scan() {
			text := strings.TrimRight(scanner.Text(), "\r")
			lineNo := line
			line++
			if strings.TrimSpace(text) == "" {
				continue
			}
			id, content, found := strings.Cut(text, "\t")
			if !found {
				id, content = strconv.Itoa(lineNo), text
			}
			if !yield(core.Document{Index: index, ID: id, Content: content}, nil) {
				return
			}
			index++
		}
		if err := scanner.Err(); err != nil {
			yield(core.Document{}, fmt.Errorf("reading corpus line %d: %w", line+1, err))
		}
	}
}

// ReadSentences parses a sentence stream written by Split.
func ReadSentences(r io.Reader) iter.Seq2[core.Sentence, error] {
	return func(yield func(core.Sentence, error) bool) {
		scanner := newScanner(r)
		line := 0
		for scanner.Scan() {
			line++
			text := strings.TrimRight(scanner.Text(), "\r")
			if text == "" {
				continue
			}
			parts := strings.SplitN(text, "\t", 3)
			if len(parts) != 3 {
				yield(core.Sentence{}, fmt.Errorf("%w: line %d", ErrMalformedSentence, line))
				return
			}
			idx, err := strconv.Atoi(parts[1])
			if err != nil || idx < 0 {
				yield(core.Sentence{}, fmt.Errorf("%w: line %d: bad index %q", ErrMalformedSentence, line, parts[1]))
				return
			}
			if !yield(core.Sentence{DocID: parts[0], Index: idx, Text: parts[2]}, nil) {
				return
			}
		}
		if err := scanner.Err(); err != nil {
			yield(core.Sentence{}, fmt.Errorf("reading sentence line %d: %w", line+1, err))
		}
	}
}
