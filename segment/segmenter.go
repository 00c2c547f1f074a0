package segment

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/clipperhouse/uax29/v2/sentences"
)

// Segmenter splits the content of one document into sentences.
// Implementations must be deterministic.
type Segmenter interface {
	Sentences(text string) []string
}

// UAX29 segments text on Unicode UAX #29 sentence boundaries.
type UAX29 struct{}

var _ Segmenter = UAX29{}

// Sentences returns the trimmed, non-empty sentences of text. Tabs inside a
// sentence become spaces so the sentence stream stays tab-delimited.
func (UAX29) Sentences(text string) []string {
	var out []string
	seg := sentences.FromString(text)
	for seg.Next() {
		s := strings.TrimSpace(seg.Value())
		if s == "" {
			continue
		}
		out = append(out, strings.ReplaceAll(s, "\t", " "))
	}
	return out
}

// SplitSummary counts what Split wrote.
type SplitSummary struct {
	Documents int
	Sentences int
}

// Split reads corpus text from src and writes its sentence stream to dst.
func Split(ctx context.Context, src io.Reader, dst io.Writer, seg Segmenter) (SplitSummary, error) {
	var summary SplitSummary
	if seg == nil {
		return summary, ErrSegmenterRequired
	}

	w := bufio.NewWriter(dst)
	for doc, err := range Documents(src) {
		if err != nil {
			return summary, err
		}
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		for i, sentence := range seg.Sentences(doc.Content) {
			line := doc.ID + "\t" + strconv.Itoa(i) + "\t" + sentence + "\n"
			if _, err := w.WriteString(line); err != nil {
				return summary, fmt.Errorf("writing sentence %d of %s: %w", i, doc.ID, err)
			}
			summary.Sentences++
		}
		summary.Documents++
	}
	if err := w.Flush(); err != nil {
		return summary, fmt.Errorf("flushing sentences: %w", err)
	}
	return summary, nil
}
