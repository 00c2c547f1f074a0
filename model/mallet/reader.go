// Package mallet reads the text exports of a MALLET LDA training run.
//
// A model directory holds three files:
//
//	topic-keys.txt          topic<TAB>alpha<TAB>top words
//	topic-word-weights.txt  topic<TAB>term<TAB>weight
//	doc-topics.txt          docIndex<TAB>docID<TAB>p0<TAB>p1 ...
//
// Lines starting with '#' are comments. Files are streamed line by line.
package mallet

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/poiesic/termite/core"
	"github.com/poiesic/termite/model"
)

const (
	// Format is the name this reader answers to.
	Format = "mallet"

	TopicKeysFile        = "topic-keys.txt"
	TopicWordWeightsFile = "topic-word-weights.txt"
	DocTopicsFile        = "doc-topics.txt"
)

// errStopped ends a scan when the consumer stops ranging.
var errStopped = errors.New("consumer stopped")

// Reader implements model.Reader for MALLET output.
type Reader struct {
	logger *slog.Logger
}

var _ model.Reader = (*Reader)(nil)

// Option configures a Reader.
type Option func(*Reader)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Reader) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewReader creates a MALLET reader.
func NewReader(opts ...Option) *Reader {
	r := &Reader{logger: slog.Default()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Format implements model.Reader.
func (r *Reader) Format() string {
	return Format
}

// Records implements model.Reader.
func (r *Reader) Records(ctx context.Context, dir string) iter.Seq2[core.ModelRecord, error] {
	return func(yield func(core.ModelRecord, error) bool) {
		emit := func(rec core.ModelRecord) error {
			if !yield(rec, nil) {
				return errStopped
			}
			return nil
		}

		topics := make(map[int]bool)
		err := r.scan(ctx, filepath.Join(dir, TopicKeysFile), func(fields []string) error {
			if len(fields) < 2 {
				return fmt.Errorf("expected at least 2 fields, got %d", len(fields))
			}
			idx, err := parseIndex(fields[0])
			if err != nil {
				return err
			}
			alpha, err := strconv.ParseFloat(fields[1], 64)
			if err != nil {
				return fmt.Errorf("alpha %q: %w", fields[1], err)
			}
			if topics[idx] {
				return fmt.Errorf("duplicate topic %d", idx)
			}
			topics[idx] = true
			label := ""
			if len(fields) > 2 {
				label = strings.TrimSpace(fields[2])
			}
			return emit(core.Topic{Index: idx, Alpha: alpha, Label: label})
		})
		if err == nil && len(topics) == 0 {
			err = fmt.Errorf("%w: %s: no topics", core.ErrMalformedModel, TopicKeysFile)
		}
		if err == nil {
			// doc-topics columns are positional
			for i := range len(topics) {
				if !topics[i] {
					err = fmt.Errorf("%w: %s: topic %d missing", core.ErrMalformedModel, TopicKeysFile, i)
					break
				}
			}
		}
		if err == nil {
			err = r.scan(ctx, filepath.Join(dir, TopicWordWeightsFile), func(fields []string) error {
				if len(fields) != 3 {
					return fmt.Errorf("expected 3 fields, got %d", len(fields))
				}
				topic, err := parseIndex(fields[0])
				if err != nil {
					return err
				}
				if !topics[topic] {
					return fmt.Errorf("unknown topic %d", topic)
				}
				weight, err := strconv.ParseFloat(fields[2], 64)
				if err != nil {
					return fmt.Errorf("weight %q: %w", fields[2], err)
				}
				return emit(core.TermWeight{Topic: topic, Term: fields[1], Weight: weight})
			})
		}
		if err == nil {
			err = r.scan(ctx, filepath.Join(dir, DocTopicsFile), func(fields []string) error {
				if len(fields) != len(topics)+2 {
					return fmt.Errorf("expected %d fields, got %d", len(topics)+2, len(fields))
				}
				docIndex, err := parseIndex(fields[0])
				if err != nil {
					return err
				}
				for topic, raw := range fields[2:] {
					weight, err := strconv.ParseFloat(raw, 64)
					if err != nil {
						return fmt.Errorf("proportion %q: %w", raw, err)
					}
					if err := emit(core.DocTopic{DocIndex: docIndex, DocID: fields[1], Topic: topic, Weight: weight}); err != nil {
						return err
					}
				}
				return nil
			})
		}
		if err != nil && !errors.Is(err, errStopped) {
			yield(nil, err)
		}
	}
}

// scan calls fn with the tab-separated fields of every non-comment line.
func (r *Reader) scan(ctx context.Context, path string, fn func(fields []string) error) error {
	name := filepath.Base(path)
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%w: %w", core.ErrMalformedModel, err)
	}
	defer f.Close()

	r.logger.Debug("reading model file", "format", Format, "path", path)

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimRight(scanner.Text(), "\r\t ")
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := fn(strings.Split(text, "\t")); err != nil {
			if errors.Is(err, errStopped) {
				return err
			}
			return fmt.Errorf("%w: %s line %d: %w", core.ErrMalformedModel, name, line, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("%w: %s: %w", core.ErrMalformedModel, name, err)
	}
	return nil
}

func parseIndex(s string) (int, error) {
	idx, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("index %q: %w", s, err)
	}
	if idx < 0 {
		return 0, fmt.Errorf("index %d: %w", idx, core.ErrNegativeIndex)
	}
	return idx, nil
}
