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

package core

//go:generate go run ../cmd/musgen

import (
	"encoding/binary"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// Terms are keyed by content-based IDs so the same term always maps to the same key.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Document is a single line of the corpus text file.
type Document struct {
	Index   int    // Zero-based position in corpus.txt
	ID      string // Document identifier (first tab-delimited column)
	Content string
}

// Sentence is one entry of the derived sentence stream.
type Sentence struct {
	DocID string
	Index int // Position of the sentence within its document
	Text  string
}

// ModelRecord is a normalized record yielded by a model reader.
// The set of implementations is closed: Topic, TermWeight and DocTopic.
type ModelRecord interface {
	modelRecord()
}

// Topic describes one latent topic of the model.
type Topic struct {
	Index int
	Alpha float64 // Dirichlet prior weight, zero when the format omits it
	Label string  // Human-readable label, typically the top terms
}

// TermWeight assigns a weight to a term within a topic.
type TermWeight struct {
	Topic  int
	Term   string
	Weight float64
}

// DocTopic assigns a topic proportion to a document.
type DocTopic struct {
	DocIndex int
	DocID    string
	Topic    int
	Weight   float64
}

func (Topic) modelRecord()      {}
func (TermWeight) modelRecord() {}
func (DocTopic) modelRecord()   {}
