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

import "path/filepath"

const (
	// CorpusTextFile is the corpus text file expected inside ImportRequest.CorpusPath.
	CorpusTextFile = "corpus.txt"
	// CorpusDBFile is the corpus metadata database expected inside ImportRequest.DatabasePath.
	CorpusDBFile = "corpus.db"
)

// ImportRequest describes one import of a topic model and its corpus.
// It is passed by value and never modified once built.
type ImportRequest struct {
	Name         string // Bundle identity
	ModelPath    string // Directory holding the raw model output
	CorpusPath   string // Directory holding corpus.txt
	DatabasePath string // Directory holding corpus.db
	Quiet        bool   // Reduce log verbosity only
	Overwrite    bool   // Re-import even if the bundle exists
}

// CorpusFile returns the path of the source corpus text.
func (r ImportRequest) CorpusFile() string {
	return filepath.Join(r.CorpusPath, CorpusTextFile)
}

// DatabaseFile returns the path of the source corpus database.
func (r ImportRequest) DatabaseFile() string {
	return filepath.Join(r.DatabasePath, CorpusDBFile)
}
