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

// Package bundle allocates and locates the on-disk bundles that imports
// produce. Every path inside a bundle is derived from the apps directory and
// the bundle name alone.
package bundle

import (
	"path/filepath"

	"github.com/poiesic/termite/core"
)

// Directory and file names inside a bundle.
const (
	DataDir        = "data"
	DatabasesDir   = "databases"
	SentencesFile  = "sentences.txt"
	RawModelDir    = "lda-model"
	ModelStoreDir  = "lda"
	CorpusStatsDir = "corpus-stats"
	ModelStatsDir  = "lda-stats"
	ManifestFile   = "import.yaml"
)

// Bundle is the directory tree holding one imported model and its corpus.
type Bundle struct {
	Name string
	Root string
}

// DataPath holds verbatim copies of the imported artifacts.
func (b *Bundle) DataPath() string {
	return filepath.Join(b.Root, DataDir)
}

// DatabasePath holds the stores derived during import.
func (b *Bundle) DatabasePath() string {
	return filepath.Join(b.Root, DatabasesDir)
}

func (b *Bundle) CorpusText() string {
	return filepath.Join(b.DataPath(), core.CorpusTextFile)
}

func (b *Bundle) Sentences() string {
	return filepath.Join(b.DataPath(), SentencesFile)
}

// DataCorpusDB is the untouched copy of the source corpus.db.
func (b *Bundle) DataCorpusDB() string {
	return filepath.Join(b.DataPath(), core.CorpusDBFile)
}

// CorpusDB is the working corpus.db that carries the availability registry.
func (b *Bundle) CorpusDB() string {
	return filepath.Join(b.DatabasePath(), core.CorpusDBFile)
}

func (b *Bundle) RawModel() string {
	return filepath.Join(b.DataPath(), RawModelDir)
}

func (b *Bundle) ModelStore() string {
	return filepath.Join(b.DatabasePath(), ModelStoreDir)
}

func (b *Bundle) CorpusStatsStore() string {
	return filepath.Join(b.DatabasePath(), CorpusStatsDir)
}

func (b *Bundle) ModelStatsStore() string {
	return filepath.Join(b.DatabasePath(), ModelStatsDir)
}

// Manifest is written last, when an import completes.
func (b *Bundle) Manifest() string {
	return filepath.Join(b.Root, ManifestFile)
}
