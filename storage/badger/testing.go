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

package badger

// NewMemoryModelRepository creates an in-memory model repository for testing.
// Closing the repository closes its backend.
func NewMemoryModelRepository() (*ModelRepository, error) {
	backend, err := OpenBackend("", true)
	if err != nil {
		return nil, err
	}
	return &ModelRepository{backend: backend, owned: true}, nil
}

// NewMemoryStatsRepositories creates in-memory corpus and model statistics
// repositories for testing. Each owns a separate backend because the
// write-once marker is per store.
// Caller must close both repositories when done.
func NewMemoryStatsRepositories() (*CorpusStatsRepository, *ModelStatsRepository, error) {
	corpusBackend, err := OpenBackend("", true)
	if err != nil {
		return nil, nil, err
	}
	modelBackend, err := OpenBackend("", true)
	if err != nil {
		corpusBackend.Close()
		return nil, nil, err
	}
	return &CorpusStatsRepository{backend: corpusBackend, owned: true},
		&ModelStatsRepository{backend: modelBackend, owned: true}, nil
}
