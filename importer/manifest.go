package importer

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Manifest records a completed import. It is written to the bundle root only
// once both subsystems are marked available.
type Manifest struct {
	RunID       string          `yaml:"run_id"`
	App         string          `yaml:"app"`
	ModelFormat string          `yaml:"model_format"`
	Request     ManifestRequest `yaml:"request"`
	StartedAt   time.Time       `yaml:"started_at"`
	FinishedAt  time.Time       `yaml:"finished_at"`
	Stages      []StageTiming   `yaml:"stages"`
	Counts      Summary         `yaml:"counts"`
}

// ManifestRequest is the part of the import request worth keeping.
type ManifestRequest struct {
	ModelPath    string `yaml:"model_path"`
	CorpusPath   string `yaml:"corpus_path"`
	DatabasePath string `yaml:"database_path"`
	Overwrite    bool   `yaml:"overwrite"`
}

// StageTiming is how long one stage ran.
type StageTiming struct {
	Stage    State         `yaml:"stage"`
	Duration time.Duration `yaml:"duration"`
}

// Summary counts what an import produced.
type Summary struct {
	Documents   int `yaml:"documents"`
	Sentences   int `yaml:"sentences"`
	Terms       int `yaml:"terms"`
	Pairs       int `yaml:"pairs"`
	Topics      int `yaml:"topics"`
	TermWeights int `yaml:"term_weights"`
	DocTopics   int `yaml:"doc_topics"`
}

// WriteManifest writes m to path as YAML.
func WriteManifest(path string, m *Manifest) error {
	out, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("encoding manifest: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, out, 0644); err != nil {
		return fmt.Errorf("writing manifest: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("writing manifest: %w", err)
	}
	return nil
}

// ReadManifest reads the manifest at path. A missing file yields an error
// matching fs.ErrNotExist.
func ReadManifest(path string) (*Manifest, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	var m Manifest
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}
	return &m, nil
}
