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

package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"sort"
	"strings"

	sq "github.com/Masterminds/squirrel"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/poiesic/termite/core"
	"github.com/poiesic/termite/storage"
	"github.com/poiesic/termite/storage/sqlite/migrations"
)

// CorpusStore implements storage.CorpusRepository on a corpus.db file.
type CorpusStore struct {
	db     *sql.DB
	path   string
	logger *slog.Logger
}

var _ storage.CorpusRepository = (*CorpusStore)(nil)

// Option configures a CorpusStore.
type Option func(*CorpusStore)

// WithLogger sets the logger used for schema migration messages.
func WithLogger(logger *slog.Logger) Option {
	return func(s *CorpusStore) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Open opens the corpus database at path, creating it if needed, and brings
// its schema up to date.
func Open(path string, opts ...Option) (*CorpusStore, error) {
	s := &CorpusStore{path: path, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}

	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// A single connection keeps writes serialized on one file handle.
	db.SetMaxOpenConns(1)
	s.db = db

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return s, nil
}

// OpenExisting is Open for a database file that must already exist.
func OpenExisting(path string, opts ...Option) (*CorpusStore, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", storage.ErrNotFound, path)
		}
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}
	return Open(path, opts...)
}

// Close closes the database connection.
func (s *CorpusStore) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *CorpusStore) Path() string {
	return s.path
}

func (s *CorpusStore) migrate(fsys fs.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if name := entry.Name(); strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
		s.logger.Debug("applied corpus schema migration", "path", s.path, "migration", name)
	}
	return nil
}

// ==================== Registry ====================

// AddModel registers a subsystem. An existing key keeps one row and takes the
// new description.
func (s *CorpusStore) AddModel(ctx context.Context, key, description string) error {
	query, args, err := sq.Insert("models").
		Columns("model_key", "model_desc").
		Values(key, description).
		Suffix("ON CONFLICT(model_key) DO UPDATE SET model_desc = excluded.model_desc").
		ToSql()
	if err != nil {
		return fmt.Errorf("building insert: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert model %q: %w", key, err)
	}
	return nil
}

// Models returns every registered subsystem ordered by key.
func (s *CorpusStore) Models(ctx context.Context) ([]storage.ModelEntry, error) {
	query, args, err := sq.Select("model_key", "model_desc").
		From("models").
		OrderBy("model_key").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building select: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query models: %w", err)
	}
	defer rows.Close()

	var entries []storage.ModelEntry
	for rows.Next() {
		var e storage.ModelEntry
		if err := rows.Scan(&e.Key, &e.Description); err != nil {
			return nil, fmt.Errorf("scan model: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// ==================== Corpus ====================

// CountDocuments returns the number of corpus records.
func (s *CorpusStore) CountDocuments(ctx context.Context) (int, error) {
	query, args, err := sq.Select("COUNT(*)").From("corpus").ToSql()
	if err != nil {
		return 0, fmt.Errorf("building count: %w", err)
	}
	var n int
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count documents: %w", err)
	}
	return n, nil
}

// GetDocument retrieves the first corpus record with the given document ID.
func (s *CorpusStore) GetDocument(ctx context.Context, docID string) (*core.Document, error) {
	query, args, err := sq.Select("doc_index", "doc_id", "doc_content").
		From("corpus").
		Where(sq.Eq{"doc_id": docID}).
		OrderBy("doc_index").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building select: %w", err)
	}

	var doc core.Document
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&doc.Index, &doc.ID, &doc.Content)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: document %q", storage.ErrNotFound, docID)
	}
	if err != nil {
		return nil, fmt.Errorf("get document %q: %w", docID, err)
	}
	return &doc, nil
}

// ForEachDocument calls fn for every corpus record in index order.
func (s *CorpusStore) ForEachDocument(ctx context.Context, fn func(core.Document) error) error {
	query, args, err := sq.Select("doc_index", "doc_id", "doc_content").
		From("corpus").
		OrderBy("doc_index").
		ToSql()
	if err != nil {
		return fmt.Errorf("building select: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("query corpus: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var doc core.Document
		if err := rows.Scan(&doc.Index, &doc.ID, &doc.Content); err != nil {
			return fmt.Errorf("scan document: %w", err)
		}
		if err := fn(doc); err != nil {
			return err
		}
	}
	return rows.Err()
}

// AddDocuments stores corpus records in one transaction.
func (s *CorpusStore) AddDocuments(ctx context.Context, docs ...core.Document) error {
	if len(docs) == 0 {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, doc := range docs {
		query, args, err := sq.Insert("corpus").
			Columns("doc_index", "doc_id", "doc_content").
			Values(doc.Index, doc.ID, doc.Content).
			Suffix("ON CONFLICT(doc_index) DO UPDATE SET doc_id = excluded.doc_id, doc_content = excluded.doc_content").
			ToSql()
		if err != nil {
			return fmt.Errorf("building insert: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert document %d: %w", doc.Index, err)
		}
	}
	return tx.Commit()
}

// ==================== Metadata ====================

// SetMetadata stores or replaces a metadata value.
func (s *CorpusStore) SetMetadata(ctx context.Context, key, value string) error {
	query, args, err := sq.Insert("metadata").
		Columns("meta_key", "meta_value").
		Values(key, value).
		Suffix("ON CONFLICT(meta_key) DO UPDATE SET meta_value = excluded.meta_value").
		ToSql()
	if err != nil {
		return fmt.Errorf("building insert: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("set metadata %q: %w", key, err)
	}
	return nil
}

// Metadata returns every stored key/value pair.
func (s *CorpusStore) Metadata(ctx context.Context) (map[string]string, error) {
	query, args, err := sq.Select("meta_key", "meta_value").From("metadata").ToSql()
	if err != nil {
		return nil, fmt.Errorf("building select: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query metadata: %w", err)
	}
	defer rows.Close()

	result := make(map[string]string)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, fmt.Errorf("scan metadata: %w", err)
		}
		result[k] = v
	}
	return result, rows.Err()
}
