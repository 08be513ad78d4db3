package store

import (
	"database/sql"
	"fmt"
	"sync"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// SQLiteStore is the SQLite-backed data store, using ncruces/go-sqlite3 through database/sql.
// Thread-safe for concurrent extraction workers.
type SQLiteStore struct {
	mu sync.RWMutex
	db *sql.DB
}

// schema defines all tables.
const schema = `
-- Extractions (one row per sentence and method)
CREATE TABLE IF NOT EXISTS extractions (
    id TEXT PRIMARY KEY,
    url TEXT NOT NULL,
    sentence TEXT NOT NULL,
    pollster TEXT NOT NULL,
    method TEXT NOT NULL,
    created_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_extractions_url ON extractions(url);
CREATE INDEX IF NOT EXISTS idx_extractions_pollster ON extractions(pollster);

-- Labelled cases
CREATE TABLE IF NOT EXISTS cases (
    id TEXT PRIMARY KEY,
    text TEXT NOT NULL,
    pollster TEXT,
    positive INTEGER NOT NULL DEFAULT 0,
    source TEXT,
    created_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_cases_positive ON cases(positive);
`

// NewSQLiteStore creates a new in-memory SQLite store.
func NewSQLiteStore() (*SQLiteStore, error) {
	return NewSQLiteStoreWithDSN(":memory:")
}

// NewSQLiteStoreWithDSN creates a store with a specific data source name.
// Use ":memory:" for in-memory or a file path for persistent storage.
func NewSQLiteStoreWithDSN(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Every pooled connection to ":memory:" would be a separate database
	db.SetMaxOpenConns(1)

	// Create schema
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// =============================================================================
// Extraction CRUD
// =============================================================================

// UpsertExtraction inserts or replaces an extraction.
func (s *SQLiteStore) UpsertExtraction(e *Extraction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO extractions (id, url, sentence, pollster, method, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			url = excluded.url,
			sentence = excluded.sentence,
			pollster = excluded.pollster,
			method = excluded.method,
			created_at = excluded.created_at
	`, e.ID, e.URL, e.Sentence, e.Pollster, e.Method, e.CreatedAt)
	if err != nil {
		return fmt.Errorf("upsert extraction %s: %w", e.ID, err)
	}
	return nil
}

// GetExtraction retrieves an extraction by ID.
func (s *SQLiteStore) GetExtraction(id string) (*Extraction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var e Extraction
	err := s.db.QueryRow(`
		SELECT id, url, sentence, pollster, method, created_at
		FROM extractions WHERE id = ?
	`, id).Scan(&e.ID, &e.URL, &e.Sentence, &e.Pollster, &e.Method, &e.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// DeleteExtraction removes an extraction.
func (s *SQLiteStore) DeleteExtraction(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`DELETE FROM extractions WHERE id = ?`, id)
	return err
}

// ListExtractions returns extractions for a URL, or all of them when url is empty.
func (s *SQLiteStore) ListExtractions(url string) ([]*Extraction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var rows *sql.Rows
	var err error

	if url != "" {
		rows, err = s.db.Query(`
			SELECT id, url, sentence, pollster, method, created_at
			FROM extractions WHERE url = ? ORDER BY created_at, id
		`, url)
	} else {
		rows, err = s.db.Query(`
			SELECT id, url, sentence, pollster, method, created_at
			FROM extractions ORDER BY created_at, id
		`)
	}

	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var extractions []*Extraction
	for rows.Next() {
		var e Extraction
		if err := rows.Scan(&e.ID, &e.URL, &e.Sentence, &e.Pollster, &e.Method, &e.CreatedAt); err != nil {
			return nil, err
		}
		extractions = append(extractions, &e)
	}

	return extractions, rows.Err()
}

// CountExtractions returns the total number of extractions.
func (s *SQLiteStore) CountExtractions() (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM extractions`).Scan(&count)
	return count, err
}

// =============================================================================
// Case CRUD
// =============================================================================

// UpsertCase inserts or replaces a labelled case.
func (s *SQLiteStore) UpsertCase(c *Case) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO cases (id, text, pollster, positive, source, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			text = excluded.text,
			pollster = excluded.pollster,
			positive = excluded.positive,
			source = excluded.source,
			created_at = excluded.created_at
	`, c.ID, c.Text, c.Pollster, boolToInt(c.Positive), c.Source, c.CreatedAt)
	if err != nil {
		return fmt.Errorf("upsert case %s: %w", c.ID, err)
	}
	return nil
}

// GetCase retrieves a case by ID.
func (s *SQLiteStore) GetCase(id string) (*Case, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var c Case
	var positive int
	var pollster, source sql.NullString

	err := s.db.QueryRow(`
		SELECT id, text, pollster, positive, source, created_at
		FROM cases WHERE id = ?
	`, id).Scan(&c.ID, &c.Text, &pollster, &positive, &source, &c.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	c.Pollster = pollster.String
	c.Source = source.String
	c.Positive = positive == 1
	return &c, nil
}

// ListCases returns the positive or negative cases.
func (s *SQLiteStore) ListCases(positive bool) ([]*Case, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT id, text, pollster, positive, source, created_at
		FROM cases WHERE positive = ? ORDER BY created_at, id
	`, boolToInt(positive))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cases []*Case
	for rows.Next() {
		var c Case
		var flag int
		var pollster, source sql.NullString

		if err := rows.Scan(&c.ID, &c.Text, &pollster, &flag, &source, &c.CreatedAt); err != nil {
			return nil, err
		}
		c.Pollster = pollster.String
		c.Source = source.String
		c.Positive = flag == 1
		cases = append(cases, &c)
	}

	return cases, rows.Err()
}

// CountCases returns the total number of cases.
func (s *SQLiteStore) CountCases() (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM cases`).Scan(&count)
	return count, err
}

// =============================================================================
// Helpers
// =============================================================================

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
