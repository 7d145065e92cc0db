// Package history persists past assessments to a local SQLite
// database. It belongs to the presentation layer: the inference core
// has no file or persisted-state surface.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"covex/internal/triage"
)

// Entry is one recorded assessment.
type Entry struct {
	ID             string
	PatientName    string
	Result         string
	Recommendation string
	RiskLevel      triage.RiskLevel
	CreatedAt      time.Time
}

// Store manages the assessment history database.
type Store struct {
	db   *sql.DB
	path string
}

// Open creates or opens the history store at the given path, creating
// parent directories as needed.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("history: create directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("history: open database: %w", err)
	}

	s := &Store{db: db, path: path}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("history: initialize schema: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error { return s.db.Close() }

// Path returns the database file path.
func (s *Store) Path() string { return s.path }

func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS assessments (
		id TEXT PRIMARY KEY,
		patient_name TEXT NOT NULL,
		result TEXT NOT NULL,
		recommendation TEXT NOT NULL,
		risk_level TEXT NOT NULL,
		created_at DATETIME NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_assessments_created_at
		ON assessments(created_at DESC);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Append records one assessment.
func (s *Store) Append(e Entry) error {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.Exec(
		`INSERT INTO assessments (id, patient_name, result, recommendation, risk_level, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		e.ID, e.PatientName, e.Result, e.Recommendation, string(e.RiskLevel), e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("history: append: %w", err)
	}
	return nil
}

// Recent returns up to n assessments, newest first.
func (s *Store) Recent(n int) ([]Entry, error) {
	rows, err := s.db.Query(
		`SELECT id, patient_name, result, recommendation, risk_level, created_at
		 FROM assessments ORDER BY created_at DESC, id LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("history: query: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		var risk string
		if err := rows.Scan(&e.ID, &e.PatientName, &e.Result, &e.Recommendation, &risk, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("history: scan: %w", err)
		}
		e.RiskLevel = triage.RiskLevel(risk)
		out = append(out, e)
	}
	return out, rows.Err()
}
