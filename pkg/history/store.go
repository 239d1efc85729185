// Package history persists recent validation results so earlier runs can
// be reviewed and re-exported. The validation engine never depends on
// this package; the CLI wires the two together.
package history

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/epgtools/epgverify/pkg/report"
)

// MaxEntries is the number of most recent results retained; older entries
// are trimmed on every save.
const MaxEntries = 5

// Entry is one stored validation run.
type Entry struct {
	ID         string         `json:"id"`
	FileName   string         `json:"fileName"`
	FilePath   string         `json:"filePath,omitempty"`
	Timestamp  time.Time      `json:"timestamp"`
	IsValid    bool           `json:"isValid"`
	ErrorCount int            `json:"errorCount"`
	Result     *report.Result `json:"result"`
}

// Store is the persistence port. Implementations keep at most MaxEntries
// entries, newest first.
type Store interface {
	Save(fileName, filePath string, result *report.Result) (*Entry, error)
	List() ([]*Entry, error)
	Clear() error
	Close() error
}

// SQLiteStore implements Store on a local SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS validation_history (
	id TEXT PRIMARY KEY,
	file_name TEXT NOT NULL,
	file_path TEXT NOT NULL DEFAULT '',
	created_at TEXT NOT NULL,
	is_valid INTEGER NOT NULL,
	error_count INTEGER NOT NULL,
	result_json TEXT NOT NULL
);`

// Open opens (creating if necessary) a history database at path. Use
// ":memory:" for an ephemeral store.
func Open(path string) (*SQLiteStore, error) {
	dsn := path
	if path != ":memory:" {
		dsn = fmt.Sprintf("file:%s?_journal_mode=WAL&_busy_timeout=5000", path)
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("pinging history database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initializing history schema: %w", err)
	}
	// SQLite supports a single writer.
	db.SetMaxOpenConns(1)
	return &SQLiteStore{db: db}, nil
}

// Save stores a result keyed by a generated id and trims the table to the
// MaxEntries most recent entries.
func (s *SQLiteStore) Save(fileName, filePath string, result *report.Result) (*Entry, error) {
	entry := &Entry{
		ID:         uuid.NewString(),
		FileName:   fileName,
		FilePath:   filePath,
		Timestamp:  time.Now().UTC(),
		IsValid:    result.IsValid,
		ErrorCount: result.ErrorCount(),
		Result:     result,
	}

	resultJSON, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("encoding result: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("beginning save: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.Exec(
		`INSERT INTO validation_history (id, file_name, file_path, created_at, is_valid, error_count, result_json)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		entry.ID, entry.FileName, entry.FilePath, entry.Timestamp.Format(time.RFC3339Nano),
		boolToInt(entry.IsValid), entry.ErrorCount, string(resultJSON),
	)
	if err != nil {
		return nil, fmt.Errorf("inserting history entry: %w", err)
	}

	// Recency ordering uses rowid, not created_at: RFC3339Nano strings
	// have variable width, so they do not sort chronologically within a
	// second. rowid strictly follows insertion order here.
	_, err = tx.Exec(
		`DELETE FROM validation_history WHERE id NOT IN (
			SELECT id FROM validation_history ORDER BY rowid DESC LIMIT ?
		)`, MaxEntries,
	)
	if err != nil {
		return nil, fmt.Errorf("trimming history: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing save: %w", err)
	}
	return entry, nil
}

// List returns stored entries, newest first.
func (s *SQLiteStore) List() ([]*Entry, error) {
	rows, err := s.db.Query(
		`SELECT id, file_name, file_path, created_at, is_valid, error_count, result_json
		 FROM validation_history ORDER BY rowid DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var entries []*Entry
	for rows.Next() {
		var (
			e          Entry
			createdAt  string
			isValid    int
			resultJSON string
		)
		if err := rows.Scan(&e.ID, &e.FileName, &e.FilePath, &createdAt, &isValid, &e.ErrorCount, &resultJSON); err != nil {
			return nil, fmt.Errorf("scanning history entry: %w", err)
		}
		ts, err := time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, fmt.Errorf("parsing history timestamp: %w", err)
		}
		e.Timestamp = ts
		e.IsValid = isValid != 0

		var result report.Result
		if err := json.Unmarshal([]byte(resultJSON), &result); err != nil {
			return nil, fmt.Errorf("decoding stored result: %w", err)
		}
		e.Result = &result
		entries = append(entries, &e)
	}
	return entries, rows.Err()
}

// Clear removes every stored entry.
func (s *SQLiteStore) Clear() error {
	if _, err := s.db.Exec(`DELETE FROM validation_history`); err != nil {
		return fmt.Errorf("clearing history: %w", err)
	}
	return nil
}

// Close releases the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
