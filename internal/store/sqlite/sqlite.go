package sqlite

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/kavia-common/simple-todo-list-286515-286526/internal/schema"
	_ "modernc.org/sqlite"
)

// SQLiteStore implements the store.Store contract using modernc.org/sqlite.
type SQLiteStore struct {
	dbPath string
	db     *sql.DB
}

// New creates a new SQLiteStore for the database file at dbPath.
func New(dbPath string) *SQLiteStore {
	return &SQLiteStore{dbPath: dbPath}
}

// Open opens the SQLite database with safe defaults. The file is created if
// it does not exist; concurrent schema writers queue on busy_timeout instead
// of failing fast.
func (s *SQLiteStore) Open() error {
	db, err := sql.Open("sqlite", s.dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	// Apply safe defaults
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return fmt.Errorf("failed to set pragma %q: %w", pragma, err)
		}
	}

	s.db = db
	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Ping runs a trivial query to verify the store is usable.
func (s *SQLiteStore) Ping() error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}
	var one int
	if err := s.db.QueryRow(`SELECT 1`).Scan(&one); err != nil {
		return fmt.Errorf("store not responding: %w", err)
	}
	return nil
}

// StructureExists reports whether a table with the given name exists.
func (s *SQLiteStore) StructureExists(name string) (bool, error) {
	return s.catalogHas("table", name)
}

// triggerExists reports whether a trigger with the given name exists. SQLite
// trigger creation predates IF NOT EXISTS in some deployed versions, so
// Apply emulates create-if-absent for triggers with this probe.
func (s *SQLiteStore) triggerExists(name string) (bool, error) {
	return s.catalogHas("trigger", name)
}

func (s *SQLiteStore) catalogHas(kind, name string) (bool, error) {
	if s.db == nil {
		return false, fmt.Errorf("database not opened")
	}
	var count int
	err := s.db.QueryRow(
		`SELECT COUNT(*) FROM sqlite_master WHERE type = ? AND name = ?`,
		kind, name,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to probe %s %q: %w", kind, name, err)
	}
	return count > 0, nil
}

// Structures returns the names of all user tables in the store.
func (s *SQLiteStore) Structures() ([]string, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}
	rows, err := s.db.Query(
		`SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list structures: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan structure name: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list structures: %w", err)
	}
	return names, nil
}

// Apply executes a sequence of create-if-absent schema statements. No wrapping
// transaction: each statement tolerates repetition, so a partially applied
// schema is completed by a later call rather than rolled back.
func (s *SQLiteStore) Apply(statements []string) error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}
	for _, stmt := range statements {
		if name := schema.TriggerName(stmt); name != "" {
			exists, err := s.triggerExists(name)
			if err != nil {
				return err
			}
			if exists {
				continue
			}
		}
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to apply statement %q: %w", snippet(stmt), err)
		}
	}
	return nil
}

// Fingerprint returns a stable hash of the store's structural catalog. Two
// stores with identical tables, indexes and triggers produce the same value.
func (s *SQLiteStore) Fingerprint() (string, error) {
	if s.db == nil {
		return "", fmt.Errorf("database not opened")
	}
	rows, err := s.db.Query(
		`SELECT type, name, COALESCE(sql, '') FROM sqlite_master WHERE name NOT LIKE 'sqlite_%' ORDER BY type, name`,
	)
	if err != nil {
		return "", fmt.Errorf("failed to read structural catalog: %w", err)
	}
	defer rows.Close()

	h := sha256.New()
	for rows.Next() {
		var kind, name, ddl string
		if err := rows.Scan(&kind, &name, &ddl); err != nil {
			return "", fmt.Errorf("failed to scan catalog row: %w", err)
		}
		fmt.Fprintf(h, "%s\x00%s\x00%s\x00", kind, name, ddl)
	}
	if err := rows.Err(); err != nil {
		return "", fmt.Errorf("failed to read structural catalog: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// snippet shortens a statement for error context.
func snippet(stmt string) string {
	s := strings.Join(strings.Fields(stmt), " ")
	if len(s) > 60 {
		s = s[:60] + "..."
	}
	return s
}
