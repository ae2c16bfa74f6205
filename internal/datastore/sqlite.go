package datastore

import (
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/pkoskela/airboard/internal/schema"
)

// SQLiteStore implements the Store interface for the local SQLite file.
type SQLiteStore struct {
	db     *sql.DB
	dbPath string
}

// NewSQLiteStore creates a new SQLiteStore instance
func NewSQLiteStore(dbPath string) *SQLiteStore {
	return &SQLiteStore{
		dbPath: dbPath,
	}
}

// Connect opens a connection to the SQLite database, creating the file if
// it does not exist yet.
func (s *SQLiteStore) Connect() error {
	db, err := sql.Open("sqlite", s.dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db
	return nil
}

// Replace drops and recreates the applications table and inserts rows, all
// inside one transaction. A failed run rolls back and leaves the previous
// contents untouched.
func (s *SQLiteStore) Replace(extraColumns []string, rows []map[string]any) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		// Rollback is a no-op after a successful commit
		_ = tx.Rollback()
	}()

	if _, err := tx.Exec(fmt.Sprintf("DROP TABLE IF EXISTS %s", schema.Table)); err != nil {
		return fmt.Errorf("failed to drop old table: %w", err)
	}
	if _, err := tx.Exec(schema.DDL(extraColumns)); err != nil {
		return fmt.Errorf("failed to create table: %w", err)
	}

	columns := make([]string, 0, len(schema.BaseColumns)+len(extraColumns))
	columns = append(columns, schema.BaseColumns...)
	columns = append(columns, extraColumns...)

	quoted := make([]string, len(columns))
	placeholders := make([]string, len(columns))
	for i, col := range columns {
		quoted[i] = fmt.Sprintf("%q", col)
		placeholders[i] = "?"
	}
	query := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)",
		schema.Table,
		strings.Join(quoted, ", "),
		strings.Join(placeholders, ", "),
	)

	stmt, err := tx.Prepare(query)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, row := range rows {
		values := make([]any, len(columns))
		for i, col := range columns {
			values[i] = row[col]
		}

		if _, err := stmt.Exec(values...); err != nil {
			return fmt.Errorf("failed to insert record %v: %w", row[schema.ColAirtableID], err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
