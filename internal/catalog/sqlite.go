// Package catalog persists report metadata so generated reports can
// be listed, located, and verified after the generating process has
// exited. Only metadata is stored; scan results live solely in the
// signed report files.
package catalog

import (
	"database/sql"
	"errors"
	"fmt"

	"residue/internal/catalog/migrations"
	"residue/internal/scan"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// SQLiteCatalog implements scan.Catalog using SQLite.
type SQLiteCatalog struct {
	db   *sql.DB
	path string
}

var _ scan.Catalog = (*SQLiteCatalog)(nil)

// NewSQLiteCatalog opens (creating if needed) the catalog at path and
// migrates it to the latest schema. path can be ":memory:" for an
// in-memory catalog.
func NewSQLiteCatalog(path string) (*SQLiteCatalog, error) {
	db, err := OpenConnection(path)
	if err != nil {
		return nil, err
	}

	if err := migrations.MigrateUp(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating catalog: %w", err)
	}

	c := &SQLiteCatalog{db: db, path: path}

	// The schema must be exactly current before any query runs; a
	// catalog left dirty or written by a newer binary fails here
	// instead of at the first query.
	if err := c.CheckMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("checking catalog schema: %w", err)
	}

	return c, nil
}

// OpenConnection opens and configures a SQLite connection with the
// appropriate PRAGMAs. Exported for tools and tests that need a
// properly configured connection.
func OpenConnection(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}

	// An in-memory database exists per connection; pin the pool to one
	// so the migrated schema stays visible.
	if path == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	// Enable foreign key constraints (SQLite default is OFF for backward compatibility)
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return db, nil
}

// RecordReport inserts the metadata row for a newly generated report.
// Report IDs are unique; recording the same ID twice is an error.
func (c *SQLiteCatalog) RecordReport(e scan.CatalogEntry) error {
	_, err := c.db.Exec(`
		INSERT INTO reports (report_id, created_at, data_path, document_path, signature, public_key)
		VALUES (?, ?, ?, ?, ?, ?)`,
		e.ReportID, e.CreatedAt, e.DataPath, e.DocumentPath, e.Signature, e.PublicKey,
	)
	if err != nil {
		return fmt.Errorf("recording report %s: %w", e.ReportID, err)
	}
	return nil
}

// GetReport returns the entry for reportID, or nil when unknown.
func (c *SQLiteCatalog) GetReport(reportID string) (*scan.CatalogEntry, error) {
	row := c.db.QueryRow(`
		SELECT report_id, created_at, data_path, document_path, signature, public_key
		FROM reports WHERE report_id = ?`, reportID)

	var e scan.CatalogEntry
	err := row.Scan(&e.ReportID, &e.CreatedAt, &e.DataPath, &e.DocumentPath, &e.Signature, &e.PublicKey)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, fmt.Errorf("finding report %s: %w", reportID, err)
	}
	return &e, nil
}

// ListReports returns the newest entries first, up to limit (all when
// limit <= 0).
func (c *SQLiteCatalog) ListReports(limit int) ([]scan.CatalogEntry, error) {
	if limit <= 0 {
		limit = -1 // SQLite: negative LIMIT means no limit
	}

	rows, err := c.db.Query(`
		SELECT report_id, created_at, data_path, document_path, signature, public_key
		FROM reports ORDER BY created_at DESC, report_id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing reports: %w", err)
	}
	defer rows.Close()

	var entries []scan.CatalogEntry
	for rows.Next() {
		var e scan.CatalogEntry
		if err := rows.Scan(&e.ReportID, &e.CreatedAt, &e.DataPath, &e.DocumentPath, &e.Signature, &e.PublicKey); err != nil {
			return nil, fmt.Errorf("scanning report row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating reports: %w", err)
	}
	return entries, nil
}

// CheckMigrations verifies the schema is current.
func (c *SQLiteCatalog) CheckMigrations() error {
	return migrations.CheckStatus(c.db)
}

// Close closes the underlying database.
func (c *SQLiteCatalog) Close() error {
	return c.db.Close()
}
