// Package sqlite implements the repository interfaces using SQLite as the storage backend.
//
// WHY SQLITE?
// SQLite is an embedded database — it lives inside your Go binary as a single file.
// No separate database server to install, configure, or manage. Perfect for:
// - A single-table notes app with one writer process
// - Development and testing (use ":memory:" for an in-memory DB)
//
// WHY modernc.org/sqlite INSTEAD OF github.com/mattn/go-sqlite3?
// mattn/go-sqlite3 uses CGo (calls C code from Go), which means you need a C compiler
// installed and cross-compilation becomes painful. modernc.org/sqlite is a pure Go
// translation of the SQLite C code — no C compiler needed, works everywhere Go works.
//
// DATABASE/SQL OVERVIEW:
// Go's standard library provides "database/sql" — a generic interface for SQL databases.
// It works with any database through "drivers". Key types:
//   - sql.DB   — a connection pool (NOT a single connection!)
//   - sql.Row  — a single result row
//   - sql.Rows — multiple result rows (must be closed!)
//
// Each HTTP request borrows a connection from the pool for the duration of its
// query and returns it when the rows are closed — that's the "scoped session"
// lifecycle: no handle ever outlives its request.
package sqlite

import (
	"database/sql"
	"fmt"

	// BLANK IMPORT:
	// The underscore import `_ "modernc.org/sqlite"` is a "side-effect only" import.
	// The sqlite package's init() function registers itself with database/sql as a
	// driver named "sqlite". After this import, sql.Open("sqlite", ...) knows how
	// to talk to SQLite. This is Go's plugin pattern — drivers register at init time.
	_ "modernc.org/sqlite"
)

// DB wraps a sql.DB connection pool and provides repository methods.
//
// WHY WRAP sql.DB IN A STRUCT?
// 1. We can attach methods to it (Create, List, Delete)
// 2. It implements the NoteRepository interface from repository.go
// 3. We control the lifecycle (New creates it, Close destroys it)
type DB struct {
	conn *sql.DB
}

// New creates a new SQLite database connection and creates the schema.
//
// dbPath examples:
//   - "data/notes.db" → file-based database (persistent)
//   - ":memory:"      → in-memory database (great for tests, lost on close)
//
// sql.Open() does NOT actually open a connection — it just creates a pool
// manager. We call Ping() to force an immediate connection, so a bad path or
// permissions issue surfaces at startup instead of on the first query.
func New(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	// WAL (Write-Ahead Logging) mode:
	// Default SQLite locks the entire database during writes. WAL mode allows
	// concurrent reads WHILE a write is happening. SQLite still serializes the
	// writes themselves — the server is multi-request-concurrent, but it relies
	// entirely on the engine for write ordering (no app-level locking).
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: setting WAL mode: %w", err)
	}

	db := &DB{conn: conn}

	// Create the notes table if it doesn't exist yet
	if err := db.createSchema(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: creating schema: %w", err)
	}

	return db, nil
}

// Close closes the database connection pool.
//
// ALWAYS DEFER CLOSE:
// Wherever you call New(), make sure Close() runs on shutdown — it flushes the
// WAL and releases the file lock.
func (db *DB) Close() error {
	return db.conn.Close()
}

// createSchema creates the notes table and its index.
//
// CREATE TABLE IF NOT EXISTS is idempotent — safe to run on every startup.
// There is no migration framework here; the schema is a single flat table.
//
// AUTOINCREMENT (vs plain INTEGER PRIMARY KEY):
// A plain INTEGER PRIMARY KEY can reuse the id of a deleted row.
// AUTOINCREMENT keeps a high-water mark so ids are monotonically increasing
// and never reused — which is the contract callers rely on after a delete.
//
// The title index speeds up lookups by title. It is an optimization only,
// not a uniqueness constraint — duplicate titles are allowed.
func (db *DB) createSchema() error {
	_, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS notes (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			title      TEXT NOT NULL,
			content    TEXT NOT NULL DEFAULT '',
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_notes_title ON notes(title);
	`)
	if err != nil {
		return fmt.Errorf("creating notes table: %w", err)
	}

	return nil
}
