package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/RomanNihal/Notes-App-with-MCP/internal/apperror"
	"github.com/RomanNihal/Notes-App-with-MCP/internal/model"
	"github.com/RomanNihal/Notes-App-with-MCP/internal/repository"
)

// COMPILE-TIME INTERFACE CHECK:
// This line verifies AT COMPILE TIME that *DB implements repository.NoteRepository.
//
//   - `var _ X = (*Y)(nil)` creates a nil pointer of type *Y
//   - It assigns it to a variable of type X (the interface)
//   - If *Y doesn't implement X, the compiler errors immediately
//   - The `_` means we don't actually use the variable — it's just a check
//
// Without this, you'd only discover a missing method when you try to pass
// *DB to something that expects NoteRepository — which could be much later.
var _ repository.NoteRepository = (*DB)(nil)

// Create inserts a new note into the database.
//
// KEY CONCEPTS:
//
// 1. GENERATED IDs:
//    We do NOT set note.ID — the id column is INTEGER PRIMARY KEY AUTOINCREMENT,
//    so SQLite assigns the next id on insert. result.LastInsertId() hands it
//    back, and we write it into the caller's struct.
//
// 2. POINTER RECEIVER (*model.Note):
//    We take a pointer so we can MODIFY the original struct.
//    After Create(), the caller's note has the generated ID and CreatedAt.
//
// 3. PARAMETERIZED QUERIES (the ? placeholders):
//    NEVER build SQL strings with fmt.Sprintf or string concatenation!
//    The driver safely escapes the bound values, preventing SQL injection.
func (db *DB) Create(ctx context.Context, note *model.Note) error {
	// created_at defaults to the moment of insertion when the caller didn't
	// supply one. We bind it explicitly (instead of relying on the column
	// DEFAULT) so the in-memory struct and the stored row agree to the
	// nanosecond without a read-back.
	if note.CreatedAt.IsZero() {
		note.CreatedAt = time.Now().UTC()
	}

	result, err := db.conn.ExecContext(ctx,
		`INSERT INTO notes (title, content, created_at)
		 VALUES (?, ?, ?)`,
		note.Title,
		note.Content,
		note.CreatedAt,
	)
	if err != nil {
		// ERROR WRAPPING:
		// fmt.Errorf("context: %w", err) wraps the original error. The %w verb
		// (not %v!) preserves the error chain so callers can use errors.Is().
		return fmt.Errorf("sqlite: creating note: %w", err)
	}

	// LastInsertId returns the rowid of the inserted row — for an
	// INTEGER PRIMARY KEY table, that IS the id column.
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("sqlite: reading inserted note id: %w", err)
	}
	note.ID = id

	return nil
}

// List retrieves notes with skip/limit pagination.
//
// KEY CONCEPTS:
//
// 1. QueryContext returns *sql.Rows — an iterator you loop over with rows.Next().
//
// 2. defer rows.Close() — ABSOLUTELY CRITICAL:
//    sql.Rows holds a database connection from the pool. If you forget to
//    Close(), that connection is never returned. After enough leaked
//    connections, your app runs out and hangs forever. The defer ensures
//    Close() runs on every exit path, including errors.
//
// 3. ORDER BY id:
//    Ids are assigned in insertion order, so this returns oldest-first.
//    SQLite would happen to return that order for a full scan anyway, but an
//    explicit sort key makes insertion order a contract instead of an accident.
func (db *DB) List(ctx context.Context, opts repository.ListOptions) ([]model.Note, error) {
	// Apply defaults if not specified
	limit := opts.Limit
	if limit <= 0 {
		limit = 100 // Default page size
	}

	skip := opts.Skip
	if skip < 0 {
		skip = 0
	}

	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, title, content, created_at
		 FROM notes
		 ORDER BY id
		 LIMIT ? OFFSET ?`,
		limit,
		skip,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing notes: %w", err)
	}
	// CRITICAL: always close rows when done!
	defer rows.Close()

	// Pre-allocate with capacity `limit` to avoid repeated growth as we append.
	// Length 0 matters too: an empty result marshals as [] rather than null.
	notes := make([]model.Note, 0, limit)

	for rows.Next() {
		var n model.Note
		if err := rows.Scan(&n.ID, &n.Title, &n.Content, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("sqlite: scanning note row: %w", err)
		}
		notes = append(notes, n)
	}

	// rows.Err() catches errors that happened DURING iteration
	// (e.g. the connection dropping mid-scan).
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating notes: %w", err)
	}

	return notes, nil
}

// Delete removes a note from the database by its id.
//
// CHECKING IF THE ROW EXISTED:
// ExecContext returns a sql.Result with RowsAffected(). If no rows were
// affected, the note doesn't exist → return NotFound. This is more efficient
// than doing a SELECT + DELETE (one query vs two), and the engine serializes
// concurrent deletes so exactly one of two racing calls sees the row.
func (db *DB) Delete(ctx context.Context, id int64) error {
	result, err := db.conn.ExecContext(ctx,
		`DELETE FROM notes WHERE id = ?`,
		id,
	)
	if err != nil {
		return fmt.Errorf("sqlite: deleting note %d: %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("note", id)
	}

	return nil
}
