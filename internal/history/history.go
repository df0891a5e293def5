// Package history records evaluated expressions in a SQLite database.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Entry is one recorded evaluation.
type Entry struct {
	ID      string
	Session string
	Expr    string
	// Result is meaningful only when Err is empty.
	Result  float64
	Err     string
	Created time.Time
}

// Store is an evaluation log. It is safe for concurrent use.
type Store struct {
	db *sql.DB
}

const schema = `CREATE TABLE IF NOT EXISTS evaluations (
	id TEXT PRIMARY KEY,
	session TEXT NOT NULL,
	expr TEXT NOT NULL,
	result REAL,
	error TEXT NOT NULL DEFAULT '',
	created_at INTEGER NOT NULL
)`

// Open opens or creates the database at path and ensures the schema exists.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history: %w", err)
	}
	// One connection, so that :memory: is one database.
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to history: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create history table: %w", err)
	}
	return &Store{db: db}, nil
}

// Record appends an evaluation. If evalErr is nil, result is stored as the
// value; otherwise its message is stored and result is ignored. The new
// entry's ID is returned.
func (s *Store) Record(ctx context.Context, session, expr string, result float64, evalErr error) (string, error) {
	id := uuid.New().String()
	var (
		r   sql.NullFloat64
		msg string
	)
	if evalErr != nil {
		msg = evalErr.Error()
	} else {
		r = sql.NullFloat64{Float64: result, Valid: true}
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO evaluations (id, session, expr, result, error, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		id, session, expr, r, msg, time.Now().UnixNano())
	if err != nil {
		return "", fmt.Errorf("failed to record %q: %w", expr, err)
	}
	return id, nil
}

// Recent returns up to n entries, newest first. If session is not empty,
// only that session's entries are returned.
func (s *Store) Recent(ctx context.Context, session string, n int) ([]Entry, error) {
	q := `SELECT id, session, expr, result, error, created_at FROM evaluations`
	args := []any{}
	if session != "" {
		q += ` WHERE session = ?`
		args = append(args, session)
	}
	q += ` ORDER BY created_at DESC, rowid DESC LIMIT ?`
	args = append(args, n)
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()
	var r []Entry
	for rows.Next() {
		var (
			e       Entry
			res     sql.NullFloat64
			created int64
		)
		if err := rows.Scan(&e.ID, &e.Session, &e.Expr, &res, &e.Err, &created); err != nil {
			return nil, fmt.Errorf("failed to read history: %w", err)
		}
		e.Result = res.Float64
		e.Created = time.Unix(0, created)
		r = append(r, e)
	}
	return r, rows.Err()
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}
