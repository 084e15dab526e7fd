// Package storage is the local SQLite store of folio. It keeps the bearer
// tokens of browser and CLI sessions and the activity log written by the
// worker. Business data never lands here; it stays in the backend API.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Activity is one recorded mutation event.
type Activity struct {
	ID         int64
	EventID    string
	Kind       string
	SubjectID  int64
	UserID     string
	Summary    string
	OccurredAt time.Time
	RecordedAt time.Time
}

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	if err := RunMigrations(dbPath); err != nil {
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	// The web server and the worker share the file.
	dsn := dbPath + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Ping is used by the readiness probe.
func (r *SQLiteRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// LoadToken implements session.TokenStore.
func (r *SQLiteRepository) LoadToken(ctx context.Context, key string) (string, error) {
	var token string
	err := r.db.QueryRowContext(ctx,
		`SELECT token FROM session_tokens WHERE session_key = ?`, key).Scan(&token)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("load token: %w", err)
	}
	return token, nil
}

// SaveToken implements session.TokenStore.
func (r *SQLiteRepository) SaveToken(ctx context.Context, key, token string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO session_tokens (session_key, token, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (session_key) DO UPDATE SET token = excluded.token, updated_at = CURRENT_TIMESTAMP`,
		key, token)
	if err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	return nil
}

// DeleteToken implements session.TokenStore.
func (r *SQLiteRepository) DeleteToken(ctx context.Context, key string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM session_tokens WHERE session_key = ?`, key); err != nil {
		return fmt.Errorf("delete token: %w", err)
	}
	return nil
}

// PurgeTokens removes browser sessions untouched since before cutoff and
// returns how many were removed. Keys listed in keep survive.
func (r *SQLiteRepository) PurgeTokens(ctx context.Context, cutoff time.Time, keep ...string) (int64, error) {
	query := `DELETE FROM session_tokens WHERE updated_at < ?`
	args := []any{cutoff.UTC().Format("2006-01-02 15:04:05")}
	for _, k := range keep {
		query += ` AND session_key <> ?`
		args = append(args, k)
	}
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("purge tokens: %w", err)
	}
	return res.RowsAffected()
}

// RecordActivity stores an event once. Redelivered events with a known
// EventID are ignored and reported with inserted == false.
func (r *SQLiteRepository) RecordActivity(ctx context.Context, a Activity) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO activity (event_id, kind, subject_id, user_id, summary, occurred_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (event_id) DO NOTHING`,
		a.EventID, a.Kind, a.SubjectID, a.UserID, a.Summary, a.OccurredAt.UTC())
	if err != nil {
		return false, fmt.Errorf("record activity: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("record activity: %w", err)
	}
	return n == 1, nil
}

// RecentActivity returns the newest entries first. An empty userID lists
// every user.
func (r *SQLiteRepository) RecentActivity(ctx context.Context, userID string, limit int) ([]Activity, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `SELECT id, event_id, kind, subject_id, user_id, summary, occurred_at, recorded_at FROM activity`
	args := []any{}
	if userID != "" {
		query += ` WHERE user_id = ?`
		args = append(args, userID)
	}
	query += ` ORDER BY occurred_at DESC, id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list activity: %w", err)
	}
	defer rows.Close()

	var out []Activity
	for rows.Next() {
		var a Activity
		if err := rows.Scan(&a.ID, &a.EventID, &a.Kind, &a.SubjectID, &a.UserID, &a.Summary, &a.OccurredAt, &a.RecordedAt); err != nil {
			return nil, fmt.Errorf("scan activity: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
