package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func newTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "folio.db"))
	if err != nil {
		t.Fatalf("NewSQLiteRepository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestTokens(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	if tok, err := repo.LoadToken(ctx, "missing"); err != nil || tok != "" {
		t.Fatalf("LoadToken(missing) = %q, %v", tok, err)
	}

	if err := repo.SaveToken(ctx, "sid-1", "tok-a"); err != nil {
		t.Fatalf("SaveToken: %v", err)
	}
	if err := repo.SaveToken(ctx, "sid-1", "tok-b"); err != nil {
		t.Fatalf("SaveToken overwrite: %v", err)
	}
	if tok, _ := repo.LoadToken(ctx, "sid-1"); tok != "tok-b" {
		t.Fatalf("LoadToken = %q, want tok-b", tok)
	}

	if err := repo.DeleteToken(ctx, "sid-1"); err != nil {
		t.Fatalf("DeleteToken: %v", err)
	}
	if tok, _ := repo.LoadToken(ctx, "sid-1"); tok != "" {
		t.Fatalf("token survived delete: %q", tok)
	}
}

func TestPurgeTokensKeepsListedKeys(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)
	_ = repo.SaveToken(ctx, "browser", "a")
	_ = repo.SaveToken(ctx, "cli", "b")

	n, err := repo.PurgeTokens(ctx, time.Now().Add(time.Hour), "cli")
	if err != nil {
		t.Fatalf("PurgeTokens: %v", err)
	}
	if n != 1 {
		t.Fatalf("purged %d rows, want 1", n)
	}
	if tok, _ := repo.LoadToken(ctx, "cli"); tok != "b" {
		t.Fatalf("kept key lost its token")
	}
}

func TestPurgeTokensCountsFromLogin(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)
	_ = repo.SaveToken(ctx, "stale", "a")
	_ = repo.SaveToken(ctx, "fresh", "b")

	loggedIn := time.Now().Add(-48 * time.Hour).UTC().Format("2006-01-02 15:04:05")
	if _, err := repo.db.ExecContext(ctx,
		`UPDATE session_tokens SET updated_at = ? WHERE session_key = ?`, loggedIn, "stale"); err != nil {
		t.Fatalf("backdate: %v", err)
	}
	// Reading a token does not extend its lifetime.
	if tok, _ := repo.LoadToken(ctx, "stale"); tok != "a" {
		t.Fatalf("LoadToken = %q", tok)
	}

	n, err := repo.PurgeTokens(ctx, time.Now().Add(-24*time.Hour))
	if err != nil {
		t.Fatalf("PurgeTokens: %v", err)
	}
	if n != 1 {
		t.Fatalf("purged %d rows, want 1", n)
	}
	if tok, _ := repo.LoadToken(ctx, "stale"); tok != "" {
		t.Errorf("stale token survived: %q", tok)
	}
	if tok, _ := repo.LoadToken(ctx, "fresh"); tok != "b" {
		t.Errorf("fresh token lost: %q", tok)
	}
}

func TestActivity(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	events := []Activity{
		{EventID: "e1", Kind: "month.created", SubjectID: 1, UserID: "u1", Summary: "March 2025", OccurredAt: base},
		{EventID: "e2", Kind: "bill.created", SubjectID: 9, UserID: "u1", Summary: "Food 300", OccurredAt: base.Add(time.Minute)},
		{EventID: "e3", Kind: "comment.created", SubjectID: 4, UserID: "u2", OccurredAt: base.Add(2 * time.Minute)},
	}
	for _, e := range events {
		inserted, err := repo.RecordActivity(ctx, e)
		if err != nil || !inserted {
			t.Fatalf("RecordActivity(%s) = %v, %v", e.EventID, inserted, err)
		}
	}

	// Redelivery is ignored.
	inserted, err := repo.RecordActivity(ctx, events[0])
	if err != nil || inserted {
		t.Fatalf("duplicate RecordActivity = %v, %v", inserted, err)
	}

	all, err := repo.RecentActivity(ctx, "", 10)
	if err != nil {
		t.Fatalf("RecentActivity: %v", err)
	}
	if len(all) != 3 || all[0].EventID != "e3" || all[2].EventID != "e1" {
		t.Fatalf("unexpected order: %+v", all)
	}
	if !all[2].OccurredAt.Equal(base) {
		t.Errorf("OccurredAt = %v, want %v", all[2].OccurredAt, base)
	}

	mine, err := repo.RecentActivity(ctx, "u1", 1)
	if err != nil {
		t.Fatalf("RecentActivity(u1): %v", err)
	}
	if len(mine) != 1 || mine[0].EventID != "e2" {
		t.Fatalf("unexpected user filter result: %+v", mine)
	}
}

func TestMigrationsAreIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "folio.db")
	if err := RunMigrations(path); err != nil {
		t.Fatalf("first run: %v", err)
	}
	if err := RunMigrations(path); err != nil {
		t.Fatalf("second run: %v", err)
	}
}
