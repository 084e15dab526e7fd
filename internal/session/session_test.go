package session

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/golang-jwt/jwt/v5"

	"folio/internal/log"
)

// countingTokens records writes so tests can assert on storage traffic.
type countingTokens struct {
	*MemoryTokens
	saves   int
	deletes int
	failErr error
}

func newCountingTokens() *countingTokens {
	return &countingTokens{MemoryTokens: NewMemoryTokens()}
}

func (c *countingTokens) SaveToken(ctx context.Context, key, token string) error {
	if c.failErr != nil {
		return c.failErr
	}
	c.saves++
	return c.MemoryTokens.SaveToken(ctx, key, token)
}

func (c *countingTokens) DeleteToken(ctx context.Context, key string) error {
	if c.failErr != nil {
		return c.failErr
	}
	c.deletes++
	return c.MemoryTokens.DeleteToken(ctx, key)
}

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return tok
}

func TestLoginLogout(t *testing.T) {
	ctx := context.Background()
	tokens := newCountingTokens()
	s, err := Open(ctx, tokens, "browser-1", log.Discard())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if s.IsAuthenticated() || s.User() != nil {
		t.Fatal("new store should be anonymous")
	}

	tok := signedToken(t, jwt.MapClaims{"sub": "u1", "email": "a@b.se", "given_name": "Ada", "role": "Admin"})
	if err := s.Login(ctx, tok); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if !s.IsAuthenticated() {
		t.Fatal("expected authenticated after login")
	}
	u := s.User()
	if u == nil || u.ID != "u1" || u.Email != "a@b.se" || u.FirstName != "Ada" || !u.IsAdmin() {
		t.Fatalf("unexpected user: %+v", u)
	}
	if stored, _ := tokens.LoadToken(ctx, "browser-1"); stored != tok {
		t.Fatalf("token not persisted, got %q", stored)
	}

	if err := s.Logout(ctx); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if s.IsAuthenticated() || s.User() != nil || s.Token() != "" {
		t.Fatal("expected anonymous after logout")
	}
	if stored, _ := tokens.LoadToken(ctx, "browser-1"); stored != "" {
		t.Fatalf("durable storage still holds %q", stored)
	}
}

func TestOpenSeedsWithoutWriteBack(t *testing.T) {
	ctx := context.Background()
	tokens := newCountingTokens()
	tok := signedToken(t, jwt.MapClaims{"sub": "u2"})
	_ = tokens.MemoryTokens.SaveToken(ctx, "cli", tok)

	s, err := Open(ctx, tokens, "cli", log.Discard())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if s.Token() != tok || s.User() == nil || s.User().ID != "u2" {
		t.Fatalf("store not seeded: token=%q user=%+v", s.Token(), s.User())
	}
	if tokens.saves != 0 {
		t.Fatalf("seeding wrote back %d times", tokens.saves)
	}

	// Same token again is a no-op.
	if err := s.Login(ctx, tok); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if tokens.saves != 0 {
		t.Fatalf("re-login with the same token wrote %d times", tokens.saves)
	}
}

func TestMalformedTokenKeepsToken(t *testing.T) {
	ctx := context.Background()
	s, _ := Open(ctx, NewMemoryTokens(), "k", log.Discard())

	if err := s.Login(ctx, "not-a-jwt"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if s.User() != nil {
		t.Fatalf("expected nil user, got %+v", s.User())
	}
	if !s.IsAuthenticated() || s.Token() != "not-a-jwt" {
		t.Fatal("malformed token must still be retained")
	}
}

func TestLoginEmptyTokenLogsOut(t *testing.T) {
	ctx := context.Background()
	tokens := newCountingTokens()
	s, _ := Open(ctx, tokens, "k", log.Discard())
	_ = s.Login(ctx, "abc")
	if err := s.Login(ctx, ""); err != nil {
		t.Fatalf("Login(\"\"): %v", err)
	}
	if s.IsAuthenticated() || tokens.deletes != 1 {
		t.Fatalf("expected logout, authenticated=%v deletes=%d", s.IsAuthenticated(), tokens.deletes)
	}
	// Logging out twice does not touch storage again.
	_ = s.Logout(ctx)
	if tokens.deletes != 1 {
		t.Fatalf("deletes = %d, want 1", tokens.deletes)
	}
}

func TestLoginStorageFailureKeepsState(t *testing.T) {
	ctx := context.Background()
	tokens := newCountingTokens()
	s, _ := Open(ctx, tokens, "k", log.Discard())
	_ = s.Login(ctx, "first")

	tokens.failErr = errors.New("disk full")
	if err := s.Login(ctx, "second"); err == nil {
		t.Fatal("expected error")
	}
	if s.Token() != "first" {
		t.Fatalf("token changed despite failed write: %q", s.Token())
	}
}

func TestUserIsCopy(t *testing.T) {
	ctx := context.Background()
	s, _ := Open(ctx, NewMemoryTokens(), "k", log.Discard())
	_ = s.Login(ctx, signedToken(t, jwt.MapClaims{"sub": "u3", "role": "User"}))

	u := s.User()
	u.Role = "Admin"
	if s.User().IsAdmin() {
		t.Fatal("mutating the returned user changed the store")
	}
}

func TestConcurrentReaders(t *testing.T) {
	ctx := context.Background()
	s, _ := Open(ctx, NewMemoryTokens(), "k", log.Discard())
	tok := signedToken(t, jwt.MapClaims{"sub": "u4"})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = s.IsAuthenticated()
				_ = s.User()
			}
		}()
	}
	for i := 0; i < 10; i++ {
		_ = s.Login(ctx, tok)
		_ = s.Logout(ctx)
	}
	wg.Wait()
}
