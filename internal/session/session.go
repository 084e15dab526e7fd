// Package session holds the bearer token of one client and the identity
// decoded from it.
//
// A Store is bound to a single key of a TokenStore. It reads the persisted
// token once when opened and writes through on every transition, so the
// durable copy always mirrors the in-memory one. Stores are created per
// browser session or per CLI profile and passed explicitly to the code that
// needs them.
package session

import (
	"context"
	"fmt"
	"sync"

	"folio/internal/core"
	"folio/internal/log"
)

// TokenStore persists one token per key. LoadToken returns "" when no token
// is stored under key.
type TokenStore interface {
	LoadToken(ctx context.Context, key string) (string, error)
	SaveToken(ctx context.Context, key, token string) error
	DeleteToken(ctx context.Context, key string) error
}

// Store is safe for concurrent use.
type Store struct {
	tokens TokenStore
	key    string
	logger *log.Logger

	mu    sync.RWMutex
	token string
	user  *core.User
}

// Open seeds a Store from the token persisted under key and decodes it. The
// seeded token is not written back.
func Open(ctx context.Context, tokens TokenStore, key string, logger *log.Logger) (*Store, error) {
	token, err := tokens.LoadToken(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("load session token: %w", err)
	}
	s := &Store{
		tokens: tokens,
		key:    key,
		logger: logger.WithComponent(log.ComponentSession),
		token:  token,
	}
	s.user = s.decode(token)
	return s, nil
}

// Login replaces the current token. Logging in with an empty token is a
// logout. Setting the token already held does not touch storage.
func (s *Store) Login(ctx context.Context, token string) error {
	if token == "" {
		return s.Logout(ctx)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if token == s.token {
		return nil
	}
	if err := s.tokens.SaveToken(ctx, s.key, token); err != nil {
		return fmt.Errorf("persist session token: %w", err)
	}
	s.token = token
	s.user = s.decode(token)
	s.logger.DebugContext(ctx, "Session token stored", log.FieldSessionKey, s.key, "identified", s.user != nil)
	return nil
}

// Logout clears the token and the identity, in memory and in storage.
func (s *Store) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.token == "" {
		return nil
	}
	if err := s.tokens.DeleteToken(ctx, s.key); err != nil {
		return fmt.Errorf("clear session token: %w", err)
	}
	s.token = ""
	s.user = nil
	s.logger.DebugContext(ctx, "Session token cleared", log.FieldSessionKey, s.key)
	return nil
}

// Token returns the raw bearer token, or "" when logged out.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// User returns a copy of the decoded identity. It is nil when logged out or
// when the token could not be decoded.
func (s *Store) User() *core.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// IsAuthenticated reports token presence only; an undecodable token still
// counts as authenticated.
func (s *Store) IsAuthenticated() bool {
	return s.Token() != ""
}

func (s *Store) Key() string {
	return s.key
}

func (s *Store) decode(token string) *core.User {
	if token == "" {
		return nil
	}
	u, err := DecodeUser(token)
	if err != nil {
		s.logger.Warn("Session token could not be decoded", log.FieldSessionKey, s.key, log.FieldError, err)
		return nil
	}
	return u
}
