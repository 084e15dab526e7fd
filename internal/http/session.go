package http

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"unicode"

	"github.com/google/uuid"

	"folio/internal/api"
	"folio/internal/core"
	"folio/internal/log"
	"folio/internal/session"
)

// SessionCookie holds the random key of the browser's token in the token
// store. The token itself never reaches the browser.
const SessionCookie = "folio_sid"

type storeKey struct{}

// withSession opens the store named by the session cookie. Requests
// without a valid cookie carry no store.
func (s *Server) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, err := r.Cookie(SessionCookie)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}
		if _, err := uuid.Parse(c.Value); err != nil {
			s.clearSessionCookie(w, r)
			next.ServeHTTP(w, r)
			return
		}

		store, err := session.Open(r.Context(), s.tokens, c.Value, log.FromContext(r.Context()))
		if err != nil {
			s.logger.ErrorContext(r.Context(), "Failed to open session", log.FieldError, err)
			http.Error(w, "session unavailable", http.StatusInternalServerError)
			return
		}
		ctx := context.WithValue(r.Context(), storeKey{}, store)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func storeFrom(ctx context.Context) *session.Store {
	store, _ := ctx.Value(storeKey{}).(*session.Store)
	return store
}

func userFrom(ctx context.Context) *core.User {
	if store := storeFrom(ctx); store != nil {
		return store.User()
	}
	return nil
}

// client returns the API client authenticated as the request's session.
func (s *Server) client(r *http.Request) *api.Client {
	if store := storeFrom(r.Context()); store != nil {
		return s.api.For(store)
	}
	return s.api.For(nil)
}

// requireAuth sends visitors without a token to the login page and back
// afterwards.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if store := storeFrom(r.Context()); store == nil || !store.IsAuthenticated() {
			target := "/login"
			if r.Method == http.MethodGet {
				target += "?next=" + url.QueryEscape(r.URL.RequestURI())
			}
			http.Redirect(w, r, target, http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// requireAdmin sends non-admins home. The backend enforces the role as
// well; this only keeps the page out of reach.
func (s *Server) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !userFrom(r.Context()).IsAdmin() {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// startSession stores token under a fresh key and points the cookie at it.
// The previous key, if any, is cleared so a pre-login cookie is never
// promoted.
func (s *Server) startSession(w http.ResponseWriter, r *http.Request, token string) error {
	ctx := r.Context()
	key := uuid.NewString()

	store, err := session.Open(ctx, s.tokens, key, log.FromContext(ctx))
	if err != nil {
		return err
	}
	if err := store.Login(ctx, token); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	if old := storeFrom(ctx); old != nil {
		if err := old.Logout(ctx); err != nil {
			s.logger.WarnContext(ctx, "Failed to clear previous session", log.FieldError, err)
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    key,
		Path:     "/",
		MaxAge:   int(s.opts.SessionMaxAge.Seconds()),
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})

	attrs := []any{log.FieldSessionKey, key}
	if u := store.User(); u != nil {
		attrs = append(attrs, log.FieldUserID, u.ID)
	}
	log.FromContext(ctx).InfoContext(ctx, "Session started", attrs...)
	return nil
}

func (s *Server) clearSessionCookie(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
}

// safeNext accepts only local absolute paths as redirect targets. Browsers
// drop tabs and newlines from Location and treat a backslash as a slash, so
// a target holding any of them is refused outright.
func safeNext(next, fallback string) string {
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") {
		return fallback
	}
	if strings.ContainsFunc(next, func(r rune) bool { return r == '\\' || unicode.IsControl(r) }) {
		return fallback
	}
	u, err := url.Parse(next)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return fallback
	}
	return next
}
