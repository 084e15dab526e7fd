// Package http is the server-rendered web front end of folio. It owns the
// browser sessions and renders backend data; all business state stays in
// the backend API.
package http

import (
	"context"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"folio/internal/api"
	"folio/internal/cache"
	"folio/internal/core"
	"folio/internal/log"
	"folio/internal/middleware/ratelimit"
	"folio/internal/middleware/security"
	"folio/internal/middleware/trace"
	"folio/internal/session"
	appweb "folio/web"
)

// Deps are the collaborators shared by every request.
type Deps struct {
	API     *api.Client
	Tokens  session.TokenStore
	CVCache cache.Cache[core.CV]
	// Ready reports whether local storage is usable; nil means always ready.
	Ready    func(context.Context) error
	Registry *prometheus.Registry
	Logger   *log.Logger
}

type Options struct {
	Addr            string
	DefaultLanguage string
	GoogleClientID  string
	SessionMaxAge   time.Duration
	RateLimit       ratelimit.Config
}

type Server struct {
	http.Server

	api      *api.Client
	tokens   session.TokenStore
	cv       cache.Cache[core.CV]
	ready    func(context.Context) error
	pages    map[string]*template.Template
	limiter  *ratelimit.Limiter
	detector *security.Detector
	logger   *log.Logger
	opts     Options

	shutdownOnce sync.Once
}

// NewServer parses the embedded templates and builds the router.
func NewServer(opts Options, deps Deps) (*Server, error) {
	if deps.Registry == nil {
		deps.Registry = prometheus.NewRegistry()
	}
	if deps.Logger == nil {
		deps.Logger = log.Discard()
	}
	if opts.DefaultLanguage == "" {
		opts.DefaultLanguage = "en"
	}

	pages, err := parsePages(appweb.TemplatesFS)
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	s := &Server{
		api:      deps.API,
		tokens:   deps.Tokens,
		cv:       deps.CVCache,
		ready:    deps.Ready,
		pages:    pages,
		limiter:  ratelimit.NewLimiter(opts.RateLimit, deps.Registry),
		detector: security.NewDetector(deps.Registry),
		logger:   deps.Logger.WithComponent(log.ComponentHTTP),
		opts:     opts,
	}
	s.Server = http.Server{
		Addr:              opts.Addr,
		Handler:           s.routes(deps.Registry),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	return s, nil
}

func (s *Server) routes(reg *prometheus.Registry) http.Handler {
	tracer := trace.New(s.detector.ExtractClientIP, reg, s.logger)

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(tracer.Middleware)
	r.Use(s.detector.Middleware)
	r.Use(security.NewHeadersMiddleware(security.DefaultHeadersConfig()).Middleware)
	r.Use(s.limiter.Middleware(s.detector.ExtractClientIP, s.onRateLimit))

	r.Get("/healthz", handleHealth)
	r.Get("/readyz", s.handleReady)
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	if sub, err := fs.Sub(appweb.StaticFS, "static"); err == nil {
		static := http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
		r.With(security.StaticAssetMiddleware(3600)).Handle("/static/*", static)
	} else {
		s.logger.Warn("Failed to mount embedded static FS", log.FieldError, err)
	}

	r.Group(func(r chi.Router) {
		r.Use(security.NoStore)
		r.Use(s.withSession)

		r.Get("/", s.handleCV)
		r.Get("/login", s.handleLoginPage)
		r.Post("/login", s.handleLogin)
		r.Get("/register", s.handleRegisterPage)
		r.Post("/register", s.handleRegister)
		r.Post("/auth/google", s.handleGoogleLogin)
		r.Post("/logout", s.handleLogout)
		r.Post("/lang", s.handleLanguage)
		r.Get("/community", s.handleCommunity)

		r.Group(func(r chi.Router) {
			r.Use(s.requireAuth)

			r.Post("/community", s.handlePostComment)
			r.Post("/community/{id}/edit", s.handleEditComment)
			r.Post("/community/{id}/delete", s.handleDeleteComment)

			r.Get("/money", s.handleDashboard)
			r.Post("/money", s.handleCreateMonth)
			r.Get("/money/{id}", s.handleMonth)
			r.Post("/money/{id}/edit", s.handleUpdateMonth)
			r.Post("/money/{id}/delete", s.handleDeleteMonth)
			r.Post("/money/{id}/bills", s.handleAddBill)
			r.Post("/money/{id}/bills/{billID}/edit", s.handleUpdateBill)
			r.Post("/money/{id}/bills/{billID}/delete", s.handleDeleteBill)

			r.Group(func(r chi.Router) {
				r.Use(s.requireAdmin)
				r.Get("/admin", s.handleAdmin)
				r.Post("/admin/users/{id}/ban", s.handleToggleBan)
			})
		})
	})

	return r
}

// Shutdown stops the rate limiter and drains the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	s.shutdownOnce.Do(func() {
		s.limiter.Stop()
		err = s.Server.Shutdown(ctx)
	})
	return err
}

func (s *Server) onRateLimit(w http.ResponseWriter, r *http.Request) {
	log.FromContext(r.Context()).WithComponent(log.ComponentRateLimit).WarnContext(r.Context(), "Rate limit exceeded",
		log.FieldClientIP, s.detector.ExtractClientIP(r),
		log.FieldPath, r.URL.Path)
	http.Error(w, "Rate limit exceeded. Please try again later.", http.StatusTooManyRequests)
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.ready != nil {
		if err := s.ready(r.Context()); err != nil {
			s.logger.ErrorContext(r.Context(), "Readiness check failed", log.FieldError, err)
			http.Error(w, "not ready", http.StatusServiceUnavailable)
			return
		}
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
