package http

import (
	"net/http"
	"slices"

	"folio/internal/core"
	"folio/internal/i18n"
	"folio/internal/log"
)

type loginView struct {
	Email string
	Next  string
}

type registerView struct {
	Email     string
	FirstName string
	LastName  string
}

func (s *Server) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	p := page{Title: "nav.login", Data: loginView{Next: safeNext(r.URL.Query().Get("next"), "")}}
	if r.URL.Query().Get("notice") == "registered" {
		p.Notice = "auth.registered"
	}
	s.render(w, r, http.StatusOK, "login.html", p)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	req := core.LoginRequest{
		Email:    sanitizeInput(r.PostFormValue("email")),
		Password: r.PostFormValue("password"),
	}
	view := loginView{Email: req.Email, Next: safeNext(r.PostFormValue("next"), "")}

	if err := core.ValidateLogin(req); err != nil {
		s.render(w, r, http.StatusUnprocessableEntity, "login.html", page{Title: "nav.login", Error: sentence(err), Data: view})
		return
	}

	token, err := s.api.Login(r.Context(), req)
	if err != nil {
		log.FromContext(r.Context()).WarnContext(r.Context(), "Login failed", log.FieldOperation, log.OpLogin, log.FieldError, err)
		s.render(w, r, statusFor(err), "login.html", page{Title: "nav.login", Error: userMessage(err), Data: view})
		return
	}

	if err := s.startSession(w, r, token); err != nil {
		s.logger.ErrorContext(r.Context(), "Failed to start session", log.FieldError, err)
		http.Error(w, "session unavailable", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, safeNext(view.Next, "/money"), http.StatusSeeOther)
}

// handleGoogleLogin receives the Google Identity Services redirect. The
// library posts the credential with a g_csrf_token that must match its
// cookie.
func (s *Server) handleGoogleLogin(w http.ResponseWriter, r *http.Request) {
	csrf, err := r.Cookie("g_csrf_token")
	if err != nil || csrf.Value == "" || csrf.Value != r.PostFormValue("g_csrf_token") {
		http.Error(w, "invalid CSRF token", http.StatusBadRequest)
		return
	}
	credential := r.PostFormValue("credential")
	if credential == "" {
		http.Error(w, "missing credential", http.StatusBadRequest)
		return
	}

	token, err := s.api.GoogleLogin(r.Context(), credential)
	if err != nil {
		log.FromContext(r.Context()).WarnContext(r.Context(), "Google login failed", log.FieldOperation, log.OpLogin, log.FieldError, err)
		s.render(w, r, statusFor(err), "login.html", page{Title: "nav.login", Error: userMessage(err), Data: loginView{}})
		return
	}

	if err := s.startSession(w, r, token); err != nil {
		s.logger.ErrorContext(r.Context(), "Failed to start session", log.FieldError, err)
		http.Error(w, "session unavailable", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/money", http.StatusSeeOther)
}

func (s *Server) handleRegisterPage(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "register.html", page{Title: "nav.register", Data: registerView{}})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	req := core.RegisterRequest{
		Email:     sanitizeInput(r.PostFormValue("email")),
		Password:  r.PostFormValue("password"),
		FirstName: sanitizeInput(r.PostFormValue("firstName")),
		LastName:  sanitizeInput(r.PostFormValue("lastName")),
	}
	view := registerView{Email: req.Email, FirstName: req.FirstName, LastName: req.LastName}

	if err := core.ValidateLogin(core.LoginRequest{Email: req.Email, Password: req.Password}); err != nil {
		s.render(w, r, http.StatusUnprocessableEntity, "register.html", page{Title: "nav.register", Error: sentence(err), Data: view})
		return
	}

	if err := s.api.Register(r.Context(), req); err != nil {
		s.render(w, r, statusFor(err), "register.html", page{Title: "nav.register", Error: userMessage(err), Data: view})
		return
	}
	http.Redirect(w, r, "/login?notice=registered", http.StatusSeeOther)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if store := storeFrom(r.Context()); store != nil {
		if err := store.Logout(r.Context()); err != nil {
			s.logger.ErrorContext(r.Context(), "Failed to clear session", log.FieldError, err)
		}
	}
	s.clearSessionCookie(w, r)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleLanguage(w http.ResponseWriter, r *http.Request) {
	lang := r.PostFormValue("lang")
	if slices.Contains(i18n.Codes(), lang) {
		http.SetCookie(w, &http.Cookie{
			Name:     i18n.CookieName,
			Value:    lang,
			Path:     "/",
			MaxAge:   365 * 24 * 60 * 60,
			SameSite: http.SameSiteLaxMode,
		})
	}
	http.Redirect(w, r, safeNext(r.PostFormValue("next"), "/"), http.StatusSeeOther)
}
