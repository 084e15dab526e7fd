package http

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"folio/internal/core"
	"folio/internal/log"
)

type adminView struct {
	Users  []core.AdminUser
	Search string
}

func (s *Server) handleAdmin(w http.ResponseWriter, r *http.Request) {
	s.renderAdmin(w, r, http.StatusOK, sanitizeInput(r.URL.Query().Get("search")), "")
}

func (s *Server) renderAdmin(w http.ResponseWriter, r *http.Request, status int, search, actionErr string) {
	ctx := r.Context()
	view := adminView{Search: search}

	users, err := s.client(r).ListUsers(ctx, search)
	if err != nil {
		log.FromContext(ctx).ErrorContext(ctx, "Failed to load users", log.FieldError, err)
		s.render(w, r, statusFor(err), "admin.html", page{Title: "admin.title", Error: userMessage(err), Data: view})
		return
	}
	view.Users = users
	s.render(w, r, status, "admin.html", page{Title: "admin.title", Error: actionErr, Data: view})
}

// handleToggleBan flips the ban flag. The list is reloaded after success so
// the page always shows the backend's state.
func (s *Server) handleToggleBan(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		http.NotFound(w, r)
		return
	}
	search := sanitizeInput(r.PostFormValue("search"))

	if err := s.client(r).ToggleBan(r.Context(), id); err != nil {
		s.renderAdmin(w, r, statusFor(err), search, userMessage(err))
		return
	}
	log.FromContext(r.Context()).InfoContext(r.Context(), "Toggled user ban", log.FieldUserID, id)

	target := "/admin"
	if search != "" {
		target += "?search=" + url.QueryEscape(search)
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}
