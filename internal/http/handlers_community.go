package http

import (
	"net/http"
	"net/url"

	"folio/internal/core"
	"folio/internal/log"
)

type commentView struct {
	core.Comment
	Own bool
}

type communityView struct {
	Comments []commentView
	Search   string
	Mine     bool
	EditID   int64
	Draft    string
	LoggedIn bool
}

func (s *Server) handleCommunity(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	view := communityView{
		Search: sanitizeInput(q.Get("search")),
		Mine:   q.Get("mine") == "1",
		EditID: queryID(r, "edit"),
	}
	if view.Mine {
		if store := storeFrom(r.Context()); store == nil || !store.IsAuthenticated() {
			http.Redirect(w, r, "/login?next="+url.QueryEscape(r.URL.RequestURI()), http.StatusSeeOther)
			return
		}
	}
	s.renderCommunity(w, r, http.StatusOK, view, "")
}

// renderCommunity loads the list for view and renders it with formErr shown
// above the form.
func (s *Server) renderCommunity(w http.ResponseWriter, r *http.Request, status int, view communityView, formErr string) {
	ctx := r.Context()
	user := userFrom(ctx)
	view.LoggedIn = user != nil || storeFrom(ctx) != nil && storeFrom(ctx).IsAuthenticated()

	var (
		comments []core.Comment
		err      error
	)
	if view.Mine {
		comments, err = s.client(r).MyComments(ctx)
	} else {
		comments, err = s.client(r).ListComments(ctx, view.Search)
	}
	if err != nil {
		log.FromContext(ctx).ErrorContext(ctx, "Failed to load comments", log.FieldError, err)
		s.render(w, r, statusFor(err), "community.html", page{Title: "community.title", Error: userMessage(err), Data: view})
		return
	}

	for _, c := range comments {
		view.Comments = append(view.Comments, commentView{
			Comment: c,
			Own:     view.Mine || user != nil && user.ID != "" && c.UserID == user.ID,
		})
	}
	s.render(w, r, status, "community.html", page{Title: "community.title", Error: formErr, Data: view})
}

func (s *Server) handlePostComment(w http.ResponseWriter, r *http.Request) {
	content, err := core.ValidateComment(r.PostFormValue("content"))
	if err != nil {
		s.renderCommunity(w, r, http.StatusUnprocessableEntity, communityView{Draft: r.PostFormValue("content")}, sentence(err))
		return
	}
	if _, err := s.client(r).PostComment(r.Context(), content); err != nil {
		s.renderCommunity(w, r, statusFor(err), communityView{Draft: content}, userMessage(err))
		return
	}
	http.Redirect(w, r, "/community", http.StatusSeeOther)
}

func (s *Server) handleEditComment(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		http.NotFound(w, r)
		return
	}
	view := communityView{Mine: r.PostFormValue("mine") == "1", EditID: id}

	content, err := core.ValidateComment(r.PostFormValue("content"))
	if err != nil {
		s.renderCommunity(w, r, http.StatusUnprocessableEntity, view, sentence(err))
		return
	}
	if err := s.client(r).EditComment(r.Context(), id, content); err != nil {
		s.renderCommunity(w, r, statusFor(err), view, userMessage(err))
		return
	}
	http.Redirect(w, r, communityPath(view.Mine), http.StatusSeeOther)
}

func (s *Server) handleDeleteComment(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		http.NotFound(w, r)
		return
	}
	mine := r.PostFormValue("mine") == "1"
	if err := s.client(r).DeleteComment(r.Context(), id); err != nil {
		s.renderCommunity(w, r, statusFor(err), communityView{Mine: mine}, userMessage(err))
		return
	}
	http.Redirect(w, r, communityPath(mine), http.StatusSeeOther)
}

func communityPath(mine bool) string {
	if mine {
		return "/community?mine=1"
	}
	return "/community"
}
