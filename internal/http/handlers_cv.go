package http

import (
	"net/http"

	"folio/internal/core"
	"folio/internal/log"
)

const cvCacheKey = "cv"

// handleCV renders the public portfolio. The document is shared by every
// visitor, so it is served from the cache when possible.
func (s *Server) handleCV(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := log.FromContext(ctx)

	if s.cv != nil {
		cv, ok, err := s.cv.Get(ctx, cvCacheKey)
		if err != nil {
			logger.WithComponent(log.ComponentCache).WarnContext(ctx, "CV cache read failed", log.FieldError, err)
		}
		if ok {
			s.render(w, r, http.StatusOK, "cv.html", page{Title: "nav.home", Data: cv})
			return
		}
	}

	cv, err := s.api.GetCV(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to load CV", log.FieldError, err)
		s.render(w, r, statusFor(err), "cv.html", page{Title: "nav.home", Error: userMessage(err), Data: core.CV{}})
		return
	}

	if s.cv != nil {
		if err := s.cv.Set(ctx, cvCacheKey, cv); err != nil {
			logger.WithComponent(log.ComponentCache).WarnContext(ctx, "CV cache write failed", log.FieldError, err)
		}
	}
	s.render(w, r, http.StatusOK, "cv.html", page{Title: "nav.home", Data: cv})
}
