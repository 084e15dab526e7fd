package http

import (
	"bytes"
	"errors"
	"html/template"
	"io/fs"
	"net/http"
	"path"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"folio/internal/api"
	"folio/internal/core"
	"folio/internal/i18n"
	"folio/internal/log"
)

// page is the data every template receives. Data holds the page-specific
// view.
type page struct {
	Title          string
	Locale         i18n.Locale
	Languages      []string
	User           *core.User
	Path           string
	Error          string
	Notice         string
	GoogleClientID string
	Data           any
}

var funcs = template.FuncMap{
	"money":   core.FormatAmount,
	"compact": core.CompactAmount,
	"picker":  core.PickerValue,
	"months":  func() [12]string { return core.MonthNames },
	"date": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Local().Format("2006-01-02 15:04")
	},
}

// parsePages builds one template set per page so every page can define its
// own "content" block on top of the shared layout.
func parsePages(fsys fs.FS) (map[string]*template.Template, error) {
	base, err := template.New("layout").Funcs(funcs).ParseFS(fsys, "templates/layout.html")
	if err != nil {
		return nil, err
	}
	files, err := fs.Glob(fsys, "templates/*.html")
	if err != nil {
		return nil, err
	}

	pages := make(map[string]*template.Template)
	for _, file := range files {
		name := path.Base(file)
		if name == "layout.html" {
			continue
		}
		t, err := template.Must(base.Clone()).ParseFS(fsys, file)
		if err != nil {
			return nil, err
		}
		pages[name] = t
	}
	return pages, nil
}

// render writes a full page. The page is buffered so a template failure
// still yields a clean 500.
func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, name string, p page) {
	ctx := r.Context()
	t, ok := s.pages[name]
	if !ok {
		log.FromContext(ctx).ErrorContext(ctx, "Unknown template", "template", name)
		http.Error(w, "template not found", http.StatusInternalServerError)
		return
	}

	p.Locale = i18n.FromRequest(r, s.opts.DefaultLanguage)
	p.Languages = i18n.Codes()
	p.User = userFrom(ctx)
	p.Path = r.URL.RequestURI()
	p.GoogleClientID = s.opts.GoogleClientID
	if p.Title != "" {
		p.Title = p.Locale.T(p.Title)
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", p); err != nil {
		log.FromContext(ctx).WithComponent(log.ComponentTemplate).ErrorContext(ctx, "Template execution failed",
			"template", name, log.FieldError, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// userMessage is the inline text shown for a failed backend call.
func userMessage(err error) string {
	var apiErr *api.APIError
	switch {
	case errors.As(err, &apiErr):
		return apiErr.Message
	case errors.Is(err, api.ErrNoToken):
		return "No token found"
	default:
		return api.MsgGeneric
	}
}

// statusFor maps a backend failure to the status of the rendered page.
func statusFor(err error) int {
	switch st := api.StatusOf(err); {
	case errors.Is(err, api.ErrNoToken):
		return http.StatusUnauthorized
	case st >= 400 && st < 500:
		return st
	default:
		return http.StatusBadGateway
	}
}

// sentence capitalises a validation error for display.
func sentence(err error) string {
	msg := err.Error()
	r, size := utf8.DecodeRuneInString(msg)
	if size == 0 {
		return msg
	}
	return string(unicode.ToUpper(r)) + msg[size:]
}

// sanitizeInput trims and drops control characters other than tab and
// newlines.
func sanitizeInput(s string) string {
	return strings.Map(func(r rune) rune {
		if r < 32 && r != '\t' && r != '\n' && r != '\r' {
			return -1
		}
		return r
	}, strings.TrimSpace(s))
}
