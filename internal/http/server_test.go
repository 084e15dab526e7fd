package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"

	"folio/internal/api"
	"folio/internal/cache"
	"folio/internal/core"
	"folio/internal/session"
)

// fakeBackend serves canned responses for the backend endpoints the pages
// use and records mutation bodies.
type fakeBackend struct {
	mu        sync.Mutex
	cvHits    int
	mutations map[string][]byte
	tokens    map[string]string
}

func newFakeBackend(t *testing.T) (*fakeBackend, *httptest.Server) {
	t.Helper()
	fb := &fakeBackend{
		mutations: make(map[string][]byte),
		tokens: map[string]string{
			"admin@folio.se": signed(t, jwt.MapClaims{"sub": "u-admin", "given_name": "Ada", "role": "Admin"}),
			"user@folio.se":  signed(t, jwt.MapClaims{"sub": "u-user", "given_name": "Bo", "role": "User"}),
		},
	}

	r := chi.NewRouter()
	r.Get("/api/cv", func(w http.ResponseWriter, r *http.Request) {
		fb.mu.Lock()
		fb.cvHits++
		fb.mu.Unlock()
		io.WriteString(w, `{"profile":{"fullName":"Ada Lovelace","title":"Engineer"},"summary":"Analytical engines."}`)
	})
	r.Post("/login", func(w http.ResponseWriter, r *http.Request) {
		var req core.LoginRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		tok, ok := fb.tokens[req.Email]
		if !ok || req.Password != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			io.WriteString(w, `{"message":"Invalid credentials"}`)
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"accessToken": tok})
	})
	r.Get("/api/MoneyManager/dashboard", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `[
			{"id":8,"year":2024,"month":"December","totalIncome":500},
			{"id":7,"year":2025,"month":"March","totalIncome":1000}
		]`)
	})
	r.Get("/api/MoneyManager/month/{id}", func(w http.ResponseWriter, r *http.Request) {
		if chi.URLParam(r, "id") != "7" {
			w.WriteHeader(http.StatusNotFound)
			io.WriteString(w, `{"message":"Month not found"}`)
			return
		}
		io.WriteString(w, `{"id":7,"year":2025,"month":"March","totalIncome":1000,"totalExpenses":500,
			"remainingBalance":500,"bills":[
				{"id":1,"type":"rent","amount":400,"color":"#ff0000"},
				{"id":2,"type":"food","amount":100,"description":"groceries"}
			]}`)
	})
	record := func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		fb.mu.Lock()
		fb.mutations[r.Method+" "+r.URL.Path] = body
		fb.mu.Unlock()
		w.WriteHeader(http.StatusOK)
	}
	r.Post("/api/MoneyManager/create-month", record)
	r.Post("/api/MoneyManager/add-bill", record)
	r.Delete("/api/MoneyManager/bill/{id}", record)
	r.Get("/api/admin/users", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `[{"id":"u-user","firstName":"Bo","lastName":"Ek","email":"user@folio.se","isBanned":false}]`)
	})
	r.Get("/api/community", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `[{"id":3,"content":"Hello wall","createdAt":"2025-03-01T10:00:00Z","userId":"u-user",
			"user":{"firstName":"Bo","lastName":"Ek"}}]`)
	})

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return fb, srv
}

func (fb *fakeBackend) mutation(key string) ([]byte, bool) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	body, ok := fb.mutations[key]
	return body, ok
}

func signed(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return tok
}

type testEnv struct {
	server  *Server
	backend *fakeBackend
}

func newTestEnv(t *testing.T, ready func(context.Context) error) *testEnv {
	t.Helper()
	fb, backend := newFakeBackend(t)

	client, err := api.New(backend.URL)
	if err != nil {
		t.Fatalf("api.New: %v", err)
	}
	s, err := NewServer(Options{SessionMaxAge: time.Hour}, Deps{
		API:     client,
		Tokens:  session.NewMemoryTokens(),
		CVCache: cache.NewLRUCache[core.CV](8, time.Minute),
		Ready:   ready,
	})
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	t.Cleanup(func() { s.Shutdown(context.Background()) })
	return &testEnv{server: s, backend: fb}
}

func (e *testEnv) do(req *http.Request, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	e.server.Handler.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) get(path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	return e.do(httptest.NewRequest(http.MethodGet, path, nil), cookies...)
}

func (e *testEnv) post(path string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return e.do(req, cookies...)
}

func (e *testEnv) login(t *testing.T, email string) *http.Cookie {
	t.Helper()
	rec := e.post("/login", url.Values{"email": {email}, "password": {"secret"}})
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("login status = %d, body %s", rec.Code, rec.Body.String())
	}
	for _, c := range rec.Result().Cookies() {
		if c.Name == SessionCookie {
			return c
		}
	}
	t.Fatal("login did not set the session cookie")
	return nil
}

func TestHealthAndReady(t *testing.T) {
	e := newTestEnv(t, func(context.Context) error { return errors.New("db closed") })

	if rec := e.get("/healthz"); rec.Code != http.StatusOK || rec.Body.String() != "ok" {
		t.Errorf("healthz = %d %q", rec.Code, rec.Body.String())
	}
	if rec := e.get("/readyz"); rec.Code != http.StatusServiceUnavailable {
		t.Errorf("readyz = %d, want 503", rec.Code)
	}
	if rec := e.get("/metrics"); rec.Code != http.StatusOK {
		t.Errorf("metrics = %d", rec.Code)
	}
}

func TestCVPageIsCached(t *testing.T) {
	e := newTestEnv(t, nil)

	for range 2 {
		rec := e.get("/")
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "Ada Lovelace") {
			t.Fatalf("CV not rendered: %s", rec.Body.String())
		}
	}
	e.backend.mu.Lock()
	defer e.backend.mu.Unlock()
	if e.backend.cvHits != 1 {
		t.Errorf("backend hits = %d, want 1", e.backend.cvHits)
	}
}

func TestLoginRedirectsToNext(t *testing.T) {
	e := newTestEnv(t, nil)

	rec := e.post("/login", url.Values{
		"email":    {"user@folio.se"},
		"password": {"secret"},
		"next":     {"/money/7"},
	})
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/money/7" {
		t.Errorf("Location = %q", loc)
	}
	var cookie *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == SessionCookie {
			cookie = c
		}
	}
	if cookie == nil || !cookie.HttpOnly || cookie.SameSite != http.SameSiteLaxMode {
		t.Fatalf("session cookie = %+v", cookie)
	}

	page := e.get("/money", cookie)
	if page.Code != http.StatusOK || !strings.Contains(page.Body.String(), "Bo") {
		t.Errorf("dashboard = %d", page.Code)
	}
}

func TestLoginIgnoresForeignNext(t *testing.T) {
	e := newTestEnv(t, nil)

	for _, next := range []string{"/\t/evil.example", "/\\evil.example", "https://evil.example"} {
		rec := e.post("/login", url.Values{
			"email":    {"user@folio.se"},
			"password": {"secret"},
			"next":     {next},
		})
		if loc := rec.Header().Get("Location"); loc != "/money" {
			t.Errorf("next %q: Location = %q, want /money", next, loc)
		}
	}

	rec := e.post("/lang", url.Values{"lang": {"sv"}, "next": {"/\t/evil.example"}})
	if loc := rec.Header().Get("Location"); loc != "/" {
		t.Errorf("lang Location = %q, want /", loc)
	}
}

func TestLoginFailureShowsFixedMessage(t *testing.T) {
	e := newTestEnv(t, nil)

	rec := e.post("/login", url.Values{"email": {"user@folio.se"}, "password": {"wrong"}})
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Login failed! Check your email or password.") {
		t.Errorf("missing login message in %s", body)
	}
	if strings.Contains(body, "Invalid credentials") {
		t.Error("backend message leaked into the login form")
	}
	if !strings.Contains(body, `value="user@folio.se"`) {
		t.Error("email not kept in the form")
	}
}

func TestLoginValidation(t *testing.T) {
	e := newTestEnv(t, nil)

	rec := e.post("/login", url.Values{"email": {""}, "password": {""}})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Email and password are required") {
		t.Errorf("missing validation message")
	}
}

func TestProtectedPagesRedirectToLogin(t *testing.T) {
	e := newTestEnv(t, nil)

	rec := e.get("/money/7")
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/login?next=%2Fmoney%2F7" {
		t.Errorf("Location = %q", loc)
	}

	rec = e.post("/money", url.Values{"month": {"2025-04"}})
	if loc := rec.Header().Get("Location"); loc != "/login" {
		t.Errorf("POST Location = %q", loc)
	}
}

func TestDashboardGroupsByYear(t *testing.T) {
	e := newTestEnv(t, nil)
	cookie := e.login(t, "user@folio.se")

	body := e.get("/money", cookie).Body.String()
	i2025 := strings.Index(body, "2025")
	i2024 := strings.Index(body, "2024")
	if i2025 < 0 || i2024 < 0 || i2025 > i2024 {
		t.Errorf("years not in descending order")
	}
	if !strings.Contains(body, `href="/money/7"`) {
		t.Error("missing month link")
	}
}

func TestMonthPageDrawsRing(t *testing.T) {
	e := newTestEnv(t, nil)
	cookie := e.login(t, "user@folio.se")

	rec := e.get("/money/7", cookie)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{"stroke-dasharray", "Rent", "Food", "Remaining Balance", "#ff0000", "groceries",
		`class="ring-slice" tabindex="0" aria-label="Rent 400"`, `class="ring-value ring-active">400<`} {
		if !strings.Contains(body, want) {
			t.Errorf("month page missing %q", want)
		}
	}

	missing := e.get("/money/99", cookie)
	if missing.Code != http.StatusNotFound || !strings.Contains(missing.Body.String(), "Month not found") {
		t.Errorf("missing month = %d", missing.Code)
	}
}

func TestCreateMonth(t *testing.T) {
	e := newTestEnv(t, nil)
	cookie := e.login(t, "user@folio.se")

	tests := []struct {
		name     string
		form     url.Values
		wantCode int
		wantText string
	}{
		{"valid", url.Values{"month": {"2025-04"}, "income": {"1200.50"}}, http.StatusSeeOther, ""},
		{"bad picker", url.Values{"month": {"April"}, "income": {"10"}}, http.StatusUnprocessableEntity, "Please select a valid month and year"},
		{"bad amount", url.Values{"month": {"2025-04"}, "income": {"ten"}}, http.StatusUnprocessableEntity, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := e.post("/money", tt.form, cookie)
			if rec.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantCode)
			}
			if tt.wantText != "" && !strings.Contains(rec.Body.String(), tt.wantText) {
				t.Errorf("body missing %q", tt.wantText)
			}
		})
	}

	body, ok := e.backend.mutation("POST /api/MoneyManager/create-month")
	if !ok {
		t.Fatal("create-month not called")
	}
	if !strings.Contains(string(body), `"month":"April"`) || !strings.Contains(string(body), `"year":2025`) {
		t.Errorf("create-month body = %s", body)
	}
}

func TestAddAndDeleteBill(t *testing.T) {
	e := newTestEnv(t, nil)
	cookie := e.login(t, "user@folio.se")

	rec := e.post("/money/7/bills", url.Values{
		"type": {"Gym"}, "amount": {"300"}, "color": {"not-a-color"},
	}, cookie)
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/money/7" {
		t.Fatalf("add bill = %d %q", rec.Code, rec.Header().Get("Location"))
	}
	body, _ := e.backend.mutation("POST /api/MoneyManager/add-bill")
	if !strings.Contains(string(body), `"financialMonthId":7`) || !strings.Contains(string(body), defaultBillColor) {
		t.Errorf("add-bill body = %s", body)
	}

	rec = e.post("/money/7/bills", url.Values{"type": {"x"}, "amount": {"1"}}, cookie)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("short category = %d, want 422", rec.Code)
	}

	rec = e.post("/money/7/bills/2/delete", nil, cookie)
	if rec.Code != http.StatusSeeOther {
		t.Errorf("delete bill = %d", rec.Code)
	}
	if _, ok := e.backend.mutation("DELETE /api/MoneyManager/bill/2"); !ok {
		t.Error("delete-bill not called")
	}
}

func TestAdminRequiresRole(t *testing.T) {
	e := newTestEnv(t, nil)

	user := e.login(t, "user@folio.se")
	if rec := e.get("/admin", user); rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/" {
		t.Errorf("non-admin = %d %q", rec.Code, rec.Header().Get("Location"))
	}

	admin := e.login(t, "admin@folio.se")
	rec := e.get("/admin", admin)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "user@folio.se") {
		t.Errorf("admin = %d", rec.Code)
	}
}

func TestCommunityMarksOwnComments(t *testing.T) {
	e := newTestEnv(t, nil)

	anon := e.get("/community").Body.String()
	if !strings.Contains(anon, "Hello wall") || strings.Contains(anon, "/community/3/delete") {
		t.Error("anonymous view should list comments without actions")
	}

	cookie := e.login(t, "user@folio.se")
	own := e.get("/community", cookie).Body.String()
	if !strings.Contains(own, "/community/3/delete") {
		t.Error("owner should see the delete action")
	}

	if rec := e.get("/community?mine=1"); rec.Code != http.StatusSeeOther {
		t.Errorf("mine without session = %d", rec.Code)
	}
}

func TestLogoutClearsSession(t *testing.T) {
	e := newTestEnv(t, nil)
	cookie := e.login(t, "user@folio.se")

	rec := e.post("/logout", nil, cookie)
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("logout = %d", rec.Code)
	}
	if rec := e.get("/money", cookie); rec.Code != http.StatusSeeOther {
		t.Errorf("old cookie still authenticates: %d", rec.Code)
	}
}

func TestLanguageSwitch(t *testing.T) {
	e := newTestEnv(t, nil)

	rec := e.post("/lang", url.Values{"lang": {"ar"}, "next": {"//evil.example"}})
	if loc := rec.Header().Get("Location"); loc != "/" {
		t.Errorf("Location = %q", loc)
	}
	var lang *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == "lang" {
			lang = c
		}
	}
	if lang == nil || lang.Value != "ar" {
		t.Fatalf("lang cookie = %+v", lang)
	}

	body := e.get("/", lang).Body.String()
	if !strings.Contains(body, `lang="ar"`) || !strings.Contains(body, `dir="rtl"`) {
		t.Error("page not rendered right-to-left")
	}
}

func TestGoogleLoginChecksCSRF(t *testing.T) {
	e := newTestEnv(t, nil)

	rec := e.post("/auth/google", url.Values{"credential": {"x"}, "g_csrf_token": {"abc"}})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestSafeNext(t *testing.T) {
	tests := []struct {
		next string
		want string
	}{
		{"/money/7", "/money/7"},
		{"", "/fallback"},
		{"https://evil.example", "/fallback"},
		{"//evil.example", "/fallback"},
		{"/\\evil.example", "/fallback"},
		{"/\t/evil.example", "/fallback"},
		{"/\n/evil.example", "/fallback"},
		{"/\r\n/evil.example", "/fallback"},
		{"/money\\..\\evil", "/fallback"},
		{"/\x00/evil.example", "/fallback"},
		{"money", "/fallback"},
		{"/community?mine=1", "/community?mine=1"},
	}
	for _, tt := range tests {
		t.Run(tt.next, func(t *testing.T) {
			if got := safeNext(tt.next, "/fallback"); got != tt.want {
				t.Errorf("safeNext(%q) = %q, want %q", tt.next, got, tt.want)
			}
		})
	}
}
