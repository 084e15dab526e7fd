package i18n

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestFromRequest(t *testing.T) {
	tests := []struct {
		name   string
		cookie string
		accept string
		want   string
	}{
		{name: "default", want: "en"},
		{name: "accept language", accept: "sv-SE,sv;q=0.9,en;q=0.5", want: "sv"},
		{name: "cookie wins", cookie: "ar", accept: "sv", want: "ar"},
		{name: "unsupported accept falls back", accept: "ja", want: "en"},
		{name: "garbage cookie ignored", cookie: "!!", accept: "sv", want: "sv"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.cookie != "" {
				r.AddCookie(&http.Cookie{Name: CookieName, Value: tt.cookie})
			}
			if tt.accept != "" {
				r.Header.Set("Accept-Language", tt.accept)
			}
			if got := FromRequest(r, "en").Code(); got != tt.want {
				t.Errorf("Code() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDirAndFallback(t *testing.T) {
	if For("ar").Dir() != "rtl" || For("sv").Dir() != "ltr" {
		t.Fatal("unexpected direction")
	}
	if got := For("sv").T("nav.money"); got != "Ekonomi" {
		t.Errorf("sv nav.money = %q", got)
	}
	if got := For("sv").T("no.such.key"); got != "no.such.key" {
		t.Errorf("missing key = %q", got)
	}
	if got := For("xx-invalid-").Code(); got != "en" {
		t.Errorf("invalid code = %q", got)
	}
}

func TestDictionariesHaveSameKeys(t *testing.T) {
	for code, dict := range dictionaries {
		for key := range dictionaries["en"] {
			if _, ok := dict[key]; !ok {
				t.Errorf("%s is missing %q", code, key)
			}
		}
	}
}
