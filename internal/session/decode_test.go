package session

import (
	"errors"
	"testing"

	"github.com/golang-jwt/jwt/v5"
)

func TestDecodeUser(t *testing.T) {
	tests := []struct {
		name   string
		claims jwt.MapClaims
		wantID string
		email  string
		first  string
		role   string
	}{
		{
			name: "dotnet claim uris",
			claims: jwt.MapClaims{
				"http://schemas.xmlsoap.org/ws/2005/05/identity/claims/nameidentifier": "abc-123",
				"http://schemas.xmlsoap.org/ws/2005/05/identity/claims/emailaddress":   "sara@example.se",
				"http://schemas.xmlsoap.org/ws/2005/05/identity/claims/givenname":      "Sara",
				"http://schemas.microsoft.com/ws/2008/06/identity/claims/role":         "Admin",
			},
			wantID: "abc-123", email: "sara@example.se", first: "Sara", role: "Admin",
		},
		{
			name:   "short names",
			claims: jwt.MapClaims{"nameid": "7", "email": "x@y.z", "firstName": "Omar", "role": "User"},
			wantID: "7", email: "x@y.z", first: "Omar", role: "User",
		},
		{
			name:   "numeric subject",
			claims: jwt.MapClaims{"sub": float64(42)},
			wantID: "42",
		},
		{
			name:   "role array prefers admin",
			claims: jwt.MapClaims{"sub": "1", "role": []any{"User", "Admin"}},
			wantID: "1", role: "Admin",
		},
		{
			name:   "role array without admin",
			claims: jwt.MapClaims{"sub": "1", "roles": []any{"Editor", "User"}},
			wantID: "1", role: "Editor",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := DecodeUser(signedToken(t, tt.claims))
			if err != nil {
				t.Fatalf("DecodeUser: %v", err)
			}
			if u.ID != tt.wantID || u.Email != tt.email || u.FirstName != tt.first || u.Role != tt.role {
				t.Errorf("got %+v", u)
			}
		})
	}
}

func TestDecodeUserMalformed(t *testing.T) {
	for _, tok := range []string{"", "abc", "a.b.c", "eyJhbGciOiJIUzI1NiJ9.bm90LWpzb24.sig"} {
		if _, err := DecodeUser(tok); !errors.Is(err, ErrMalformedToken) {
			t.Errorf("DecodeUser(%q) error = %v, want ErrMalformedToken", tok, err)
		}
	}
}
