package session

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"folio/internal/core"
)

var ErrMalformedToken = errors.New("malformed token")

// Claim names issued by ASP.NET Core identity, followed by the short JWT
// names some configurations emit instead.
var (
	idClaims = []string{
		"http://schemas.xmlsoap.org/ws/2005/05/identity/claims/nameidentifier",
		"nameid", "sub", "id",
	}
	emailClaims = []string{
		"http://schemas.xmlsoap.org/ws/2005/05/identity/claims/emailaddress",
		"email",
	}
	firstNameClaims = []string{
		"http://schemas.xmlsoap.org/ws/2005/05/identity/claims/givenname",
		"given_name", "firstName", "unique_name",
	}
	roleClaims = []string{
		"http://schemas.microsoft.com/ws/2008/06/identity/claims/role",
		"role", "roles",
	}
)

var parser = jwt.NewParser()

// DecodeUser extracts the identity projection from a JWT without verifying
// its signature. Verification belongs to the backend; the result is only
// used for display and route guarding.
func DecodeUser(token string) (*core.User, error) {
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}
	return &core.User{
		ID:        stringClaim(claims, idClaims),
		Email:     stringClaim(claims, emailClaims),
		FirstName: stringClaim(claims, firstNameClaims),
		Role:      roleClaim(claims),
	}, nil
}

func stringClaim(claims jwt.MapClaims, names []string) string {
	for _, name := range names {
		switch v := claims[name].(type) {
		case string:
			if v != "" {
				return v
			}
		case float64:
			return fmt.Sprintf("%.0f", v)
		}
	}
	return ""
}

// roleClaim handles both the single-string and the array form. With several
// roles the admin role wins, otherwise the first one is used.
func roleClaim(claims jwt.MapClaims) string {
	for _, name := range roleClaims {
		switch v := claims[name].(type) {
		case string:
			if v != "" {
				return v
			}
		case []any:
			first := ""
			for _, r := range v {
				s, ok := r.(string)
				if !ok {
					continue
				}
				if s == core.AdminRole {
					return s
				}
				if first == "" {
					first = s
				}
			}
			if first != "" {
				return first
			}
		}
	}
	return ""
}
