package api

import (
	"context"
	"net/http"

	"folio/internal/core"
)

// Login exchanges credentials for an access token. Failures always carry
// MsgLogin so the form does not reveal which field was wrong.
func (c *Client) Login(ctx context.Context, req core.LoginRequest) (string, error) {
	raw, err := c.do(ctx, call{
		endpoint:     "auth.login",
		method:       http.MethodPost,
		path:         "/login",
		body:         req,
		auth:         authNone,
		fallback:     MsgLogin,
		fixedMessage: true,
	})
	if err != nil {
		return "", err
	}
	return decodeOne[wireToken, string](raw, "login")
}

// Register creates an account. The backend sends a confirmation mail and
// returns no token, so the caller must log in afterwards.
func (c *Client) Register(ctx context.Context, req core.RegisterRequest) error {
	_, err := c.do(ctx, call{
		endpoint: "auth.register",
		method:   http.MethodPost,
		path:     "/api/auth/register",
		body:     req,
		auth:     authNone,
		fallback: MsgRegister,
	})
	return err
}

// GoogleLogin exchanges a Google ID token credential for an access token.
func (c *Client) GoogleLogin(ctx context.Context, credential string) (string, error) {
	raw, err := c.do(ctx, call{
		endpoint:     "auth.google",
		method:       http.MethodPost,
		path:         "/api/auth/google-login",
		body:         core.GoogleLoginRequest{Credential: credential},
		auth:         authNone,
		fallback:     MsgGoogleLogin,
		fixedMessage: true,
	})
	if err != nil {
		return "", err
	}
	return decodeOne[wireToken, string](raw, "google login")
}
