package api

import (
	"context"
	"encoding/json"
	"net/http"

	"folio/internal/core"
)

// GetCV fetches the public CV document.
func (c *Client) GetCV(ctx context.Context) (core.CV, error) {
	raw, err := c.do(ctx, call{
		endpoint: "cv.get",
		method:   http.MethodGet,
		path:     "/api/cv",
		auth:     authNone,
	})
	if err != nil {
		return core.CV{}, err
	}
	var cv core.CV
	if err := json.Unmarshal(raw, &cv); err != nil {
		return core.CV{}, malformed("cv: %v", err)
	}
	if cv.Profile.FullName == "" {
		return core.CV{}, malformed("cv: missing profile.fullName")
	}
	return cv, nil
}
