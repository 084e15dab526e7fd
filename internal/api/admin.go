package api

import (
	"context"
	"net/http"
	"net/url"

	"folio/internal/core"
	"folio/internal/events"
)

// ListUsers is admin-only; the backend enforces the role.
func (c *Client) ListUsers(ctx context.Context, search string) ([]core.AdminUser, error) {
	raw, err := c.do(ctx, call{
		endpoint: "admin.users",
		method:   http.MethodGet,
		path:     "/api/admin/users",
		query:    searchQuery(search),
		auth:     authRequired,
	})
	if err != nil {
		return nil, err
	}
	return decodeList[wireAdminUser, core.AdminUser](raw, "users")
}

// ToggleBan flips the ban flag of a user. Callers update their local copy
// only after this returns nil.
func (c *Client) ToggleBan(ctx context.Context, userID string) error {
	_, err := c.do(ctx, call{
		endpoint: "admin.toggle_ban",
		method:   http.MethodPost,
		path:     "/api/admin/toggle-ban/" + url.PathEscape(userID),
		auth:     authRequired,
	})
	if err != nil {
		return err
	}
	c.publish(ctx, events.UserBanToggled, 0, userID)
	return nil
}
