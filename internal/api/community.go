package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"folio/internal/core"
	"folio/internal/events"
)

const communityBase = "/api/community"

func searchQuery(search string) url.Values {
	search = strings.TrimSpace(search)
	if search == "" {
		return nil
	}
	return url.Values{"search": {search}}
}

// ListComments returns the public wall. The token is sent when present so
// the backend can mark the caller's own comments.
func (c *Client) ListComments(ctx context.Context, search string) ([]core.Comment, error) {
	raw, err := c.do(ctx, call{
		endpoint: "community.list",
		method:   http.MethodGet,
		path:     communityBase,
		query:    searchQuery(search),
		auth:     authOptional,
		fallback: MsgLoadComments,
	})
	if err != nil {
		return nil, err
	}
	return decodeList[wireComment, core.Comment](raw, "comments")
}

func (c *Client) MyComments(ctx context.Context) ([]core.Comment, error) {
	raw, err := c.do(ctx, call{
		endpoint: "community.mine",
		method:   http.MethodGet,
		path:     communityBase + "/my-comments",
		auth:     authRequired,
		fallback: MsgLoadComments,
	})
	if err != nil {
		return nil, err
	}
	return decodeList[wireComment, core.Comment](raw, "my comments")
}

// PostComment creates a comment. The created comment is returned when the
// backend echoes it; an empty body yields a nil comment.
func (c *Client) PostComment(ctx context.Context, content string) (*core.Comment, error) {
	raw, err := c.do(ctx, call{
		endpoint: "community.post",
		method:   http.MethodPost,
		path:     communityBase,
		body:     core.CommentRequest{Content: content},
		auth:     authRequired,
	})
	if err != nil {
		return nil, err
	}
	var created *core.Comment
	if len(strings.TrimSpace(string(raw))) > 0 {
		cm, err := decodeOne[wireComment, core.Comment](raw, "comment")
		if err != nil {
			return nil, err
		}
		created = &cm
	}
	var id int64
	if created != nil {
		id = created.ID
	}
	c.publish(ctx, events.CommentCreated, id, "")
	return created, nil
}

func (c *Client) EditComment(ctx context.Context, id int64, content string) error {
	_, err := c.do(ctx, call{
		endpoint: "community.edit",
		method:   http.MethodPut,
		path:     fmt.Sprintf("%s/%d", communityBase, id),
		body:     core.CommentRequest{Content: content},
		auth:     authRequired,
	})
	if err != nil {
		return err
	}
	c.publish(ctx, events.CommentUpdated, id, "")
	return nil
}

func (c *Client) DeleteComment(ctx context.Context, id int64) error {
	_, err := c.do(ctx, call{
		endpoint: "community.delete",
		method:   http.MethodDelete,
		path:     fmt.Sprintf("%s/%d", communityBase, id),
		auth:     authRequired,
	})
	if err != nil {
		return err
	}
	c.publish(ctx, events.CommentDeleted, id, "")
	return nil
}
