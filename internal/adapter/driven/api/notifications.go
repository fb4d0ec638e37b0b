package api

import (
	"context"
	"html"
	"net/http"
	"strings"

	"github.com/ericfisherdev/budgetctl/internal/domain/model"
	"github.com/ericfisherdev/budgetctl/internal/domain/port/driven"
)

// ListNotifications fetches the signed-in user's notifications in server order.
// The list always comes from the server, never from the HTTP cache, since a
// mark-as-read does not invalidate it. Messages are reduced to plain text.
func (c *Client) ListNotifications(ctx context.Context) ([]model.Notification, error) {
	var items []model.Notification
	if err := c.call(ctx, http.MethodGet, "/notifications", driven.RequestOptions{NoCache: true}, &items); err != nil {
		return nil, err
	}

	if items == nil {
		items = []model.Notification{}
	}
	for i := range items {
		items[i].Message = c.plainText(items[i].Message)
	}
	return items, nil
}

// MarkNotificationRead acknowledges one notification on the server.
func (c *Client) MarkNotificationRead(ctx context.Context, id int64) error {
	return c.call(ctx, http.MethodPost, idPath("/notifications", id)+"/mark-as-read", driven.RequestOptions{}, nil)
}

// plainText strips markup and decodes entities so terminals and toasts show
// the message as the user would read it.
func (c *Client) plainText(s string) string {
	return strings.TrimSpace(html.UnescapeString(c.policy.Sanitize(s)))
}
