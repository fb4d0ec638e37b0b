package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/microcosm-cc/bluemonday"

	"github.com/ericfisherdev/budgetctl/internal/domain/model"
	"github.com/ericfisherdev/budgetctl/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.BudgetAPIClient = (*Client)(nil)

// Client implements the backend resource ports. Every call goes through the Gateway.
type Client struct {
	gw     driven.Gateway
	policy *bluemonday.Policy
}

// NewClient creates a resource client over gw.
func NewClient(gw driven.Gateway) *Client {
	return &Client{
		gw:     gw,
		policy: bluemonday.StrictPolicy(),
	}
}

// call sends one request and decodes a JSON response into out (nil to discard).
func (c *Client) call(ctx context.Context, method, path string, opts driven.RequestOptions, out any) error {
	body, err := c.gw.Send(ctx, method, path, opts)
	if err != nil {
		return err
	}
	if out == nil || len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &model.APIError{
			Kind:   model.ErrorKindUnknown,
			Method: method,
			Path:   path,
			Err:    fmt.Errorf("decoding response: %w", err),
		}
	}
	return nil
}

// periodParams encodes the year/month query used by monthly listings.
func periodParams(year, month int) url.Values {
	return url.Values{
		"year":  []string{strconv.Itoa(year)},
		"month": []string{strconv.Itoa(month)},
	}
}

func idPath(prefix string, id int64) string {
	return prefix + "/" + strconv.FormatInt(id, 10)
}
