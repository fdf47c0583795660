package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/A1anTm/spendsmart/internal/model"
)

// Summary fetches the dashboard aggregate for a month (YYYY-MM).
func (c *Client) Summary(ctx context.Context, month string) (model.Summary, error) {
	var s model.Summary
	path := "/summary?month=" + url.QueryEscape(month)
	if err := c.do(ctx, http.MethodGet, path, nil, &s); err != nil {
		return model.Summary{}, err
	}
	return s, nil
}
