package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/A1anTm/spendsmart/internal/model"
)

// Budgets fetches all budgets with their server-computed usage.
func (c *Client) Budgets(ctx context.Context) ([]model.Budget, error) {
	var resp struct {
		Budgets []model.Budget `json:"budgets"`
	}
	if err := c.do(ctx, http.MethodGet, "/budgets", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Budgets, nil
}

// CreateBudget adds a budget. Duplicate category/month pairs come back
// as 409 with the server's message.
func (c *Client) CreateBudget(ctx context.Context, b model.NewBudget) error {
	return c.do(ctx, http.MethodPost, "/budgets", b, nil)
}

// ToggleBudget flips a budget's active flag.
func (c *Client) ToggleBudget(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodPatch, fmt.Sprintf("/budgets/%s/toggle", id), nil, nil)
}

// DeleteBudget removes a budget.
func (c *Client) DeleteBudget(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/budgets/"+id, nil, nil)
}
