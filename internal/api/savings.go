package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/A1anTm/spendsmart/internal/model"
)

// SavingsGoals fetches all savings goals.
func (c *Client) SavingsGoals(ctx context.Context) ([]model.SavingsGoal, error) {
	var resp struct {
		Goals []model.SavingsGoal `json:"goals"`
	}
	if err := c.do(ctx, http.MethodGet, "/savings", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Goals, nil
}

// CreateSavingsGoal adds a savings goal.
func (c *Client) CreateSavingsGoal(ctx context.Context, g model.NewSavingsGoal) error {
	return c.do(ctx, http.MethodPost, "/savings", g, nil)
}

// AddMoney contributes amount to a goal. The server enforces completion
// too, but callers are expected to have checked locally first.
func (c *Client) AddMoney(ctx context.Context, id string, amount float64) error {
	body := map[string]float64{"amount": amount}
	return c.do(ctx, http.MethodPatch, fmt.Sprintf("/savings/%s/add-money", id), body, nil)
}

// DeleteSavingsGoal removes a goal.
func (c *Client) DeleteSavingsGoal(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/savings/"+id, nil, nil)
}
