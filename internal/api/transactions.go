package api

import (
	"context"
	"net/http"

	"github.com/A1anTm/spendsmart/internal/model"
)

// Categories fetches the categories applying to one transaction type.
func (c *Client) Categories(ctx context.Context, txType string) ([]model.Category, error) {
	var resp struct {
		Categories []model.Category `json:"categories"`
	}
	body := map[string]string{"type": txType}
	if err := c.do(ctx, http.MethodPost, "/categories", body, &resp); err != nil {
		return nil, err
	}
	return resp.Categories, nil
}

// FilterTransactions fetches one page of the ledger.
func (c *Client) FilterTransactions(ctx context.Context, filter model.TransactionFilter) ([]model.Transaction, int, error) {
	var resp struct {
		Transactions []model.Transaction `json:"transactions"`
		Total        int                 `json:"total"`
	}
	if err := c.do(ctx, http.MethodPost, "/transactions/filter", filter, &resp); err != nil {
		return nil, 0, err
	}
	return resp.Transactions, resp.Total, nil
}

// CreateTransaction records a new ledger entry.
func (c *Client) CreateTransaction(ctx context.Context, tx model.NewTransaction) error {
	return c.do(ctx, http.MethodPost, "/transactions", tx, nil)
}
