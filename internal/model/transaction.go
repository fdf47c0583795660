// Package model holds the client-side projections of SpendSmart API entities.
// Fields carry the backend's JSON names; nothing here is persisted locally.
package model

// Transaction types as the backend speaks them (the API uses Spanish names).
const (
	TxExpense = "gasto"
	TxIncome  = "ingreso"
)

// Transaction is one ledger entry.
type Transaction struct {
	ID          string  `json:"_id"`
	Type        string  `json:"type"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
	Date        string  `json:"date"` // YYYY-MM-DD
	Category    string  `json:"category"`
	CategoryID  string  `json:"category_id,omitempty"`
}

// Category is a transaction/budget category.
type Category struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}

// TransactionFilter is the body of POST /transactions/filter.
// Zero-valued optional fields are omitted from the request.
type TransactionFilter struct {
	Type         string `json:"type,omitempty"`
	CategoryName string `json:"categoryName,omitempty"`
	StartDate    string `json:"startDate,omitempty"`
	EndDate      string `json:"endDate,omitempty"`
	Page         int    `json:"page"`
	Limit        int    `json:"limit"`
}

// NewTransaction is the body of POST /transactions.
type NewTransaction struct {
	Type        string  `json:"type"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
	CategoryID  string  `json:"category_id"`
	Date        string  `json:"date"`
}
