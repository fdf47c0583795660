package model

// Budget is a monthly spending limit for one category.
// spent/available/percentUsed/alert are computed server-side.
type Budget struct {
	ID          string  `json:"_id"`
	Category    string  `json:"category"`
	Month       string  `json:"month"` // YYYY-MM
	Limit       float64 `json:"limit"`
	Threshold   int     `json:"threshold"`
	IsActive    bool    `json:"isActive"`
	Spent       float64 `json:"spent"`
	Available   float64 `json:"available"`
	PercentUsed float64 `json:"percentUsed"`
	Alert       bool    `json:"alert"`
}

// NewBudget is the body of POST /budgets.
type NewBudget struct {
	CategoryID string  `json:"category_id"`
	Month      string  `json:"month"`
	Limit      float64 `json:"limit"`
	Threshold  int     `json:"threshold"`
}
