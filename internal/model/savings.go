package model

// SavingsGoal is a savings target with server-derived progress.
type SavingsGoal struct {
	ID            string  `json:"_id"`
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	TargetAmount  float64 `json:"target_amount"`
	CurrentAmount float64 `json:"current_amount"`
	DueDate       string  `json:"due_date"`
	Status        string  `json:"status"`
	Progress      float64 `json:"progress"`
	MonthlyQuota  float64 `json:"monthly_quota"`
}

// Complete reports whether the goal has reached its target.
// Complete goals accept no further contributions.
func (g SavingsGoal) Complete() bool {
	return g.CurrentAmount >= g.TargetAmount
}

// ProgressPercent returns progress as a percent, capped at 100 for display.
func (g SavingsGoal) ProgressPercent() float64 {
	if g.TargetAmount <= 0 {
		return 0
	}
	p := g.CurrentAmount / g.TargetAmount * 100
	if p > 100 {
		p = 100
	}
	return p
}

// NewSavingsGoal is the body of POST /savings.
type NewSavingsGoal struct {
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	TargetAmount float64 `json:"target_amount"`
	DueDate      string  `json:"due_date"`
}
