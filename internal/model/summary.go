package model

// ClosestGoal is the summary's nearest savings goal. The backend sends a
// full goal object, or {"name":"Sin metas activas"} when none are active.
type ClosestGoal struct {
	Name          string  `json:"name"`
	TargetAmount  float64 `json:"target_amount"`
	CurrentAmount float64 `json:"current_amount"`
}

const noActiveGoals = "Sin metas activas"

// Active reports whether the summary carried a real goal.
func (g ClosestGoal) Active() bool {
	return g.Name != "" && g.Name != noActiveGoals
}

// Summary is the dashboard aggregate from GET /summary?month=YYYY-MM.
type Summary struct {
	TotalBalance       float64       `json:"totalBalance"`
	MonthlyIncome      float64       `json:"monthlyIncome"`
	MonthlyExpense     float64       `json:"monthlyExpense"`
	MonthlySavings     float64       `json:"monthlySavings"`
	TotalSaved         float64       `json:"totalSaved"`
	RecentTransactions []Transaction `json:"recentTransactions"`
	ClosestGoal        ClosestGoal   `json:"closestGoal"`
}
