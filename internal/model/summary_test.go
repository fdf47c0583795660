package model

import (
	"encoding/json"
	"testing"
)

func TestClosestGoalActive(t *testing.T) {
	tests := []struct {
		name string
		goal ClosestGoal
		want bool
	}{
		{"real goal", ClosestGoal{Name: "Trip 2026", TargetAmount: 3000}, true},
		{"no active goals sentinel", ClosestGoal{Name: "Sin metas activas"}, false},
		{"empty", ClosestGoal{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.goal.Active(); got != tt.want {
				t.Errorf("Active() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSummaryDecodesBackendShape(t *testing.T) {
	raw := `{
		"totalBalance": 1500.5,
		"monthlyIncome": 3000,
		"monthlyExpense": 1200,
		"monthlySavings": 300,
		"totalSaved": 2500,
		"recentTransactions": [
			{"_id": "t1", "type": "gasto", "amount": 25.5, "description": "lunch", "date": "2025-06-15", "category": "Food"}
		],
		"closestGoal": {"name": "Trip 2026", "target_amount": 3000, "current_amount": 900}
	}`

	var s Summary
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		t.Fatalf("decoding summary: %v", err)
	}
	if s.TotalBalance != 1500.5 {
		t.Errorf("TotalBalance = %v, want 1500.5", s.TotalBalance)
	}
	if len(s.RecentTransactions) != 1 || s.RecentTransactions[0].Type != TxExpense {
		t.Errorf("RecentTransactions = %+v", s.RecentTransactions)
	}
	if !s.ClosestGoal.Active() {
		t.Error("closest goal should be active")
	}
}
