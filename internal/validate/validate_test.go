package validate

import (
	"strings"
	"testing"
	"time"

	"github.com/A1anTm/spendsmart/internal/model"
)

var today = time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)

func TestEmail(t *testing.T) {
	tests := []struct {
		email   string
		wantErr bool
	}{
		{"ana@example.com", false},
		{"a.b+tag@sub.example.co", false},
		{"", true},
		{"not-an-email", true},
		{"missing@tld", true},
		{"@example.com", true},
	}

	for _, tt := range tests {
		err := Email(tt.email)
		if (err != nil) != tt.wantErr {
			t.Errorf("Email(%q) = %v, wantErr %v", tt.email, err, tt.wantErr)
		}
	}
}

func TestPassword(t *testing.T) {
	tests := []struct {
		name    string
		pwd     string
		wantErr bool
	}{
		{"strong", "Abcd123!", false},
		{"all lowercase", "abcdefgh", true},
		{"no symbol", "Abcd1234", true},
		{"no digit", "Abcdefg!", true},
		{"no uppercase", "abcd123!", true},
		{"too short", "Ab1!", true},
		{"empty", "", true},
		{"at max length", "A1!" + strings.Repeat("a", 125), false},
		{"over max length", "A1!" + strings.Repeat("a", 126), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Password(tt.pwd)
			if (err != nil) != tt.wantErr {
				t.Errorf("Password(%q) = %v, wantErr %v", tt.pwd, err, tt.wantErr)
			}
		})
	}
}

func TestRegister(t *testing.T) {
	if fe := Register("Ana García", "ana@example.com", "Abcd123!", "Abcd123!"); fe != nil {
		t.Fatalf("valid registration rejected: %v", fe)
	}

	tests := []struct {
		name      string
		fullName  string
		email     string
		password  string
		confirm   string
		wantField string
	}{
		{"empty name", "", "ana@example.com", "Abcd123!", "Abcd123!", "full_name"},
		{"short name", "Al", "ana@example.com", "Abcd123!", "Abcd123!", "full_name"},
		{"digits in name", "Ana 99", "ana@example.com", "Abcd123!", "Abcd123!", "full_name"},
		{"bad email", "Ana García", "nope", "Abcd123!", "Abcd123!", "email"},
		{"weak password", "Ana García", "ana@example.com", "abcdefgh", "abcdefgh", "password"},
		{"mismatch", "Ana García", "ana@example.com", "Abcd123!", "Abcd124!", "confirm"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fe := Register(tt.fullName, tt.email, tt.password, tt.confirm)
			if fe == nil {
				t.Fatal("Register accepted invalid input")
			}
			if _, ok := fe[tt.wantField]; !ok {
				t.Errorf("missing error for field %q, got %v", tt.wantField, fe)
			}
		})
	}
}

func TestChangePassword(t *testing.T) {
	if fe := ChangePassword("Old123!x", "New456!y", "New456!y"); fe != nil {
		t.Fatalf("valid change rejected: %v", fe)
	}

	tests := []struct {
		name      string
		current   string
		next      string
		confirm   string
		wantField string
	}{
		{"empty current", "", "New456!y", "New456!y", "current"},
		{"weak new", "Old123!x", "weak", "weak", "new"},
		{"same as current", "Old123!x", "Old123!x", "Old123!x", "new"},
		{"empty confirm", "Old123!x", "New456!y", "", "confirm"},
		{"mismatch", "Old123!x", "New456!y", "New456!z", "confirm"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fe := ChangePassword(tt.current, tt.next, tt.confirm)
			if fe == nil {
				t.Fatal("ChangePassword accepted invalid input")
			}
			if _, ok := fe[tt.wantField]; !ok {
				t.Errorf("missing error for field %q, got %v", tt.wantField, fe)
			}
		})
	}
}

func TestBudget(t *testing.T) {
	lim, thr, err := Budget("c1", "2025-06", "100", "80")
	if err != nil {
		t.Fatalf("valid budget rejected: %v", err)
	}
	if lim != 100 || thr != 80 {
		t.Fatalf("Budget parsed (%v, %v), want (100, 80)", lim, thr)
	}

	tests := []struct {
		name       string
		categoryID string
		month      string
		limit      string
		threshold  string
	}{
		{"no category", "", "2025-06", "100", "80"},
		{"month 13", "c1", "2025-13", "100", "80"},
		{"month 0", "c1", "2025-00", "100", "80"},
		{"year too early", "c1", "1999-06", "100", "80"},
		{"year too late", "c1", "2101-06", "100", "80"},
		{"bad month format", "c1", "June 2025", "100", "80"},
		{"zero limit", "c1", "2025-06", "0", "80"},
		{"negative limit", "c1", "2025-06", "-5", "80"},
		{"non-numeric limit", "c1", "2025-06", "abc", "80"},
		{"threshold over 100", "c1", "2025-06", "100", "120"},
		{"negative threshold", "c1", "2025-06", "100", "-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := Budget(tt.categoryID, tt.month, tt.limit, tt.threshold); err == nil {
				t.Error("Budget accepted invalid input")
			}
		})
	}
}

func TestTransaction(t *testing.T) {
	if fe := Transaction(model.TxExpense, "25.50", "2025-06-15", "lunch", today); fe != nil {
		t.Fatalf("valid transaction rejected: %v", fe)
	}
	if fe := Transaction(model.TxIncome, "1000", "2025-06-20", "", today); fe != nil {
		t.Fatalf("future-dated income rejected: %v", fe)
	}

	long := strings.Repeat("x", 251)

	tests := []struct {
		name      string
		txType    string
		amount    string
		date      string
		desc      string
		wantField string
	}{
		{"unknown type", "transfer", "10", "2025-06-15", "", "type"},
		{"zero amount", model.TxExpense, "0", "2025-06-15", "", "amount"},
		{"negative amount", model.TxExpense, "-3", "2025-06-15", "", "amount"},
		{"non-numeric amount", model.TxExpense, "ten", "2025-06-15", "", "amount"},
		{"past date", model.TxExpense, "10", "2025-06-14", "", "date"},
		{"empty date", model.TxExpense, "10", "", "", "date"},
		{"garbage date", model.TxExpense, "10", "15/06/2025", "", "date"},
		{"long description", model.TxExpense, "10", "2025-06-15", long, "description"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fe := Transaction(tt.txType, tt.amount, tt.date, tt.desc, today)
			if fe == nil {
				t.Fatal("Transaction accepted invalid input")
			}
			if _, ok := fe[tt.wantField]; !ok {
				t.Errorf("missing error for field %q, got %v", tt.wantField, fe)
			}
		})
	}
}

func TestSavingsGoal(t *testing.T) {
	if fe := SavingsGoal("Trip 2026", "two weeks in Japan", "3000", "2026-03-01", today); fe != nil {
		t.Fatalf("valid goal rejected: %v", fe)
	}

	tests := []struct {
		name      string
		goalName  string
		target    string
		due       string
		wantField string
	}{
		{"empty name", "", "3000", "2026-03-01", "name"},
		{"short name", "ab", "3000", "2026-03-01", "name"},
		{"invalid chars", "Trip @ beach", "3000", "2026-03-01", "name"},
		{"zero target", "Trip 2026", "0", "2026-03-01", "target_amount"},
		{"due today", "Trip 2026", "3000", "2025-06-15", "due_date"},
		{"due in past", "Trip 2026", "3000", "2025-01-01", "due_date"},
		{"empty due", "Trip 2026", "3000", "", "due_date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fe := SavingsGoal(tt.goalName, "", tt.target, tt.due, today)
			if fe == nil {
				t.Fatal("SavingsGoal accepted invalid input")
			}
			if _, ok := fe[tt.wantField]; !ok {
				t.Errorf("missing error for field %q, got %v", tt.wantField, fe)
			}
		})
	}
}

func TestProfile(t *testing.T) {
	valid := model.UserProfile{
		FullName:    "Ana García",
		PhoneNumber: "+52 555 123 4567",
		SocialAccounts: []model.SocialAccount{
			{Provider: "github", AccountURL: "https://github.com/ana"},
			{Provider: "twitter", AccountURL: ""},
		},
	}
	if err := Profile(valid); err != nil {
		t.Fatalf("valid profile rejected: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(p *model.UserProfile)
	}{
		{"short name", func(p *model.UserProfile) { p.FullName = "Al" }},
		{"digits in name", func(p *model.UserProfile) { p.FullName = "Ana 42" }},
		{"bad phone", func(p *model.UserProfile) { p.PhoneNumber = "call me" }},
		{"bad social URL", func(p *model.UserProfile) {
			p.SocialAccounts = []model.SocialAccount{{Provider: "github", AccountURL: "not a url"}}
		}},
		{"ftp social URL", func(p *model.UserProfile) {
			p.SocialAccounts = []model.SocialAccount{{Provider: "github", AccountURL: "ftp://example.com"}}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := valid
			tt.mutate(&p)
			if err := Profile(p); err == nil {
				t.Error("Profile accepted invalid input")
			}
		})
	}
}
