// Package validate holds the client-side form rules. Everything here
// runs before a request is dispatched; the backend re-validates on its
// side of the trust boundary.
package validate

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/A1anTm/spendsmart/internal/model"
)

var v = validator.New()

// FieldErrors maps field names to user-facing messages.
type FieldErrors map[string]string

// First returns one message for surfaces that show a single error line.
func (fe FieldErrors) First() string {
	for _, msg := range fe {
		return msg
	}
	return ""
}

var (
	monthRe = regexp.MustCompile(`^\d{4}-\d{2}$`)
	nameRe  = regexp.MustCompile(`^[a-zA-ZáéíóúüñÑ\s'-]+$`)
	// Goal names additionally allow digits.
	goalNameRe = regexp.MustCompile(`^[a-zA-Z0-9áéíóúüñÑ\s'-]+$`)
	phoneRe    = regexp.MustCompile(`^[+]?[(]?[0-9]{1,4}[)]?[-\s./0-9]*$`)
)

// Email checks address format.
func Email(email string) error {
	if email == "" {
		return fmt.Errorf("email is required")
	}
	if err := v.Var(email, "email"); err != nil {
		return fmt.Errorf("invalid email format")
	}
	return nil
}

// Password checks the strength rules shared by register, reset, and
// change-password: 8-128 chars with at least one lowercase, uppercase,
// digit, and symbol.
func Password(pwd string) error {
	if pwd == "" {
		return fmt.Errorf("password is required")
	}
	if len(pwd) < 8 {
		return fmt.Errorf("at least 8 characters")
	}
	if len(pwd) > 128 {
		return fmt.Errorf("at most 128 characters")
	}

	var lower, upper, digit, symbol bool
	for _, r := range pwd {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		default:
			symbol = true
		}
	}
	if !lower || !upper || !digit || !symbol {
		return fmt.Errorf("must include uppercase, lowercase, number, and symbol")
	}
	return nil
}

// Register checks the sign-up form.
func Register(fullName, email, password, confirm string) FieldErrors {
	fe := FieldErrors{}

	switch {
	case strings.TrimSpace(fullName) == "":
		fe["full_name"] = "name is required"
	case len(fullName) < 3:
		fe["full_name"] = "at least 3 characters"
	case len(fullName) > 60:
		fe["full_name"] = "at most 60 characters"
	case !nameRe.MatchString(fullName):
		fe["full_name"] = "name contains invalid characters"
	}

	if err := Email(email); err != nil {
		fe["email"] = err.Error()
	}
	if err := Password(password); err != nil {
		fe["password"] = err.Error()
	}
	if confirm != password {
		fe["confirm"] = "passwords do not match"
	}

	if len(fe) == 0 {
		return nil
	}
	return fe
}

// ChangePassword checks the change-password form.
func ChangePassword(current, next, confirm string) FieldErrors {
	fe := FieldErrors{}

	if current == "" {
		fe["current"] = "current password is required"
	}
	if err := Password(next); err != nil {
		fe["new"] = err.Error()
	} else if current != "" && current == next {
		fe["new"] = "new password must differ from the current one"
	}
	if confirm == "" {
		fe["confirm"] = "confirm the new password"
	} else if next != "" && next != confirm {
		fe["confirm"] = "passwords do not match"
	}

	if len(fe) == 0 {
		return nil
	}
	return fe
}

// Budget checks the budget form. Inputs arrive as strings straight from
// the form fields; the parsed limit and threshold are returned for the
// request body.
func Budget(categoryID, month, limit, threshold string) (float64, int, error) {
	if categoryID == "" {
		return 0, 0, fmt.Errorf("select a category")
	}

	if !monthRe.MatchString(month) {
		return 0, 0, fmt.Errorf("month must be in YYYY-MM format")
	}
	parts := strings.SplitN(month, "-", 2)
	y, _ := strconv.Atoi(parts[0])
	m, _ := strconv.Atoi(parts[1])
	if y < 2000 || y > 2100 || m < 1 || m > 12 {
		return 0, 0, fmt.Errorf("month out of range")
	}

	lim, err := strconv.ParseFloat(limit, 64)
	if err != nil || lim < 0.01 {
		return 0, 0, fmt.Errorf("limit must be greater than 0")
	}

	thr, err := strconv.Atoi(threshold)
	if err != nil || thr < 0 || thr > 100 {
		return 0, 0, fmt.Errorf("threshold must be between 0 and 100")
	}

	return lim, thr, nil
}

// Transaction checks the new-transaction form. today anchors the
// no-past-dates rule; pass time.Now() outside tests.
func Transaction(txType, amount, date, description string, today time.Time) FieldErrors {
	fe := FieldErrors{}

	if txType != model.TxExpense && txType != model.TxIncome {
		fe["type"] = "invalid type"
	}

	amt, err := strconv.ParseFloat(amount, 64)
	if err != nil || amt <= 0 {
		fe["amount"] = "amount must be greater than 0"
	}

	if date == "" {
		fe["date"] = "date is required"
	} else if d, err := time.Parse("2006-01-02", date); err != nil {
		fe["date"] = "invalid date"
	} else {
		day := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
		if d.Before(day) {
			fe["date"] = "dates before today are not allowed"
		}
	}

	if len(description) > 250 {
		fe["description"] = "description cannot exceed 250 characters"
	}

	if len(fe) == 0 {
		return nil
	}
	return fe
}

// SavingsGoal checks the new-goal form.
func SavingsGoal(name, description, targetAmount, dueDate string, today time.Time) FieldErrors {
	fe := FieldErrors{}

	trimmed := strings.TrimSpace(name)
	switch {
	case trimmed == "":
		fe["name"] = "name is required"
	case len(trimmed) < 3:
		fe["name"] = "name must have at least 3 characters"
	case len(trimmed) > 60:
		fe["name"] = "name cannot exceed 60 characters"
	case !goalNameRe.MatchString(trimmed):
		fe["name"] = "name contains invalid characters"
	}

	if len(description) > 250 {
		fe["description"] = "description cannot exceed 250 characters"
	}

	amt, err := strconv.ParseFloat(targetAmount, 64)
	if err != nil || amt <= 0 {
		fe["target_amount"] = "target amount must be greater than 0"
	}

	if dueDate == "" {
		fe["due_date"] = "due date is required"
	} else if due, err := time.Parse("2006-01-02", dueDate); err != nil {
		fe["due_date"] = "invalid date"
	} else {
		day := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
		if !due.After(day) {
			fe["due_date"] = "due date must be in the future"
		}
	}

	if len(fe) == 0 {
		return nil
	}
	return fe
}

// Profile checks the profile editor form, returning the first violation.
func Profile(p model.UserProfile) error {
	if len(p.FullName) < 3 || len(p.FullName) > 60 {
		return fmt.Errorf("name must have between 3 and 60 characters")
	}
	if !nameRe.MatchString(p.FullName) {
		return fmt.Errorf("name contains invalid characters")
	}
	if len(p.Bio) > 250 {
		return fmt.Errorf("bio cannot exceed 250 characters")
	}
	if p.PhoneNumber != "" && !phoneRe.MatchString(p.PhoneNumber) {
		return fmt.Errorf("invalid phone number")
	}
	for _, sc := range p.SocialAccounts {
		if sc.AccountURL == "" {
			continue
		}
		if err := v.Var(sc.AccountURL, "http_url"); err != nil {
			return fmt.Errorf("invalid URL for %s", sc.Provider)
		}
	}
	return nil
}
