package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/A1anTm/spendsmart/internal/cli"
	"github.com/A1anTm/spendsmart/internal/model"
	"github.com/A1anTm/spendsmart/internal/tui/components"
	"github.com/A1anTm/spendsmart/internal/tui/theme"
	"github.com/A1anTm/spendsmart/internal/validate"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// budgetsMsg carries the budgets fetch result.
type budgetsMsg struct {
	seq   int
	items []model.Budget
	err   error
}

type budgetFormVals struct {
	categoryID string
	month      string
	limit      string
	threshold  string
}

type budgetsState struct {
	seq     int
	loading bool
	loaded  bool
	items   []model.Budget
	errMsg  string
	cursor  int

	form        *huh.Form
	formVals    *budgetFormVals
	formErr     string
	conflict    string
	catSeq      int
	loadingCats bool
}

func (a *App) fetchBudgets() tea.Cmd {
	seq := a.nextSeq()
	a.budgets.seq = seq
	a.budgets.loading = true
	a.budgets.errMsg = ""

	client := a.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
		defer cancel()
		items, err := client.Budgets(ctx)
		return budgetsMsg{seq: seq, items: items, err: err}
	}
}

func (a *App) handleBudgets(msg budgetsMsg) (tea.Model, tea.Cmd) {
	if msg.seq != a.budgets.seq {
		return a, nil
	}
	a.budgets.loading = false
	if msg.err != nil {
		a.budgets.errMsg = errText(msg.err)
		return a, a.syncPrompt()
	}
	a.budgets.loaded = true
	a.budgets.items = msg.items
	if a.budgets.cursor >= len(msg.items) {
		a.budgets.cursor = len(msg.items) - 1
	}
	if a.budgets.cursor < 0 {
		a.budgets.cursor = 0
	}
	return a, a.syncPrompt()
}

func (a *App) updateBudgetKeys(key string) (tea.Model, tea.Cmd, bool) {
	st := &a.budgets
	switch key {
	case "j", "down":
		if st.cursor < len(st.items)-1 {
			st.cursor++
		}
		return a, nil, true
	case "k", "up":
		if st.cursor > 0 {
			st.cursor--
		}
		return a, nil, true
	case "a":
		st.formVals = &budgetFormVals{
			month:     cli.CurrentMonth(),
			threshold: "80",
		}
		st.formErr = ""
		st.conflict = ""
		st.loadingCats = true
		// Budget categories are expense categories.
		return a, a.fetchBudgetCategories(), true
	case "x":
		if b, ok := a.selectedBudget(); ok {
			client := a.client
			id := b.ID
			return a, func() tea.Msg {
				ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
				defer cancel()
				err := client.ToggleBudget(ctx, id)
				return actionDoneMsg{tab: 2, success: "Budget updated", err: err}
			}, true
		}
		return a, nil, true
	case "d":
		if b, ok := a.selectedBudget(); ok {
			client := a.client
			id := b.ID
			return a, func() tea.Msg {
				ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
				defer cancel()
				err := client.DeleteBudget(ctx, id)
				return actionDoneMsg{tab: 2, success: "Budget deleted", err: err}
			}, true
		}
		return a, nil, true
	}
	return a, nil, false
}

func (a *App) selectedBudget() (model.Budget, bool) {
	st := a.budgets
	if st.cursor < 0 || st.cursor >= len(st.items) {
		return model.Budget{}, false
	}
	return st.items[st.cursor], true
}

// fetchBudgetCategories loads expense categories for the add form. It
// reuses the transactions categories endpoint but routes the response
// into the budgets state via its own sequence slot.
func (a *App) fetchBudgetCategories() tea.Cmd {
	seq := a.nextSeq()
	a.budgets.catSeq = seq
	a.tx.catSeq = 0 // not a transactions fetch
	client := a.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
		defer cancel()
		items, err := client.Categories(ctx, model.TxExpense)
		return categoriesMsg{seq: seq, txType: model.TxExpense, items: items, err: err}
	}
}

// handleBudgetCategories is called from handleCategories when the
// sequence belongs to the budgets tab.
func (a *App) handleBudgetCategories(msg categoriesMsg) (tea.Model, tea.Cmd) {
	a.budgets.loadingCats = false
	if msg.err != nil {
		return a, tea.Batch(a.pushToast(errText(msg.err), true), a.syncPrompt())
	}
	a.budgets.form = newBudgetForm(a.budgets.formVals, msg.items)
	return a, a.budgets.form.Init()
}

func newBudgetForm(vals *budgetFormVals, categories []model.Category) *huh.Form {
	opts := make([]huh.Option[string], 0, len(categories))
	for _, c := range categories {
		opts = append(opts, huh.NewOption(c.Name, c.ID))
	}

	return huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title("Category").
			Options(opts...).
			Value(&vals.categoryID),
		huh.NewInput().
			Title("Month (YYYY-MM)").
			Value(&vals.month),
		huh.NewInput().
			Title("Limit").
			Value(&vals.limit),
		huh.NewInput().
			Title("Alert threshold (%)").
			Value(&vals.threshold),
	))
}

func (a *App) completeBudgetForm() tea.Cmd {
	st := &a.budgets
	if st.form == nil {
		return nil
	}
	if st.form.State == huh.StateAborted {
		st.form = nil
		return nil
	}
	if st.form.State != huh.StateCompleted {
		return nil
	}

	vals := *st.formVals
	limit, threshold, err := validate.Budget(vals.categoryID, vals.month, vals.limit, vals.threshold)
	if err != nil {
		st.formErr = err.Error()
		st.form = nil
		st.loadingCats = true
		return a.fetchBudgetCategories()
	}

	st.form = nil
	st.formErr = ""

	client := a.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
		defer cancel()
		err := client.CreateBudget(ctx, model.NewBudget{
			CategoryID: vals.categoryID,
			Month:      vals.month,
			Limit:      limit,
			Threshold:  threshold,
		})
		return actionDoneMsg{tab: 2, success: "Budget created", err: err}
	}
}

func (a *App) renderBudgetsTab(cw int) string {
	t := theme.Active
	st := a.budgets

	if st.form != nil || st.loadingCats {
		var b strings.Builder
		if st.formErr != "" {
			b.WriteString("  " + lipgloss.NewStyle().Foreground(t.Red).Render(st.formErr) + "\n")
		}
		if st.conflict != "" {
			b.WriteString("  " + lipgloss.NewStyle().Foreground(t.Orange).Render(st.conflict) + "\n")
		}
		if st.loadingCats {
			b.WriteString("\n  " + a.spinner.View() + " Loading categories…")
		} else {
			b.WriteString(st.form.View())
		}
		return b.String()
	}

	if st.loading && !st.loaded {
		return "\n  " + a.spinner.View() + " Loading budgets…"
	}
	if st.errMsg != "" {
		return "\n  " + lipgloss.NewStyle().Foreground(t.Red).Render(st.errMsg)
	}

	var b strings.Builder

	if st.conflict != "" {
		b.WriteString("  " + lipgloss.NewStyle().Foreground(t.Orange).Render(st.conflict) + "\n")
	}

	if len(st.items) == 0 {
		b.WriteString("\n  " + lipgloss.NewStyle().Foreground(t.TextDim).Render(
			"No budgets. [a]dd one."))
		return b.String()
	}

	selStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Bold(true)
	nameStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim)
	alertStyle := lipgloss.NewStyle().Foreground(t.Orange).Bold(true)

	labelW := 16
	barW := cw - labelW - 40
	if barW < 10 {
		barW = 10
	}

	for i, bd := range st.items {
		marker := "  "
		if i == st.cursor {
			marker = selStyle.Render("▸ ")
		}

		status := dimStyle.Render("paused")
		if bd.IsActive {
			status = lipgloss.NewStyle().Foreground(t.Green).Render("active")
		}

		alert := "      "
		if bd.Alert {
			alert = alertStyle.Render("ALERT ")
		}

		fmt.Fprintf(&b, "%s%s %s %s %s\n",
			marker,
			nameStyle.Render(fmt.Sprintf("%-*s", labelW, truncStr(bd.Category, labelW))),
			dimStyle.Render(bd.Month),
			status,
			alert)

		fmt.Fprintf(&b, "    %s  %s\n",
			components.UtilizationBar("", bd.PercentUsed/100, 0, barW),
			dimStyle.Render(fmt.Sprintf("%s spent of %s · %s left",
				cli.FormatMoney(bd.Spent), cli.FormatMoney(bd.Limit), cli.FormatMoney(bd.Available))))
	}

	b.WriteString("\n  " + dimStyle.Render("[a]dd  [x]toggle  [d]elete"))
	return b.String()
}
