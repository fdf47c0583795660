package tui

import (
	"context"
	"fmt"
	"strconv"
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

// goalsMsg carries the savings goals fetch result.
type goalsMsg struct {
	seq   int
	items []model.SavingsGoal
	err   error
}

type goalFormVals struct {
	name        string
	description string
	target      string
	dueDate     string
}

type savingsState struct {
	seq     int
	loading bool
	loaded  bool
	items   []model.SavingsGoal
	errMsg  string
	cursor  int

	form     *huh.Form
	formVals *goalFormVals
	formErr  string
	conflict string

	depositForm *huh.Form
	depositVal  *string
	depositID   string
}

func (a *App) fetchGoals() tea.Cmd {
	seq := a.nextSeq()
	a.savings.seq = seq
	a.savings.loading = true
	a.savings.errMsg = ""

	client := a.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
		defer cancel()
		items, err := client.SavingsGoals(ctx)
		return goalsMsg{seq: seq, items: items, err: err}
	}
}

func (a *App) handleGoals(msg goalsMsg) (tea.Model, tea.Cmd) {
	if msg.seq != a.savings.seq {
		return a, nil
	}
	a.savings.loading = false
	if msg.err != nil {
		a.savings.errMsg = errText(msg.err)
		return a, a.syncPrompt()
	}
	a.savings.loaded = true
	a.savings.items = msg.items
	if a.savings.cursor >= len(msg.items) {
		a.savings.cursor = len(msg.items) - 1
	}
	if a.savings.cursor < 0 {
		a.savings.cursor = 0
	}
	return a, a.syncPrompt()
}

func (a *App) updateSavingsKeys(key string) (tea.Model, tea.Cmd, bool) {
	st := &a.savings
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
		st.formVals = &goalFormVals{}
		st.formErr = ""
		st.conflict = ""
		st.form = newGoalForm(st.formVals)
		return a, st.form.Init(), true
	case "m":
		g, ok := a.selectedGoal()
		if !ok {
			return a, nil, true
		}
		// Completed goals take no more deposits; no request is made.
		if g.Complete() {
			return a, a.pushToast("Goal already completed", true), true
		}
		val := ""
		st.depositVal = &val
		st.depositID = g.ID
		st.depositForm = huh.NewForm(huh.NewGroup(
			huh.NewInput().
				Title(fmt.Sprintf("Deposit into %q", g.Name)).
				Value(st.depositVal),
		))
		return a, st.depositForm.Init(), true
	case "d":
		if g, ok := a.selectedGoal(); ok {
			client := a.client
			id := g.ID
			return a, func() tea.Msg {
				ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
				defer cancel()
				err := client.DeleteSavingsGoal(ctx, id)
				return actionDoneMsg{tab: 3, success: "Goal deleted", err: err}
			}, true
		}
		return a, nil, true
	}
	return a, nil, false
}

func (a *App) selectedGoal() (model.SavingsGoal, bool) {
	st := a.savings
	if st.cursor < 0 || st.cursor >= len(st.items) {
		return model.SavingsGoal{}, false
	}
	return st.items[st.cursor], true
}

func newGoalForm(vals *goalFormVals) *huh.Form {
	return huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Name").
			Value(&vals.name),
		huh.NewInput().
			Title("Description").
			Value(&vals.description),
		huh.NewInput().
			Title("Target amount").
			Value(&vals.target),
		huh.NewInput().
			Title("Due date (YYYY-MM-DD)").
			Value(&vals.dueDate),
	))
}

func (a *App) completeSavingsForms() tea.Cmd {
	st := &a.savings

	if st.depositForm != nil {
		if st.depositForm.State == huh.StateAborted {
			st.depositForm = nil
			return nil
		}
		if st.depositForm.State != huh.StateCompleted {
			return nil
		}

		raw := *st.depositVal
		st.depositForm = nil

		amount, err := strconv.ParseFloat(raw, 64)
		if err != nil || amount <= 0 {
			return a.pushToast("amount must be greater than 0", true)
		}

		// Re-check completion against the latest known state before
		// issuing the request.
		for _, g := range st.items {
			if g.ID == st.depositID && g.Complete() {
				return a.pushToast("Goal already completed", true)
			}
		}

		client := a.client
		id := st.depositID
		return func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
			defer cancel()
			err := client.AddMoney(ctx, id, amount)
			return actionDoneMsg{tab: 3, success: "Deposit added", err: err}
		}
	}

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
	if fe := validate.SavingsGoal(vals.name, vals.description, vals.target, vals.dueDate, time.Now()); fe != nil {
		st.formErr = fe.First()
		st.form = newGoalForm(st.formVals)
		return st.form.Init()
	}

	st.form = nil
	st.formErr = ""

	client := a.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
		defer cancel()
		target, _ := strconv.ParseFloat(vals.target, 64)
		err := client.CreateSavingsGoal(ctx, model.NewSavingsGoal{
			Name:         vals.name,
			Description:  vals.description,
			TargetAmount: target,
			DueDate:      vals.dueDate,
		})
		return actionDoneMsg{tab: 3, success: "Goal created", err: err}
	}
}

func (a *App) renderSavingsTab(cw int) string {
	t := theme.Active
	st := a.savings

	if st.form != nil || st.depositForm != nil {
		var b strings.Builder
		if st.formErr != "" {
			b.WriteString("  " + lipgloss.NewStyle().Foreground(t.Red).Render(st.formErr) + "\n")
		}
		if st.conflict != "" {
			b.WriteString("  " + lipgloss.NewStyle().Foreground(t.Orange).Render(st.conflict) + "\n")
		}
		if st.form != nil {
			b.WriteString(st.form.View())
		} else {
			b.WriteString(st.depositForm.View())
		}
		return b.String()
	}

	if st.loading && !st.loaded {
		return "\n  " + a.spinner.View() + " Loading goals…"
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
			"No savings goals. [a]dd one."))
		return b.String()
	}

	selStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Bold(true)
	nameStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim)
	doneStyle := lipgloss.NewStyle().Foreground(t.Green).Bold(true)

	barW := cw - 40
	if barW < 10 {
		barW = 10
	}

	for i, g := range st.items {
		marker := "  "
		if i == st.cursor {
			marker = selStyle.Render("▸ ")
		}

		status := ""
		if g.Complete() {
			status = " " + doneStyle.Render("✓ complete")
		}

		fmt.Fprintf(&b, "%s%s%s\n", marker, nameStyle.Render(g.Name), status)

		detail := fmt.Sprintf("%s of %s",
			cli.FormatMoney(g.CurrentAmount), cli.FormatMoney(g.TargetAmount))
		if g.DueDate != "" {
			detail += " · due " + cli.FormatDate(g.DueDate)
		}
		if g.MonthlyQuota > 0 {
			detail += fmt.Sprintf(" · %s/month", cli.FormatMoney(g.MonthlyQuota))
		}

		fmt.Fprintf(&b, "    %s\n    %s\n",
			components.ProgressBar(g.ProgressPercent()/100, barW),
			dimStyle.Render(detail))
	}

	b.WriteString("\n  " + dimStyle.Render("[a]dd  [m]deposit  [d]elete"))
	return b.String()
}
