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

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// summaryMsg carries the overview fetch result.
type summaryMsg struct {
	seq  int
	data model.Summary
	err  error
}

type overviewState struct {
	seq     int
	loading bool
	loaded  bool
	data    model.Summary
	errMsg  string
}

func (a *App) fetchOverview() tea.Cmd {
	seq := a.nextSeq()
	a.overview.seq = seq
	a.overview.loading = true
	a.overview.errMsg = ""

	client := a.client
	month := cli.CurrentMonth()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
		defer cancel()
		data, err := client.Summary(ctx, month)
		return summaryMsg{seq: seq, data: data, err: err}
	}
}

func (a *App) handleSummary(msg summaryMsg) (tea.Model, tea.Cmd) {
	if msg.seq != a.overview.seq {
		return a, nil
	}
	a.overview.loading = false
	if msg.err != nil {
		a.overview.errMsg = errText(msg.err)
		return a, a.syncPrompt()
	}
	a.overview.loaded = true
	a.overview.data = msg.data
	return a, a.syncPrompt()
}

func (a *App) renderOverviewTab(cw int) string {
	st := a.overview

	if st.loading && !st.loaded {
		return "\n  " + a.spinner.View() + " Loading summary…"
	}
	if st.errMsg != "" {
		return "\n  " + lipgloss.NewStyle().Foreground(theme.Active.Red).Render(st.errMsg)
	}
	if !st.loaded {
		return ""
	}

	s := st.data
	var b strings.Builder

	cards := []struct{ Label, Value, Detail string }{
		{"Balance", cli.FormatMoney(s.TotalBalance), ""},
		{"Income", cli.FormatMoney(s.MonthlyIncome), "this month"},
		{"Expenses", cli.FormatMoney(s.MonthlyExpense), "this month"},
		{"Saved", cli.FormatMoney(s.TotalSaved), cli.FormatMoney(s.MonthlySavings) + " this month"},
	}
	b.WriteString(components.MetricCardRow(cards, cw))
	b.WriteString("\n")

	halves := components.LayoutRow(cw, 2)

	recentCard := components.ContentCard(
		"Recent Transactions",
		renderRecent(s.RecentTransactions, components.CardInnerWidth(halves[0])),
		halves[0],
	)
	goalCard := components.ContentCard(
		"Closest Goal",
		renderClosestGoal(s.ClosestGoal, components.CardInnerWidth(halves[1])),
		halves[1],
	)

	if a.isCompactLayout() {
		b.WriteString(components.ContentCard("Recent Transactions",
			renderRecent(s.RecentTransactions, components.CardInnerWidth(cw)), cw))
		b.WriteString("\n")
		b.WriteString(components.ContentCard("Closest Goal",
			renderClosestGoal(s.ClosestGoal, components.CardInnerWidth(cw)), cw))
	} else {
		b.WriteString(components.CardRow([]string{recentCard, goalCard}))
	}

	return b.String()
}

func renderRecent(txs []model.Transaction, innerW int) string {
	t := theme.Active
	if len(txs) == 0 {
		return lipgloss.NewStyle().Foreground(t.TextDim).Render("No transactions yet")
	}

	dateStyle := lipgloss.NewStyle().Foreground(t.TextDim)
	descStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)

	amountW := 10
	descW := innerW - 12 - amountW
	if descW < 8 {
		descW = 8
	}

	var b strings.Builder
	limit := 6
	if len(txs) < limit {
		limit = len(txs)
	}
	for _, tx := range txs[:limit] {
		amount := cli.FormatSigned(tx.Amount)
		amountStyled := lipgloss.NewStyle().Foreground(t.Green).Render(fmt.Sprintf("%*s", amountW, amount))
		if tx.Type == model.TxExpense {
			amount = "-" + cli.FormatMoney(tx.Amount)
			amountStyled = lipgloss.NewStyle().Foreground(t.Red).Render(fmt.Sprintf("%*s", amountW, amount))
		}
		fmt.Fprintf(&b, "%s %s %s\n",
			dateStyle.Render(cli.FormatDate(tx.Date)),
			descStyle.Render(fmt.Sprintf("%-*s", descW, truncStr(tx.Description, descW))),
			amountStyled)
	}
	return b.String()
}

func renderClosestGoal(g model.ClosestGoal, innerW int) string {
	t := theme.Active
	if !g.Active() {
		return lipgloss.NewStyle().Foreground(t.TextDim).Render("No active goals")
	}

	pct := 0.0
	if g.TargetAmount > 0 {
		pct = g.CurrentAmount / g.TargetAmount
	}
	if pct > 1 {
		pct = 1
	}

	barW := innerW - 8
	if barW < 10 {
		barW = 10
	}

	nameStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Bold(true)
	amountStyle := lipgloss.NewStyle().Foreground(t.TextMuted)

	var b strings.Builder
	b.WriteString(nameStyle.Render(g.Name))
	b.WriteString("\n")
	b.WriteString(amountStyle.Render(
		cli.FormatMoney(g.CurrentAmount) + " of " + cli.FormatMoney(g.TargetAmount)))
	b.WriteString("\n")
	b.WriteString(components.ProgressBar(pct, barW))
	return b.String()
}
