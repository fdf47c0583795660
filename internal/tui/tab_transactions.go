package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/A1anTm/spendsmart/internal/cli"
	"github.com/A1anTm/spendsmart/internal/model"
	"github.com/A1anTm/spendsmart/internal/tui/theme"
	"github.com/A1anTm/spendsmart/internal/validate"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// txLoadedMsg carries one page of the ledger.
type txLoadedMsg struct {
	seq   int
	items []model.Transaction
	total int
	err   error
}

// categoriesMsg carries the category list for one transaction type.
type categoriesMsg struct {
	seq    int
	txType string
	items  []model.Category
	err    error
}

// actionDoneMsg reports a mutation (create/toggle/delete/deposit).
type actionDoneMsg struct {
	tab     int
	success string
	err     error
}

type txFormVals struct {
	txType      string
	categoryID  string
	amount      string
	date        string
	description string
}

type txFilterVals struct {
	txType       string
	categoryName string
	startDate    string
	endDate      string
}

type txState struct {
	seq     int
	loading bool
	loaded  bool
	items   []model.Transaction
	total   int
	errMsg  string
	cursor  int

	page  int
	limit int

	filter     txFilterVals
	filterForm *huh.Form
	filterVals *txFilterVals

	// Add flow: type select first, then the full form once the
	// matching categories arrive.
	form        *huh.Form
	formVals    *txFormVals
	formStage   int
	formErr     string
	conflict    string
	catSeq      int
	loadingCats bool
	categories  []model.Category
}

func (a *App) fetchTransactions() tea.Cmd {
	seq := a.nextSeq()
	a.tx.seq = seq
	a.tx.loading = true
	a.tx.errMsg = ""
	if a.tx.limit == 0 {
		a.tx.limit = a.cfg.General.PageSize
		if a.tx.limit <= 0 {
			a.tx.limit = 20
		}
	}
	if a.tx.page == 0 {
		a.tx.page = 1
	}

	filter := model.TransactionFilter{
		Type:         a.tx.filter.txType,
		CategoryName: a.tx.filter.categoryName,
		StartDate:    a.tx.filter.startDate,
		EndDate:      a.tx.filter.endDate,
		Page:         a.tx.page,
		Limit:        a.tx.limit,
	}

	client := a.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
		defer cancel()
		items, total, err := client.FilterTransactions(ctx, filter)
		return txLoadedMsg{seq: seq, items: items, total: total, err: err}
	}
}

func (a *App) handleTxLoaded(msg txLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.seq != a.tx.seq {
		// A newer fetch superseded this one.
		return a, nil
	}
	a.tx.loading = false
	if msg.err != nil {
		a.tx.errMsg = errText(msg.err)
		return a, a.syncPrompt()
	}
	a.tx.loaded = true
	a.tx.items = msg.items
	a.tx.total = msg.total
	if a.tx.cursor >= len(msg.items) {
		a.tx.cursor = len(msg.items) - 1
	}
	if a.tx.cursor < 0 {
		a.tx.cursor = 0
	}
	return a, a.syncPrompt()
}

func (a *App) updateTxKeys(key string) (tea.Model, tea.Cmd, bool) {
	st := &a.tx
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
	case "]":
		if st.page*st.limit < st.total {
			st.page++
			return a, a.fetchTransactions(), true
		}
		return a, nil, true
	case "[":
		if st.page > 1 {
			st.page--
			return a, a.fetchTransactions(), true
		}
		return a, nil, true
	case "a":
		st.formVals = &txFormVals{txType: model.TxExpense, date: time.Now().Format("2006-01-02")}
		st.formStage = 1
		st.formErr = ""
		st.conflict = ""
		st.form = newTxTypeForm(st.formVals)
		return a, st.form.Init(), true
	case "f":
		vals := st.filter
		st.filterVals = &vals
		st.filterForm = newTxFilterForm(st.filterVals)
		return a, st.filterForm.Init(), true
	}
	return a, nil, false
}

func newTxTypeForm(vals *txFormVals) *huh.Form {
	return huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title("Type").
			Options(
				huh.NewOption("Expense", model.TxExpense),
				huh.NewOption("Income", model.TxIncome),
			).
			Value(&vals.txType),
	))
}

func newTxDetailForm(vals *txFormVals, categories []model.Category) *huh.Form {
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
			Title("Amount").
			Value(&vals.amount),
		huh.NewInput().
			Title("Date (YYYY-MM-DD)").
			Value(&vals.date),
		huh.NewInput().
			Title("Description").
			Value(&vals.description),
	))
}

func newTxFilterForm(vals *txFilterVals) *huh.Form {
	return huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title("Type").
			Options(
				huh.NewOption("All", ""),
				huh.NewOption("Expense", model.TxExpense),
				huh.NewOption("Income", model.TxIncome),
			).
			Value(&vals.txType),
		huh.NewInput().
			Title("Category name").
			Value(&vals.categoryName),
		huh.NewInput().
			Title("From (YYYY-MM-DD)").
			Value(&vals.startDate),
		huh.NewInput().
			Title("To (YYYY-MM-DD)").
			Value(&vals.endDate),
	))
}

// completeTxForms advances the add flow and applies filters.
func (a *App) completeTxForms() tea.Cmd {
	st := &a.tx

	if st.filterForm != nil && st.filterForm.State == huh.StateCompleted {
		st.filter = *st.filterVals
		st.filterForm = nil
		st.page = 1
		st.cursor = 0
		return a.fetchTransactions()
	}
	if st.filterForm != nil && st.filterForm.State == huh.StateAborted {
		st.filterForm = nil
		return nil
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

	if st.formStage == 1 {
		st.form = nil
		st.loadingCats = true
		return a.fetchCategories(st.formVals.txType)
	}

	vals := *st.formVals
	if fe := validate.Transaction(vals.txType, vals.amount, vals.date, vals.description, time.Now()); fe != nil {
		st.formErr = fe.First()
		st.form = newTxDetailForm(st.formVals, st.categories)
		return st.form.Init()
	}
	if vals.categoryID == "" {
		st.formErr = "select a category"
		st.form = newTxDetailForm(st.formVals, st.categories)
		return st.form.Init()
	}

	st.form = nil
	st.formStage = 0
	st.formErr = ""

	client := a.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
		defer cancel()

		amount, _ := strconv.ParseFloat(vals.amount, 64)
		err := client.CreateTransaction(ctx, model.NewTransaction{
			Type:        vals.txType,
			Amount:      amount,
			Description: vals.description,
			CategoryID:  vals.categoryID,
			Date:        vals.date,
		})
		return actionDoneMsg{tab: 1, success: "Transaction added", err: err}
	}
}

func (a *App) fetchCategories(txType string) tea.Cmd {
	seq := a.nextSeq()
	a.tx.catSeq = seq
	client := a.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
		defer cancel()
		items, err := client.Categories(ctx, txType)
		return categoriesMsg{seq: seq, txType: txType, items: items, err: err}
	}
}

func (a *App) handleCategories(msg categoriesMsg) (tea.Model, tea.Cmd) {
	if msg.seq == a.budgets.catSeq {
		return a.handleBudgetCategories(msg)
	}
	if msg.seq != a.tx.catSeq {
		return a, nil
	}
	a.tx.loadingCats = false
	if msg.err != nil {
		return a, tea.Batch(a.pushToast(errText(msg.err), true), a.syncPrompt())
	}
	a.tx.categories = msg.items
	a.tx.formStage = 2
	a.tx.form = newTxDetailForm(a.tx.formVals, msg.items)
	return a, a.tx.form.Init()
}

func (a *App) handleActionDone(msg actionDoneMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		if conflict := conflictMessage(msg.err); conflict != "" {
			switch msg.tab {
			case 1:
				a.tx.conflict = conflict
			case 2:
				a.budgets.conflict = conflict
			case 3:
				a.savings.conflict = conflict
			}
			return a, a.syncPrompt()
		}
		return a, tea.Batch(a.pushToast(errText(msg.err), true), a.syncPrompt())
	}

	return a, tea.Batch(a.pushToast(msg.success, false), a.fetchTab(msg.tab), a.syncPrompt())
}

func (a *App) renderTransactionsTab(cw int) string {
	t := theme.Active
	st := a.tx

	if st.form != nil || st.filterForm != nil || st.loadingCats {
		var b strings.Builder
		if st.formErr != "" {
			b.WriteString("  " + lipgloss.NewStyle().Foreground(t.Red).Render(st.formErr) + "\n")
		}
		if st.conflict != "" {
			b.WriteString("  " + lipgloss.NewStyle().Foreground(t.Orange).Render(st.conflict) + "\n")
		}
		switch {
		case st.loadingCats:
			b.WriteString("\n  " + a.spinner.View() + " Loading categories…")
		case st.form != nil:
			b.WriteString(st.form.View())
		default:
			b.WriteString(st.filterForm.View())
		}
		return b.String()
	}

	if st.loading && !st.loaded {
		return "\n  " + a.spinner.View() + " Loading transactions…"
	}
	if st.errMsg != "" {
		return "\n  " + lipgloss.NewStyle().Foreground(t.Red).Render(st.errMsg)
	}

	var b strings.Builder

	if st.conflict != "" {
		b.WriteString("  " + lipgloss.NewStyle().Foreground(t.Orange).Render(st.conflict) + "\n")
	}

	filterLine := describeFilter(st.filter)
	if filterLine != "" {
		b.WriteString("  " + lipgloss.NewStyle().Foreground(t.TextDim).Render(filterLine) + "\n")
	}

	if len(st.items) == 0 {
		b.WriteString("\n  " + lipgloss.NewStyle().Foreground(t.TextDim).Render(
			"No transactions. [a]dd one or adjust the [f]ilter."))
		return b.String()
	}

	dateStyle := lipgloss.NewStyle().Foreground(t.TextDim)
	catStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	descStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	selStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Bold(true)

	descW := cw - 44
	if descW < 10 {
		descW = 10
	}

	for i, tx := range st.items {
		marker := "  "
		if i == st.cursor {
			marker = selStyle.Render("▸ ")
		}
		amount := cli.FormatSigned(tx.Amount)
		amountStyle := lipgloss.NewStyle().Foreground(t.Green)
		if tx.Type == model.TxExpense {
			amount = "-" + cli.FormatMoney(tx.Amount)
			amountStyle = lipgloss.NewStyle().Foreground(t.Red)
		}
		fmt.Fprintf(&b, "%s%s  %s  %s %s\n",
			marker,
			dateStyle.Render(cli.FormatDate(tx.Date)),
			catStyle.Render(fmt.Sprintf("%-14s", truncStr(tx.Category, 14))),
			descStyle.Render(fmt.Sprintf("%-*s", descW, truncStr(tx.Description, descW))),
			amountStyle.Render(fmt.Sprintf("%10s", amount)))
	}

	pages := (st.total + st.limit - 1) / st.limit
	if pages > 1 {
		fmt.Fprintf(&b, "\n  %s",
			lipgloss.NewStyle().Foreground(t.TextDim).Render(
				fmt.Sprintf("Page %d/%d · %d total  [ prev  ] next", st.page, pages, st.total)))
	}

	return b.String()
}

func describeFilter(f txFilterVals) string {
	var parts []string
	if f.txType != "" {
		label := "income"
		if f.txType == model.TxExpense {
			label = "expenses"
		}
		parts = append(parts, label)
	}
	if f.categoryName != "" {
		parts = append(parts, "category: "+f.categoryName)
	}
	if f.startDate != "" {
		parts = append(parts, "from "+f.startDate)
	}
	if f.endDate != "" {
		parts = append(parts, "to "+f.endDate)
	}
	if len(parts) == 0 {
		return ""
	}
	return "Filter: " + strings.Join(parts, " · ")
}
