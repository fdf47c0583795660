// Package tui provides the interactive Bubble Tea dashboard for the
// SpendSmart client.
package tui

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/A1anTm/spendsmart/internal/api"
	"github.com/A1anTm/spendsmart/internal/config"
	"github.com/A1anTm/spendsmart/internal/session"
	"github.com/A1anTm/spendsmart/internal/state"
	"github.com/A1anTm/spendsmart/internal/tui/components"
	"github.com/A1anTm/spendsmart/internal/tui/theme"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

const (
	minTerminalWidth = 80
	compactWidth     = 110
	maxContentWidth  = 160
	minContentHeight = 5

	toastDuration = 3 * time.Second
)

// screenPath is the current screen identifier shared with the
// unauthorized interceptor, which runs on request goroutines.
type screenPath struct {
	mu sync.Mutex
	v  string
}

func (p *screenPath) set(v string) {
	p.mu.Lock()
	p.v = v
	p.mu.Unlock()
}

func (p *screenPath) get() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.v
}

// continueDoneMsg reports the outcome of a silent session refresh.
type continueDoneMsg struct{ err error }

// toastTimeoutMsg expires the toast with the given id.
type toastTimeoutMsg struct{ id int }

type toast struct {
	id    int
	text  string
	isErr bool
}

// App is the root Bubble Tea model.
type App struct {
	client *api.Client
	store  *session.Store
	state  *state.Store
	cfg    config.Config
	path   *screenPath

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool

	// Expired-session prompt
	promptVisible bool
	continuing    bool
	continueErr   string

	// Auth screen
	auth authState

	// Toasts
	toasts  []toast
	nextID  int
	fetchID int

	// Per-tab state
	overview overviewState
	tx       txState
	budgets  budgetsState
	savings  savingsState
	profile  profileState

	spinner spinner.Model
}

// NewApp creates the dashboard model. The session store must already be
// hydrated; the unauthorized interceptor is wired here.
func NewApp(client *api.Client, store *session.Store, st *state.Store, cfg config.Config) *App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent)

	path := &screenPath{}
	if store.Snapshot().Authenticated {
		path.set("/dashboard")
	} else {
		path.set("/auth")
	}

	client.OnUnauthorized(func(fr api.FailedResponse) {
		if session.ShouldPromptExpired(fr.Status, fr.SkipPrompt, path.get(), fr.Body) {
			store.ShowExpiredPrompt()
		}
	})

	a := &App{
		client:  client,
		store:   store,
		state:   st,
		cfg:     cfg,
		path:    path,
		spinner: sp,
	}
	a.auth = newAuthState(authModeLogin)
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{a.spinner.Tick}
	if a.store.Snapshot().Authenticated {
		cmds = append(cmds, a.fetchTab(0))
	} else if a.auth.form != nil {
		cmds = append(cmds, a.auth.form.Init())
	}
	return tea.Batch(cmds...)
}

// nextSeq hands out fetch sequence numbers. Responses carrying an older
// number than the tab's current one are stale and dropped.
func (a *App) nextSeq() int {
	a.fetchID++
	return a.fetchID
}

// pushToast queues a transient notification and its expiry timer.
func (a *App) pushToast(text string, isErr bool) tea.Cmd {
	a.nextID++
	id := a.nextID
	a.toasts = append(a.toasts, toast{id: id, text: text, isErr: isErr})
	return tea.Tick(toastDuration, func(time.Time) tea.Msg {
		return toastTimeoutMsg{id: id}
	})
}

// fetchTab issues the load command for a tab index.
func (a *App) fetchTab(idx int) tea.Cmd {
	switch idx {
	case 0:
		return a.fetchOverview()
	case 1:
		return a.fetchTransactions()
	case 2:
		return a.fetchBudgets()
	case 3:
		return a.fetchGoals()
	case 4:
		return a.fetchProfile()
	}
	return nil
}

// syncPrompt reconciles the model with the session store after any
// network message, and re-fetches the active tab when the prompt
// transitions hidden while still signed in.
func (a *App) syncPrompt() tea.Cmd {
	snap := a.store.Snapshot()
	wasVisible := a.promptVisible
	a.promptVisible = snap.PromptVisible

	if !snap.Authenticated {
		a.promptVisible = false
		if a.path.get() != "/auth" {
			a.switchToAuth(authModeLogin, a.continueErr)
			return a.auth.form.Init()
		}
		return nil
	}

	if wasVisible && !snap.PromptVisible {
		return a.fetchTab(a.activeTab)
	}
	return nil
}

func (a *App) switchToAuth(mode int, errMsg string) {
	a.path.set("/auth")
	a.auth = newAuthState(mode)
	a.auth.errMsg = errMsg
}

func (a *App) switchToDashboard() tea.Cmd {
	a.path.set("/dashboard")
	a.activeTab = 0
	return a.fetchTab(0)
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.resizeForms(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		return a.updateKeys(msg)

	case toastTimeoutMsg:
		n := 0
		for _, t := range a.toasts {
			if t.id != msg.id {
				a.toasts[n] = t
				n++
			}
		}
		a.toasts = a.toasts[:n]
		return a, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case authDoneMsg:
		return a.handleAuthDone(msg)

	case continueDoneMsg:
		a.continuing = false
		if msg.err != nil {
			a.continueErr = "Session could not be renewed. Sign in again."
			return a, a.syncPrompt()
		}
		a.continueErr = ""
		return a, a.syncPrompt()

	case summaryMsg:
		return a.handleSummary(msg)
	case txLoadedMsg:
		return a.handleTxLoaded(msg)
	case categoriesMsg:
		return a.handleCategories(msg)
	case budgetsMsg:
		return a.handleBudgets(msg)
	case goalsMsg:
		return a.handleGoals(msg)
	case profileMsg:
		return a.handleProfile(msg)
	case profileSavedMsg:
		return a.handleProfileSaved(msg)
	case pwdDoneMsg:
		return a.handlePwdDone(msg)
	case actionDoneMsg:
		return a.handleActionDone(msg)
	}

	// Forward everything else to whichever form is active (cursor
	// blinks and the like).
	if form, update := a.activeForm(); form != nil {
		f, cmd := form.Update(msg)
		if hf, ok := f.(*huh.Form); ok {
			update(hf)
		}
		return a, cmd
	}

	return a, nil
}

// activeForm returns the currently focused huh form, if any, along with
// a setter writing the updated form back to its slot.
func (a *App) activeForm() (*huh.Form, func(*huh.Form)) {
	if !a.store.Snapshot().Authenticated {
		if a.auth.form != nil {
			return a.auth.form, func(f *huh.Form) { a.auth.form = f }
		}
		return nil, nil
	}
	switch a.activeTab {
	case 1:
		if a.tx.form != nil {
			return a.tx.form, func(f *huh.Form) { a.tx.form = f }
		}
		if a.tx.filterForm != nil {
			return a.tx.filterForm, func(f *huh.Form) { a.tx.filterForm = f }
		}
	case 2:
		if a.budgets.form != nil {
			return a.budgets.form, func(f *huh.Form) { a.budgets.form = f }
		}
	case 3:
		if a.savings.form != nil {
			return a.savings.form, func(f *huh.Form) { a.savings.form = f }
		}
		if a.savings.depositForm != nil {
			return a.savings.depositForm, func(f *huh.Form) { a.savings.depositForm = f }
		}
	case 4:
		if a.profile.editForm != nil {
			return a.profile.editForm, func(f *huh.Form) { a.profile.editForm = f }
		}
		if a.profile.pwdForm != nil {
			return a.profile.pwdForm, func(f *huh.Form) { a.profile.pwdForm = f }
		}
	}
	return nil, nil
}

func (a *App) resizeForms(w, h int) {
	if form, update := a.activeForm(); form != nil {
		update(form.WithWidth(w).WithHeight(h))
	}
}

func (a *App) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" {
		return a, tea.Quit
	}

	snap := a.store.Snapshot()

	// The expired-session prompt blocks everything else.
	if a.promptVisible && snap.Authenticated {
		switch key {
		case "enter", "c":
			if a.continuing {
				return a, nil
			}
			a.continuing = true
			return a, a.continueCmd()
		case "esc", "q":
			a.store.Logout()
			a.switchToAuth(authModeLogin, "")
			return a, a.auth.form.Init()
		}
		return a, nil
	}

	if !snap.Authenticated {
		return a.updateAuthKeys(msg)
	}

	// A focused form swallows keys, except esc which cancels it.
	if form, update := a.activeForm(); form != nil {
		if key == "esc" {
			a.dismissActiveForm()
			return a, nil
		}
		f, cmd := form.Update(msg)
		if hf, ok := f.(*huh.Form); ok {
			update(hf)
		}
		return a, tea.Batch(cmd, a.completeActiveForm())
	}

	if key == "?" {
		a.showHelp = !a.showHelp
		return a, nil
	}
	if a.showHelp {
		a.showHelp = false
		return a, nil
	}

	// Per-tab bindings get first refusal.
	if model, cmd, handled := a.updateTabKeys(key); handled {
		return model, cmd
	}

	switch key {
	case "q":
		return a, tea.Quit
	case "r":
		return a, a.fetchTab(a.activeTab)
	case "T":
		next := theme.Next(theme.Active.Name)
		theme.SetActive(next.Name)
		a.cfg.Appearance.Theme = next.Name
		_ = config.Save(a.cfg)
		if a.state != nil {
			_ = a.state.SetTheme(next.Name)
		}
		return a, nil
	case "left":
		a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
		return a, a.fetchTab(a.activeTab)
	case "right":
		a.activeTab = (a.activeTab + 1) % len(components.Tabs)
		return a, a.fetchTab(a.activeTab)
	}

	if len(key) == 1 {
		if idx := components.TabIdxByKey(rune(key[0])); idx >= 0 {
			a.activeTab = idx
			return a, a.fetchTab(idx)
		}
	}

	return a, nil
}

// updateTabKeys dispatches tab-local keybindings.
func (a *App) updateTabKeys(key string) (tea.Model, tea.Cmd, bool) {
	switch a.activeTab {
	case 1:
		return a.updateTxKeys(key)
	case 2:
		return a.updateBudgetKeys(key)
	case 3:
		return a.updateSavingsKeys(key)
	case 4:
		return a.updateProfileKeys(key)
	}
	return a, nil, false
}

// dismissActiveForm cancels whichever form is focused.
func (a *App) dismissActiveForm() {
	switch a.activeTab {
	case 1:
		a.tx.form = nil
		a.tx.filterForm = nil
		a.tx.conflict = ""
	case 2:
		a.budgets.form = nil
		a.budgets.conflict = ""
	case 3:
		a.savings.form = nil
		a.savings.depositForm = nil
		a.savings.conflict = ""
	case 4:
		a.profile.editForm = nil
		a.profile.pwdForm = nil
		a.profile.formErr = ""
	}
}

// completeActiveForm checks the focused form for completion and fires
// the resulting request.
func (a *App) completeActiveForm() tea.Cmd {
	switch a.activeTab {
	case 1:
		return a.completeTxForms()
	case 2:
		return a.completeBudgetForm()
	case 3:
		return a.completeSavingsForms()
	case 4:
		return a.completeProfileForms()
	}
	return nil
}

func (a *App) continueCmd() tea.Cmd {
	store := a.store
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
		defer cancel()
		return continueDoneMsg{err: store.ContinueSession(ctx)}
	}
}

func (a *App) contentWidth() int {
	cw := a.width
	if cw > maxContentWidth {
		cw = maxContentWidth
	}
	return cw
}

func (a *App) isCompactLayout() bool {
	return a.contentWidth() < compactWidth
}

// View implements tea.Model.
func (a *App) View() string {
	if a.width == 0 {
		return ""
	}

	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}

	snap := a.store.Snapshot()

	if !snap.Authenticated {
		return a.viewAuth()
	}

	if a.promptVisible {
		body := "Your session has expired."
		if a.continuing {
			body = a.spinner.View() + " Renewing session…"
		} else if a.continueErr != "" {
			body = a.continueErr
		}
		return components.RenderModal(
			"Session expired",
			body,
			"[enter] continue session  [esc] sign out",
			a.width, a.height,
		)
	}

	if a.showHelp {
		return a.viewHelp()
	}

	return a.viewMain(snap)
}

func (a *App) viewTooNarrow() string {
	msg := "\n  Terminal too narrow.\n\n  spendsmart needs at least 80 columns.\n"
	return padHeight(truncateHeight(msg, a.height), a.height)
}

func (a *App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Padding(1, 3)

	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.Cyan).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim)

	bindings := []struct{ key, desc string }{
		{"o t b s p", "Jump to tab"},
		{"← →", "Previous / Next tab"},
		{"j k", "Navigate lists"},
		{"a", "Add (transaction, budget, goal)"},
		{"f", "Filter transactions"},
		{"[ ]", "Previous / Next page"},
		{"x", "Toggle budget active"},
		{"m", "Deposit into goal"},
		{"d", "Delete selected"},
		{"e / w", "Edit profile / Change password"},
		{"r", "Refresh tab"},
		{"T", "Cycle theme"},
		{"q", "Quit"},
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n\n")
	for _, bind := range bindings {
		b.WriteString("  ")
		b.WriteString(keyStyle.Render(padRight(bind.key, 10)))
		b.WriteString("  ")
		b.WriteString(descStyle.Render(bind.desc))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	card := cardStyle.Render(b.String())
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card)
}

func (a *App) viewMain(snap session.Snapshot) string {
	w := a.width
	cw := a.contentWidth()
	h := a.height

	header := components.RenderTabBar(a.activeTab, w)

	if len(a.toasts) > 0 {
		var pills []string
		for _, t := range a.toasts {
			pills = append(pills, components.RenderToast(t.text, t.isErr))
		}
		header += "\n" + lipgloss.JoinHorizontal(lipgloss.Top, pills...)
	}

	who := ""
	if snap.Claims != nil {
		who = snap.Claims.Email
	}
	statusBar := components.RenderStatusBar(w, who, snap.Refreshing)

	headerH := lipgloss.Height(header)
	statusH := lipgloss.Height(statusBar)
	contentH := h - headerH - statusH
	if contentH < minContentHeight {
		contentH = minContentHeight
	}

	var content string
	switch a.activeTab {
	case 0:
		content = a.renderOverviewTab(cw)
	case 1:
		content = a.renderTransactionsTab(cw)
	case 2:
		content = a.renderBudgetsTab(cw)
	case 3:
		content = a.renderSavingsTab(cw)
	case 4:
		content = a.renderProfileTab(cw)
	}

	content = padHeight(truncateHeight(content, contentH), contentH)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
}

// ─── Helpers ────────────────────────────────────────────────────

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}

func padRight(s string, w int) string {
	// Pad by display width; keys like "← →" are wider in bytes than cells.
	sw := lipgloss.Width(s)
	if sw >= w {
		return s
	}
	return s + strings.Repeat(" ", w-sw)
}

func truncStr(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}

// conflictMessage extracts the server message from a 409, or "" when
// the error is anything else.
func conflictMessage(err error) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) && apiErr.Status == 409 {
		if apiErr.Message != "" {
			return apiErr.Message
		}
		return "Conflict with existing data"
	}
	return ""
}

func errText(err error) string {
	if errors.Is(err, api.ErrUnreachable) {
		return "Cannot reach the server"
	}
	var apiErr *api.Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return err.Error()
}
