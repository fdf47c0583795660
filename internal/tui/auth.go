package tui

import (
	"context"
	"strings"
	"time"

	"github.com/A1anTm/spendsmart/internal/tui/theme"
	"github.com/A1anTm/spendsmart/internal/validate"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

const (
	authModeLogin = iota
	authModeRegister
)

// authDoneMsg reports a login or register round trip.
type authDoneMsg struct {
	token string
	err   error
}

type authValues struct {
	fullName string
	email    string
	password string
	confirm  string
}

type authState struct {
	mode   int
	form   *huh.Form
	vals   *authValues
	errMsg string
	busy   bool
}

func newAuthState(mode int) authState {
	vals := &authValues{}
	return authState{
		mode: mode,
		vals: vals,
		form: newAuthForm(mode, vals),
	}
}

func newAuthForm(mode int, vals *authValues) *huh.Form {
	var fields []huh.Field

	if mode == authModeRegister {
		fields = append(fields, huh.NewInput().
			Title("Full name").
			Value(&vals.fullName))
	}

	fields = append(fields,
		huh.NewInput().
			Title("Email").
			Value(&vals.email),
		huh.NewInput().
			Title("Password").
			EchoMode(huh.EchoModePassword).
			Value(&vals.password),
	)

	if mode == authModeRegister {
		fields = append(fields, huh.NewInput().
			Title("Confirm password").
			EchoMode(huh.EchoModePassword).
			Value(&vals.confirm))
	}

	return huh.NewForm(huh.NewGroup(fields...))
}

func (a *App) updateAuthKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	// Toggle between sign-in and sign-up.
	if key == "ctrl+r" {
		mode := authModeRegister
		if a.auth.mode == authModeRegister {
			mode = authModeLogin
		}
		a.auth = newAuthState(mode)
		return a, a.auth.form.Init()
	}

	if a.auth.busy {
		return a, nil
	}

	form, cmd := a.auth.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.auth.form = f
	}

	if a.auth.form.State == huh.StateCompleted {
		return a, tea.Batch(cmd, a.submitAuth())
	}
	if a.auth.form.State == huh.StateAborted {
		return a, tea.Quit
	}

	return a, cmd
}

// submitAuth validates the form locally, then dispatches the request.
// Validation failures re-open the form with the message shown.
func (a *App) submitAuth() tea.Cmd {
	vals := *a.auth.vals

	if a.auth.mode == authModeRegister {
		if fe := validate.Register(vals.fullName, vals.email, vals.password, vals.confirm); fe != nil {
			a.auth = newAuthState(authModeRegister)
			*a.auth.vals = vals
			a.auth.errMsg = fe.First()
			return a.auth.form.Init()
		}
	} else {
		if err := validate.Email(vals.email); err != nil {
			a.auth = newAuthState(authModeLogin)
			*a.auth.vals = vals
			a.auth.errMsg = err.Error()
			return a.auth.form.Init()
		}
		if vals.password == "" {
			a.auth = newAuthState(authModeLogin)
			*a.auth.vals = vals
			a.auth.errMsg = "password is required"
			return a.auth.form.Init()
		}
	}

	a.auth.busy = true
	client := a.client
	mode := a.auth.mode
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
		defer cancel()

		if mode == authModeRegister {
			token, err := client.Register(ctx, vals.fullName, vals.email, vals.password)
			return authDoneMsg{token: token, err: err}
		}
		token, err := client.Login(ctx, vals.email, vals.password)
		return authDoneMsg{token: token, err: err}
	}
}

func (a *App) handleAuthDone(msg authDoneMsg) (tea.Model, tea.Cmd) {
	mode := a.auth.mode
	vals := *a.auth.vals
	a.auth.busy = false

	if msg.err != nil {
		a.auth = newAuthState(mode)
		*a.auth.vals = vals
		a.auth.vals.password = ""
		a.auth.vals.confirm = ""
		a.auth.errMsg = errText(msg.err)
		return a, a.auth.form.Init()
	}

	a.store.Login(msg.token)
	return a, a.switchToDashboard()
}

func (a *App) viewAuth() string {
	t := theme.Active

	title := "◈ SpendSmart · Sign in"
	hint := "[ctrl+r] create an account  [esc] quit"
	if a.auth.mode == authModeRegister {
		title = "◈ SpendSmart · Create account"
		hint = "[ctrl+r] back to sign in  [esc] quit"
	}

	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Bold(true)
	errStyle := lipgloss.NewStyle().Foreground(t.Red)
	hintStyle := lipgloss.NewStyle().Foreground(t.TextDim)

	var b strings.Builder
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n\n")
	if a.auth.errMsg != "" {
		b.WriteString(errStyle.Render(a.auth.errMsg))
		b.WriteString("\n\n")
	}
	if a.auth.busy {
		b.WriteString(a.spinner.View())
		b.WriteString(" Contacting server…")
	} else if a.auth.form != nil {
		b.WriteString(a.auth.form.View())
	}
	b.WriteString("\n")
	b.WriteString(hintStyle.Render(hint))

	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Padding(1, 3).
		Render(b.String())

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card)
}
