package tui

import (
	"context"
	"fmt"
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

// profileMsg carries the profile fetch result.
type profileMsg struct {
	seq  int
	data model.UserProfile
	err  error
}

// profileSavedMsg reports a profile update round trip.
type profileSavedMsg struct {
	data model.UserProfile
	err  error
}

// pwdDoneMsg reports a change-password round trip.
type pwdDoneMsg struct {
	message string
	err     error
}

type profileFormVals struct {
	fullName    string
	phoneNumber string
	country     string
	birthdate   string
	bio         string
	socialURLs  []string
	newProvider string
	newURL      string
}

type pwdFormVals struct {
	current string
	next    string
	confirm string
}

type profileState struct {
	seq     int
	loading bool
	loaded  bool
	data    model.UserProfile
	errMsg  string

	editForm *huh.Form
	editVals *profileFormVals
	formErr  string

	pwdForm *huh.Form
	pwdVals *pwdFormVals

	saving bool
}

func (a *App) fetchProfile() tea.Cmd {
	seq := a.nextSeq()
	a.profile.seq = seq
	a.profile.loading = true
	a.profile.errMsg = ""

	client := a.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
		defer cancel()
		data, err := client.Profile(ctx)
		return profileMsg{seq: seq, data: data, err: err}
	}
}

func (a *App) handleProfile(msg profileMsg) (tea.Model, tea.Cmd) {
	if msg.seq != a.profile.seq {
		return a, nil
	}
	a.profile.loading = false
	if msg.err != nil {
		a.profile.errMsg = errText(msg.err)
		return a, a.syncPrompt()
	}
	a.profile.loaded = true
	a.profile.data = msg.data
	return a, a.syncPrompt()
}

func (a *App) handleProfileSaved(msg profileSavedMsg) (tea.Model, tea.Cmd) {
	a.profile.saving = false
	if msg.err != nil {
		a.profile.formErr = errText(msg.err)
		a.openProfileEditor()
		return a, tea.Batch(a.profile.editForm.Init(), a.syncPrompt())
	}
	a.profile.data = msg.data
	return a, tea.Batch(a.pushToast("Profile updated", false), a.syncPrompt())
}

func (a *App) handlePwdDone(msg pwdDoneMsg) (tea.Model, tea.Cmd) {
	a.profile.saving = false
	if msg.err != nil {
		// A 401 here is "wrong current password"; the request opted out
		// of the expiry prompt, so the message surfaces inline.
		a.profile.formErr = errText(msg.err)
		a.openPwdForm()
		return a, a.profile.pwdForm.Init()
	}
	text := msg.message
	if text == "" {
		text = "Password changed"
	}
	return a, a.pushToast(text, false)
}

func (a *App) updateProfileKeys(key string) (tea.Model, tea.Cmd, bool) {
	switch key {
	case "e":
		if !a.profile.loaded {
			return a, nil, true
		}
		a.profile.formErr = ""
		a.openProfileEditor()
		return a, a.profile.editForm.Init(), true
	case "w":
		a.profile.formErr = ""
		a.openPwdForm()
		return a, a.profile.pwdForm.Init(), true
	}
	return a, nil, false
}

func (a *App) openProfileEditor() {
	p := a.profile.data
	vals := &profileFormVals{
		fullName:    p.FullName,
		phoneNumber: p.PhoneNumber,
		country:     p.Country,
		birthdate:   p.Birthdate,
		bio:         p.Bio,
	}
	for _, sc := range p.SocialAccounts {
		vals.socialURLs = append(vals.socialURLs, sc.AccountURL)
	}
	a.profile.editVals = vals

	countryOpts := make([]huh.Option[string], 0, len(model.Countries)+1)
	countryOpts = append(countryOpts, huh.NewOption("(none)", ""))
	for _, c := range model.Countries {
		countryOpts = append(countryOpts, huh.NewOption(c, c))
	}

	fields := []huh.Field{
		huh.NewInput().Title("Full name").Value(&vals.fullName),
		huh.NewInput().Title("Phone").Value(&vals.phoneNumber),
		huh.NewSelect[string]().Title("Country").Options(countryOpts...).Value(&vals.country),
		huh.NewInput().Title("Birthdate (YYYY-MM-DD)").Value(&vals.birthdate),
		huh.NewInput().Title("Bio").Value(&vals.bio),
	}
	for i := range vals.socialURLs {
		fields = append(fields, huh.NewInput().
			Title(p.SocialAccounts[i].Provider+" URL").
			Value(&vals.socialURLs[i]))
	}
	fields = append(fields,
		huh.NewInput().Title("New social provider").Value(&vals.newProvider),
		huh.NewInput().Title("New social URL").Value(&vals.newURL),
	)

	a.profile.editForm = huh.NewForm(huh.NewGroup(fields...))
}

func (a *App) openPwdForm() {
	vals := &pwdFormVals{}
	a.profile.pwdVals = vals
	a.profile.pwdForm = huh.NewForm(huh.NewGroup(
		huh.NewInput().Title("Current password").EchoMode(huh.EchoModePassword).Value(&vals.current),
		huh.NewInput().Title("New password").EchoMode(huh.EchoModePassword).Value(&vals.next),
		huh.NewInput().Title("Confirm new password").EchoMode(huh.EchoModePassword).Value(&vals.confirm),
	))
}

func (a *App) completeProfileForms() tea.Cmd {
	st := &a.profile

	if st.pwdForm != nil {
		if st.pwdForm.State == huh.StateAborted {
			st.pwdForm = nil
			return nil
		}
		if st.pwdForm.State != huh.StateCompleted {
			return nil
		}

		vals := *st.pwdVals
		st.pwdForm = nil

		if fe := validate.ChangePassword(vals.current, vals.next, vals.confirm); fe != nil {
			st.formErr = fe.First()
			a.openPwdForm()
			return st.pwdForm.Init()
		}

		st.formErr = ""
		st.saving = true
		client := a.client
		return func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
			defer cancel()
			message, err := client.ChangePassword(ctx, vals.current, vals.next)
			return pwdDoneMsg{message: message, err: err}
		}
	}

	if st.editForm == nil {
		return nil
	}
	if st.editForm.State == huh.StateAborted {
		st.editForm = nil
		return nil
	}
	if st.editForm.State != huh.StateCompleted {
		return nil
	}

	vals := *st.editVals
	st.editForm = nil

	updated := st.data
	updated.FullName = strings.TrimSpace(vals.fullName)
	updated.PhoneNumber = strings.TrimSpace(vals.phoneNumber)
	updated.Country = vals.country
	updated.Birthdate = strings.TrimSpace(vals.birthdate)
	updated.Bio = vals.bio

	var socials []model.SocialAccount
	for i, sc := range st.data.SocialAccounts {
		url := strings.TrimSpace(vals.socialURLs[i])
		if url == "" {
			continue // cleared URL removes the account
		}
		socials = append(socials, model.SocialAccount{Provider: sc.Provider, AccountURL: url})
	}
	if p, u := strings.TrimSpace(vals.newProvider), strings.TrimSpace(vals.newURL); p != "" && u != "" {
		socials = append(socials, model.SocialAccount{Provider: p, AccountURL: u})
	}
	updated.SocialAccounts = socials

	if err := validate.Profile(updated); err != nil {
		st.formErr = err.Error()
		a.openProfileEditor()
		return st.editForm.Init()
	}

	st.formErr = ""
	st.saving = true
	client := a.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
		defer cancel()
		data, err := client.UpdateProfile(ctx, updated)
		return profileSavedMsg{data: data, err: err}
	}
}

func (a *App) renderProfileTab(cw int) string {
	t := theme.Active
	st := a.profile

	if st.editForm != nil || st.pwdForm != nil {
		var b strings.Builder
		if st.formErr != "" {
			b.WriteString("  " + lipgloss.NewStyle().Foreground(t.Red).Render(st.formErr) + "\n")
		}
		if st.editForm != nil {
			b.WriteString(st.editForm.View())
		} else {
			b.WriteString(st.pwdForm.View())
		}
		return b.String()
	}

	if st.saving {
		return "\n  " + a.spinner.View() + " Saving…"
	}
	if st.loading && !st.loaded {
		return "\n  " + a.spinner.View() + " Loading profile…"
	}
	if st.errMsg != "" {
		return "\n  " + lipgloss.NewStyle().Foreground(t.Red).Render(st.errMsg)
	}
	if !st.loaded {
		return ""
	}

	p := st.data
	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim)

	row := func(label, value string) string {
		if value == "" {
			value = dimStyle.Render("—")
		} else {
			value = valueStyle.Render(value)
		}
		return fmt.Sprintf("  %s %s\n", labelStyle.Render(fmt.Sprintf("%-12s", label)), value)
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(row("Name", p.FullName))
	b.WriteString(row("Phone", p.PhoneNumber))
	b.WriteString(row("Country", p.Country))
	b.WriteString(row("Birthdate", cli.FormatDate(p.Birthdate)))
	b.WriteString(row("Bio", truncStr(p.Bio, cw-16)))
	for _, sc := range p.SocialAccounts {
		b.WriteString(row(sc.Provider, sc.AccountURL))
	}
	b.WriteString("\n  " + dimStyle.Render("[e]dit profile  [w]change password  [T]heme: "+theme.Active.Name))
	return b.String()
}
