package components

import (
	"github.com/A1anTm/spendsmart/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// RenderToast renders a transient notification pill. isErr switches the
// accent to the error color.
func RenderToast(msg string, isErr bool) string {
	t := theme.Active

	border := t.Accent
	fg := t.TextPrimary
	if isErr {
		border = t.Red
		fg = t.Red
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Foreground(fg).
		Padding(0, 1).
		Render(msg)
}

// RenderModal renders a centered blocking dialog over a w x h area.
func RenderModal(title, body, hint string, w, h int) string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)

	titleStyle := lipgloss.NewStyle().
		Foreground(t.AccentBright).
		Background(t.Surface).
		Bold(true)

	bodyStyle := lipgloss.NewStyle().
		Foreground(t.TextPrimary).
		Background(t.Surface)

	hintStyle := lipgloss.NewStyle().
		Foreground(t.TextDim).
		Background(t.Surface)

	content := titleStyle.Render(title) + "\n\n" + bodyStyle.Render(body)
	if hint != "" {
		content += "\n\n" + hintStyle.Render(hint)
	}

	card := cardStyle.Render(content)

	return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, card,
		lipgloss.WithWhitespaceBackground(t.Background))
}
