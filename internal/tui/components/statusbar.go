package components

import (
	"fmt"

	"github.com/A1anTm/spendsmart/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// RenderStatusBar renders the bottom status bar. who is the signed-in
// identity line, empty when signed out.
func RenderStatusBar(width int, who string, refreshing bool) string {
	t := theme.Active

	style := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Width(width)

	left := " [?]help  [q]uit"
	if refreshing {
		left += "  refreshing…"
	}

	right := ""
	if who != "" {
		right = fmt.Sprintf("%s ", who)
	}

	// Pad middle
	padding := width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 0 {
		padding = 0
	}

	bar := left
	for i := 0; i < padding; i++ {
		bar += " "
	}
	bar += right

	return style.Render(bar)
}
