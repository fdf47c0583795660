package cmd

import (
	"fmt"

	"github.com/A1anTm/spendsmart/internal/tui"
	"github.com/A1anTm/spendsmart/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Interactive dashboard",
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(_ *cobra.Command, _ []string) error {
	env, err := newClientEnv()
	if err != nil {
		return err
	}
	defer env.Close()

	// The state store mirrors the theme so the first frame already has
	// the right palette; the config file is the source of truth.
	themeName := env.cfg.Appearance.Theme
	if stored, err := env.state.Theme(); err == nil && stored != "" {
		themeName = stored
	}
	theme.SetActive(themeName)

	// Force TrueColor so all styling produces ANSI codes even when the
	// terminal reports a limited profile.
	lipgloss.SetColorProfile(termenv.TrueColor)

	app := tui.NewApp(env.client, env.store, env.state, env.cfg)
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running dashboard: %w", err)
	}
	return nil
}
