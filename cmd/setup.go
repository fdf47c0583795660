package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/A1anTm/spendsmart/internal/config"

	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	reader := bufio.NewReader(os.Stdin)

	// Load existing config or defaults
	cfg, _ := config.Load()

	fmt.Println()
	fmt.Println("  Welcome to spendsmart!")
	fmt.Println()

	// 1. Backend origin
	fmt.Println("  1. Backend origin")
	fmt.Printf("     Current: %s\n", cfg.API.BaseURL)
	fmt.Print("     > ")
	origin, _ := reader.ReadString('\n')
	origin = strings.TrimSpace(origin)
	if origin != "" {
		cfg.API.BaseURL = strings.TrimRight(origin, "/")
	}
	fmt.Println()

	// 2. Page size
	fmt.Println("  2. Transactions per page")
	fmt.Println("     (1) 10")
	fmt.Println("     (2) 20 [default]")
	fmt.Println("     (3) 50")
	fmt.Print("     > ")
	choice, _ := reader.ReadString('\n')
	switch strings.TrimSpace(choice) {
	case "1":
		cfg.General.PageSize = 10
	case "3":
		cfg.General.PageSize = 50
	default:
		cfg.General.PageSize = 20
	}
	fmt.Println()

	// 3. Theme
	fmt.Println("  3. Color theme")
	fmt.Println("     (1) Flexoki Dark [default]")
	fmt.Println("     (2) Catppuccin Mocha")
	fmt.Println("     (3) Tokyo Night")
	fmt.Println("     (4) Terminal (ANSI 16)")
	fmt.Print("     > ")
	themeChoice, _ := reader.ReadString('\n')
	switch strings.TrimSpace(themeChoice) {
	case "2":
		cfg.Appearance.Theme = "catppuccin-mocha"
	case "3":
		cfg.Appearance.Theme = "tokyo-night"
	case "4":
		cfg.Appearance.Theme = "terminal"
	default:
		cfg.Appearance.Theme = "flexoki-dark"
	}

	// Save
	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println()
	fmt.Printf("  Saved to %s\n", config.Path())
	fmt.Println("  Run `spendsmart setup` anytime to reconfigure.")
	fmt.Println()

	return nil
}
