package cmd

import (
	"fmt"

	"github.com/A1anTm/spendsmart/internal/cli"
	"github.com/A1anTm/spendsmart/internal/model"
	"github.com/A1anTm/spendsmart/internal/validate"

	"github.com/spf13/cobra"
)

var (
	flagBudgetCategory  string
	flagBudgetMonth     string
	flagBudgetLimit     string
	flagBudgetThreshold string
)

var budgetsCmd = &cobra.Command{
	Use:   "budgets",
	Short: "Work with monthly category budgets",
}

var budgetsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List budgets with usage",
	RunE:  runBudgetsList,
}

var budgetsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a budget",
	RunE:  runBudgetsAdd,
}

var budgetsToggleCmd = &cobra.Command{
	Use:   "toggle <id>",
	Short: "Flip a budget's active flag",
	Args:  cobra.ExactArgs(1),
	RunE:  runBudgetsToggle,
}

var budgetsRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a budget",
	Args:  cobra.ExactArgs(1),
	RunE:  runBudgetsRm,
}

func init() {
	budgetsAddCmd.Flags().StringVar(&flagBudgetCategory, "category", "", "Expense category name")
	budgetsAddCmd.Flags().StringVar(&flagBudgetMonth, "month", cli.CurrentMonth(), "Month (YYYY-MM)")
	budgetsAddCmd.Flags().StringVar(&flagBudgetLimit, "limit", "", "Spending limit")
	budgetsAddCmd.Flags().StringVar(&flagBudgetThreshold, "threshold", "80", "Alert threshold percent (0-100)")

	budgetsCmd.AddCommand(budgetsListCmd)
	budgetsCmd.AddCommand(budgetsAddCmd)
	budgetsCmd.AddCommand(budgetsToggleCmd)
	budgetsCmd.AddCommand(budgetsRmCmd)
	rootCmd.AddCommand(budgetsCmd)
}

func runBudgetsList(_ *cobra.Command, _ []string) error {
	env, err := newClientEnv()
	if err != nil {
		return err
	}
	defer env.Close()

	if err := env.requireAuth(); err != nil {
		return err
	}

	ctx, cancel := cmdContext()
	defer cancel()

	items, err := env.client.Budgets(ctx)
	if err != nil {
		return friendlyErr(err)
	}

	if len(items) == 0 {
		fmt.Println("\n  No budgets yet. Create one with `spendsmart budgets add`.")
		return nil
	}

	rows := make([][]string, 0, len(items))
	for _, b := range items {
		status := "paused"
		if b.IsActive {
			status = "active"
		}
		alert := ""
		if b.Alert {
			alert = "ALERT"
		}
		rows = append(rows, []string{
			b.ID,
			b.Category,
			b.Month,
			cli.FormatMoney(b.Spent),
			cli.FormatMoney(b.Limit),
			cli.FormatPercent(b.PercentUsed),
			status,
			alert,
		})
	}

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"ID", "Category", "Month", "Spent", "Limit", "Used", "Status", ""},
		Rows:    rows,
	}))

	alerts := 0
	for _, b := range items {
		if b.Alert {
			alerts++
		}
	}
	if alerts > 0 {
		fmt.Println(cli.Warn(fmt.Sprintf("  %d budget(s) over alert threshold", alerts)))
	}
	return nil
}

func runBudgetsAdd(_ *cobra.Command, _ []string) error {
	env, err := newClientEnv()
	if err != nil {
		return err
	}
	defer env.Close()

	if err := env.requireAuth(); err != nil {
		return err
	}

	if flagBudgetCategory == "" {
		return fmt.Errorf("--category is required")
	}

	ctx, cancel := cmdContext()
	defer cancel()

	categories, err := env.client.Categories(ctx, model.TxExpense)
	if err != nil {
		return friendlyErr(err)
	}
	categoryID := ""
	for _, c := range categories {
		if c.Name == flagBudgetCategory {
			categoryID = c.ID
			break
		}
	}
	if categoryID == "" {
		return fmt.Errorf("category %q not found", flagBudgetCategory)
	}

	limit, threshold, err := validate.Budget(categoryID, flagBudgetMonth, flagBudgetLimit, flagBudgetThreshold)
	if err != nil {
		return err
	}

	if err := env.client.CreateBudget(ctx, model.NewBudget{
		CategoryID: categoryID,
		Month:      flagBudgetMonth,
		Limit:      limit,
		Threshold:  threshold,
	}); err != nil {
		return friendlyErr(err)
	}

	if !flagQuiet {
		fmt.Printf("\n  Budget created: %s for %s, limit %s.\n",
			flagBudgetCategory, flagBudgetMonth, cli.FormatMoney(limit))
	}
	return nil
}

func runBudgetsToggle(_ *cobra.Command, args []string) error {
	env, err := newClientEnv()
	if err != nil {
		return err
	}
	defer env.Close()

	if err := env.requireAuth(); err != nil {
		return err
	}

	ctx, cancel := cmdContext()
	defer cancel()

	if err := env.client.ToggleBudget(ctx, args[0]); err != nil {
		return friendlyErr(err)
	}

	if !flagQuiet {
		fmt.Println("\n  Budget toggled.")
	}
	return nil
}

func runBudgetsRm(_ *cobra.Command, args []string) error {
	env, err := newClientEnv()
	if err != nil {
		return err
	}
	defer env.Close()

	if err := env.requireAuth(); err != nil {
		return err
	}

	ctx, cancel := cmdContext()
	defer cancel()

	if err := env.client.DeleteBudget(ctx, args[0]); err != nil {
		return friendlyErr(err)
	}

	if !flagQuiet {
		fmt.Println("\n  Budget deleted.")
	}
	return nil
}
