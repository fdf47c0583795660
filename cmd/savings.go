package cmd

import (
	"fmt"
	"strconv"
	"time"

	"github.com/A1anTm/spendsmart/internal/cli"
	"github.com/A1anTm/spendsmart/internal/model"
	"github.com/A1anTm/spendsmart/internal/validate"

	"github.com/spf13/cobra"
)

var (
	flagGoalName   string
	flagGoalDesc   string
	flagGoalTarget string
	flagGoalDue    string
)

var savingsCmd = &cobra.Command{
	Use:   "savings",
	Short: "Work with savings goals",
}

var savingsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List savings goals",
	RunE:  runSavingsList,
}

var savingsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a savings goal",
	RunE:  runSavingsAdd,
}

var savingsDepositCmd = &cobra.Command{
	Use:   "deposit <id> <amount>",
	Short: "Add money to a goal",
	Args:  cobra.ExactArgs(2),
	RunE:  runSavingsDeposit,
}

var savingsRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a savings goal",
	Args:  cobra.ExactArgs(1),
	RunE:  runSavingsRm,
}

func init() {
	savingsAddCmd.Flags().StringVar(&flagGoalName, "name", "", "Goal name")
	savingsAddCmd.Flags().StringVar(&flagGoalDesc, "description", "", "Description")
	savingsAddCmd.Flags().StringVar(&flagGoalTarget, "target", "", "Target amount")
	savingsAddCmd.Flags().StringVar(&flagGoalDue, "due", "", "Due date (YYYY-MM-DD)")

	savingsCmd.AddCommand(savingsListCmd)
	savingsCmd.AddCommand(savingsAddCmd)
	savingsCmd.AddCommand(savingsDepositCmd)
	savingsCmd.AddCommand(savingsRmCmd)
	rootCmd.AddCommand(savingsCmd)
}

func runSavingsList(_ *cobra.Command, _ []string) error {
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

	items, err := env.client.SavingsGoals(ctx)
	if err != nil {
		return friendlyErr(err)
	}

	if len(items) == 0 {
		fmt.Println("\n  No savings goals yet. Create one with `spendsmart savings add`.")
		return nil
	}

	rows := make([][]string, 0, len(items))
	for _, g := range items {
		status := ""
		if g.Complete() {
			status = "complete"
		}
		rows = append(rows, []string{
			g.ID,
			g.Name,
			cli.FormatMoney(g.CurrentAmount),
			cli.FormatMoney(g.TargetAmount),
			cli.FormatPercent(g.ProgressPercent()),
			cli.FormatDate(g.DueDate),
			status,
		})
	}

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"ID", "Name", "Saved", "Target", "Progress", "Due", ""},
		Rows:    rows,
	}))
	return nil
}

func runSavingsAdd(_ *cobra.Command, _ []string) error {
	env, err := newClientEnv()
	if err != nil {
		return err
	}
	defer env.Close()

	if err := env.requireAuth(); err != nil {
		return err
	}

	if fe := validate.SavingsGoal(flagGoalName, flagGoalDesc, flagGoalTarget, flagGoalDue, time.Now()); fe != nil {
		return fmt.Errorf("%s", fe.First())
	}

	ctx, cancel := cmdContext()
	defer cancel()

	target, _ := strconv.ParseFloat(flagGoalTarget, 64)
	if err := env.client.CreateSavingsGoal(ctx, model.NewSavingsGoal{
		Name:         flagGoalName,
		Description:  flagGoalDesc,
		TargetAmount: target,
		DueDate:      flagGoalDue,
	}); err != nil {
		return friendlyErr(err)
	}

	if !flagQuiet {
		fmt.Printf("\n  Goal %q created, target %s by %s.\n",
			flagGoalName, cli.FormatMoney(target), flagGoalDue)
	}
	return nil
}

func runSavingsDeposit(_ *cobra.Command, args []string) error {
	env, err := newClientEnv()
	if err != nil {
		return err
	}
	defer env.Close()

	if err := env.requireAuth(); err != nil {
		return err
	}

	amount, err := strconv.ParseFloat(args[1], 64)
	if err != nil || amount <= 0 {
		return fmt.Errorf("amount must be greater than 0")
	}

	ctx, cancel := cmdContext()
	defer cancel()

	// Completed goals take no more deposits; check before sending.
	goals, err := env.client.SavingsGoals(ctx)
	if err != nil {
		return friendlyErr(err)
	}
	for _, g := range goals {
		if g.ID == args[0] && g.Complete() {
			return fmt.Errorf("goal %q is already completed", g.Name)
		}
	}

	if err := env.client.AddMoney(ctx, args[0], amount); err != nil {
		return friendlyErr(err)
	}

	if !flagQuiet {
		fmt.Printf("\n  Deposited %s.\n", cli.FormatMoney(amount))
	}
	return nil
}

func runSavingsRm(_ *cobra.Command, args []string) error {
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

	if err := env.client.DeleteSavingsGoal(ctx, args[0]); err != nil {
		return friendlyErr(err)
	}

	if !flagQuiet {
		fmt.Println("\n  Goal deleted.")
	}
	return nil
}
