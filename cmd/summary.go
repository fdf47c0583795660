package cmd

import (
	"fmt"

	"github.com/A1anTm/spendsmart/internal/cli"
	"github.com/A1anTm/spendsmart/internal/model"

	"github.com/spf13/cobra"
)

var flagMonth string

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Monthly dashboard summary",
	RunE:  runSummaryCmd,
}

func init() {
	summaryCmd.Flags().StringVar(&flagMonth, "month", "", "Month to summarize (YYYY-MM, default current)")
	rootCmd.AddCommand(summaryCmd)
}

func runSummaryCmd(_ *cobra.Command, _ []string) error {
	env, err := newClientEnv()
	if err != nil {
		return err
	}
	defer env.Close()

	if err := env.requireAuth(); err != nil {
		return err
	}

	month := flagMonth
	if month == "" {
		month = cli.CurrentMonth()
	}

	ctx, cancel := cmdContext()
	defer cancel()

	s, err := env.client.Summary(ctx, month)
	if err != nil {
		return friendlyErr(err)
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("SPENDSMART  %s", month)))
	fmt.Println()

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Metric", "Amount"},
		Rows: [][]string{
			{"Total balance", cli.FormatMoney(s.TotalBalance)},
			{"Income this month", cli.FormatMoney(s.MonthlyIncome)},
			{"Expenses this month", cli.FormatMoney(s.MonthlyExpense)},
			{"Savings this month", cli.FormatMoney(s.MonthlySavings)},
			{"Total saved", cli.FormatMoney(s.TotalSaved)},
		},
	}))

	if len(s.RecentTransactions) > 0 {
		rows := make([][]string, 0, len(s.RecentTransactions))
		for _, tx := range s.RecentTransactions {
			rows = append(rows, []string{
				cli.FormatDate(tx.Date),
				tx.Category,
				cli.Truncate(tx.Description, 40),
				signedAmount(tx),
			})
		}
		fmt.Println()
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   "Recent Transactions",
			Headers: []string{"Date", "Category", "Description", "Amount"},
			Rows:    rows,
		}))
	}

	if s.ClosestGoal.Active() {
		g := s.ClosestGoal
		pct := 0.0
		if g.TargetAmount > 0 {
			pct = g.CurrentAmount / g.TargetAmount * 100
		}
		fmt.Printf("\n  Closest goal: %s  %s\n  %s\n",
			g.Name,
			cli.Muted(fmt.Sprintf("%s of %s", cli.FormatMoney(g.CurrentAmount), cli.FormatMoney(g.TargetAmount))),
			cli.RenderProgressBar(pct, 40))
	}

	return nil
}

func signedAmount(tx model.Transaction) string {
	if tx.Type == model.TxExpense {
		return "-" + cli.FormatMoney(tx.Amount)
	}
	return "+" + cli.FormatMoney(tx.Amount)
}
