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
	flagTxType     string
	flagTxCategory string
	flagTxFrom     string
	flagTxTo       string
	flagTxPage     int

	flagAddType     string
	flagAddAmount   string
	flagAddDate     string
	flagAddDesc     string
	flagAddCategory string
)

var transactionsCmd = &cobra.Command{
	Use:     "transactions",
	Aliases: []string{"tx"},
	Short:   "Work with the transaction ledger",
}

var txListCmd = &cobra.Command{
	Use:   "list",
	Short: "List transactions",
	RunE:  runTxList,
}

var txAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Record a transaction",
	RunE:  runTxAdd,
}

func init() {
	txListCmd.Flags().StringVar(&flagTxType, "type", "", "Filter by type (expense|income)")
	txListCmd.Flags().StringVar(&flagTxCategory, "category", "", "Filter by category name")
	txListCmd.Flags().StringVar(&flagTxFrom, "from", "", "Start date (YYYY-MM-DD)")
	txListCmd.Flags().StringVar(&flagTxTo, "to", "", "End date (YYYY-MM-DD)")
	txListCmd.Flags().IntVar(&flagTxPage, "page", 1, "Page number")

	txAddCmd.Flags().StringVar(&flagAddType, "type", "expense", "Transaction type (expense|income)")
	txAddCmd.Flags().StringVar(&flagAddAmount, "amount", "", "Amount")
	txAddCmd.Flags().StringVar(&flagAddDate, "date", time.Now().Format("2006-01-02"), "Date (YYYY-MM-DD)")
	txAddCmd.Flags().StringVar(&flagAddDesc, "description", "", "Description")
	txAddCmd.Flags().StringVar(&flagAddCategory, "category", "", "Category name")

	transactionsCmd.AddCommand(txListCmd)
	transactionsCmd.AddCommand(txAddCmd)
	rootCmd.AddCommand(transactionsCmd)
}

// wireType translates the CLI-friendly type names to the backend's.
func wireType(s string) (string, error) {
	switch s {
	case "", "all":
		return "", nil
	case "expense", model.TxExpense:
		return model.TxExpense, nil
	case "income", model.TxIncome:
		return model.TxIncome, nil
	}
	return "", fmt.Errorf("unknown type %q (expense|income)", s)
}

func runTxList(_ *cobra.Command, _ []string) error {
	env, err := newClientEnv()
	if err != nil {
		return err
	}
	defer env.Close()

	if err := env.requireAuth(); err != nil {
		return err
	}

	txType, err := wireType(flagTxType)
	if err != nil {
		return err
	}

	limit := env.cfg.General.PageSize
	if limit <= 0 {
		limit = 20
	}

	ctx, cancel := cmdContext()
	defer cancel()

	items, total, err := env.client.FilterTransactions(ctx, model.TransactionFilter{
		Type:         txType,
		CategoryName: flagTxCategory,
		StartDate:    flagTxFrom,
		EndDate:      flagTxTo,
		Page:         flagTxPage,
		Limit:        limit,
	})
	if err != nil {
		return friendlyErr(err)
	}

	if len(items) == 0 {
		fmt.Println("\n  No transactions for the selected filters.")
		return nil
	}

	rows := make([][]string, 0, len(items))
	for _, tx := range items {
		rows = append(rows, []string{
			cli.FormatDate(tx.Date),
			tx.Category,
			cli.Truncate(tx.Description, 40),
			signedAmount(tx),
		})
	}

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   fmt.Sprintf("Transactions (page %d, %d total)", flagTxPage, total),
		Headers: []string{"Date", "Category", "Description", "Amount"},
		Rows:    rows,
	}))
	return nil
}

func runTxAdd(_ *cobra.Command, _ []string) error {
	env, err := newClientEnv()
	if err != nil {
		return err
	}
	defer env.Close()

	if err := env.requireAuth(); err != nil {
		return err
	}

	txType, err := wireType(flagAddType)
	if err != nil {
		return err
	}
	if txType == "" {
		return fmt.Errorf("--type is required (expense|income)")
	}
	if flagAddCategory == "" {
		return fmt.Errorf("--category is required")
	}

	if fe := validate.Transaction(txType, flagAddAmount, flagAddDate, flagAddDesc, time.Now()); fe != nil {
		return fmt.Errorf("%s", fe.First())
	}

	ctx, cancel := cmdContext()
	defer cancel()

	// Resolve the category name against the backend's list for this type.
	categories, err := env.client.Categories(ctx, txType)
	if err != nil {
		return friendlyErr(err)
	}
	categoryID := ""
	for _, c := range categories {
		if c.Name == flagAddCategory {
			categoryID = c.ID
			break
		}
	}
	if categoryID == "" {
		fmt.Println("\n  Unknown category. Available:")
		for _, c := range categories {
			fmt.Printf("    %s\n", c.Name)
		}
		return fmt.Errorf("category %q not found", flagAddCategory)
	}

	amount, _ := strconv.ParseFloat(flagAddAmount, 64)
	if err := env.client.CreateTransaction(ctx, model.NewTransaction{
		Type:        txType,
		Amount:      amount,
		Description: flagAddDesc,
		CategoryID:  categoryID,
		Date:        flagAddDate,
	}); err != nil {
		return friendlyErr(err)
	}

	if !flagQuiet {
		amountStr := cli.Income("+" + cli.FormatMoney(amount))
		if txType == model.TxExpense {
			amountStr = cli.Expense("-" + cli.FormatMoney(amount))
		}
		fmt.Printf("\n  Recorded %s %s on %s.\n", flagAddType, amountStr, flagAddDate)
	}
	return nil
}
