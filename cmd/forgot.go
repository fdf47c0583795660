package cmd

import (
	"bufio"
	"fmt"
	"os"

	"github.com/A1anTm/spendsmart/internal/validate"

	"github.com/spf13/cobra"
)

var forgotCmd = &cobra.Command{
	Use:   "forgot-password [email]",
	Short: "Request a password-reset code",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runForgot,
}

var resetCmd = &cobra.Command{
	Use:   "reset-password",
	Short: "Redeem a reset code for a new password",
	RunE:  runReset,
}

func init() {
	rootCmd.AddCommand(forgotCmd)
	rootCmd.AddCommand(resetCmd)
}

func runForgot(_ *cobra.Command, args []string) error {
	env, err := newClientEnv()
	if err != nil {
		return err
	}
	defer env.Close()

	email := ""
	if len(args) > 0 {
		email = args[0]
	}
	if email == "" {
		email = prompt(bufio.NewReader(os.Stdin), "Email")
	}
	if err := validate.Email(email); err != nil {
		return err
	}

	ctx, cancel := cmdContext()
	defer cancel()

	if err := env.client.ForgotPassword(ctx, email); err != nil {
		return friendlyErr(err)
	}

	fmt.Println("\n  Check your inbox for the reset code, then run `spendsmart reset-password`.")
	return nil
}

func runReset(_ *cobra.Command, _ []string) error {
	env, err := newClientEnv()
	if err != nil {
		return err
	}
	defer env.Close()

	reader := bufio.NewReader(os.Stdin)

	code := prompt(reader, "Reset code")
	if code == "" {
		return fmt.Errorf("reset code is required")
	}

	password := prompt(reader, "New password")
	if err := validate.Password(password); err != nil {
		return err
	}
	if confirm := prompt(reader, "Confirm password"); confirm != password {
		return fmt.Errorf("passwords do not match")
	}

	ctx, cancel := cmdContext()
	defer cancel()

	if err := env.client.ResetPassword(ctx, code, password); err != nil {
		return friendlyErr(err)
	}

	fmt.Println("\n  Password updated. Run `spendsmart login` to sign in.")
	return nil
}
