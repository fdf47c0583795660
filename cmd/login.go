package cmd

import (
	"bufio"
	"fmt"
	"os"

	"github.com/A1anTm/spendsmart/internal/validate"

	"github.com/spf13/cobra"
)

var loginCmd = &cobra.Command{
	Use:   "login [email]",
	Short: "Sign in and persist the session",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runLogin,
}

func init() {
	rootCmd.AddCommand(loginCmd)
}

func runLogin(_ *cobra.Command, args []string) error {
	env, err := newClientEnv()
	if err != nil {
		return err
	}
	defer env.Close()

	reader := bufio.NewReader(os.Stdin)

	email := ""
	if len(args) > 0 {
		email = args[0]
	}
	if email == "" {
		email = prompt(reader, "Email")
	}
	if err := validate.Email(email); err != nil {
		return err
	}

	password := prompt(reader, "Password")
	if password == "" {
		return fmt.Errorf("password is required")
	}

	ctx, cancel := cmdContext()
	defer cancel()

	token, err := env.client.Login(ctx, email, password)
	if err != nil {
		return friendlyErr(err)
	}

	env.store.Login(token)

	if !flagQuiet {
		who := email
		if snap := env.store.Snapshot(); snap.Claims != nil && snap.Claims.FullName != "" {
			who = snap.Claims.FullName
		}
		fmt.Printf("\n  Signed in as %s.\n", who)
	}
	return nil
}
