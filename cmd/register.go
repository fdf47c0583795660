package cmd

import (
	"bufio"
	"fmt"
	"os"

	"github.com/A1anTm/spendsmart/internal/validate"

	"github.com/spf13/cobra"
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account and sign in",
	RunE:  runRegister,
}

func init() {
	rootCmd.AddCommand(registerCmd)
}

func runRegister(_ *cobra.Command, _ []string) error {
	env, err := newClientEnv()
	if err != nil {
		return err
	}
	defer env.Close()

	reader := bufio.NewReader(os.Stdin)

	fullName := prompt(reader, "Full name")
	email := prompt(reader, "Email")
	password := prompt(reader, "Password")
	confirm := prompt(reader, "Confirm password")

	if fe := validate.Register(fullName, email, password, confirm); fe != nil {
		return fmt.Errorf("%s", fe.First())
	}

	ctx, cancel := cmdContext()
	defer cancel()

	token, err := env.client.Register(ctx, fullName, email, password)
	if err != nil {
		return friendlyErr(err)
	}

	env.store.Login(token)

	if !flagQuiet {
		fmt.Printf("\n  Account created. Signed in as %s.\n", fullName)
	}
	return nil
}
