package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/A1anTm/spendsmart/internal/api"
	"github.com/A1anTm/spendsmart/internal/cli"
	"github.com/A1anTm/spendsmart/internal/model"
	"github.com/A1anTm/spendsmart/internal/validate"

	"github.com/spf13/cobra"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "View and edit your profile",
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the profile",
	RunE:  runProfileShow,
}

var profileEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit the profile interactively",
	RunE:  runProfileEdit,
}

var profilePasswdCmd = &cobra.Command{
	Use:   "passwd",
	Short: "Change the account password",
	RunE:  runProfilePasswd,
}

func init() {
	profileCmd.AddCommand(profileShowCmd)
	profileCmd.AddCommand(profileEditCmd)
	profileCmd.AddCommand(profilePasswdCmd)
	rootCmd.AddCommand(profileCmd)
}

func runProfileShow(_ *cobra.Command, _ []string) error {
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

	p, err := env.client.Profile(ctx)
	if err != nil {
		return friendlyErr(err)
	}

	rows := [][]string{
		{"Name", p.FullName},
		{"Phone", p.PhoneNumber},
		{"Country", p.Country},
		{"Birthdate", cli.FormatDate(p.Birthdate)},
		{"Bio", cli.Truncate(p.Bio, 50)},
	}
	for _, sc := range p.SocialAccounts {
		rows = append(rows, []string{sc.Provider, sc.AccountURL})
	}

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title: "Profile",
		Rows:  rows,
	}))
	return nil
}

// runProfileEdit walks every field; empty input keeps the current value.
func runProfileEdit(_ *cobra.Command, _ []string) error {
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

	p, err := env.client.Profile(ctx)
	if err != nil {
		return friendlyErr(err)
	}

	reader := bufio.NewReader(os.Stdin)
	fmt.Println("\n  Press enter to keep the current value.")

	edit := func(label, current string) string {
		if current != "" {
			fmt.Printf("  %s [%s] > ", label, current)
		} else {
			fmt.Printf("  %s > ", label)
		}
		line, _ := reader.ReadString('\n')
		line = strings.TrimSpace(line)
		if line == "" {
			return current
		}
		return line
	}

	p.FullName = edit("Full name", p.FullName)
	p.PhoneNumber = edit("Phone", p.PhoneNumber)
	p.Country = edit("Country", p.Country)
	p.Birthdate = edit("Birthdate (YYYY-MM-DD)", p.Birthdate)
	p.Bio = edit("Bio", p.Bio)

	for i := range p.SocialAccounts {
		p.SocialAccounts[i].AccountURL = edit(
			p.SocialAccounts[i].Provider+" URL", p.SocialAccounts[i].AccountURL)
	}
	if provider := edit("New social provider", ""); provider != "" {
		if url := edit("New social URL", ""); url != "" {
			p.SocialAccounts = append(p.SocialAccounts,
				model.SocialAccount{Provider: provider, AccountURL: url})
		}
	}

	if err := validate.Profile(p); err != nil {
		return err
	}

	// The first context may have timed out while the user typed.
	saveCtx, cancelSave := cmdContext()
	defer cancelSave()

	if _, err := env.client.UpdateProfile(saveCtx, p); err != nil {
		return friendlyErr(err)
	}

	if !flagQuiet {
		fmt.Println("\n  Profile updated.")
	}
	return nil
}

func runProfilePasswd(_ *cobra.Command, _ []string) error {
	env, err := newClientEnv()
	if err != nil {
		return err
	}
	defer env.Close()

	if err := env.requireAuth(); err != nil {
		return err
	}

	reader := bufio.NewReader(os.Stdin)
	current := prompt(reader, "Current password")
	next := prompt(reader, "New password")
	confirm := prompt(reader, "Confirm new password")

	if fe := validate.ChangePassword(current, next, confirm); fe != nil {
		return fmt.Errorf("%s", fe.First())
	}

	ctx, cancel := cmdContext()
	defer cancel()

	// A 401 here means the current password was wrong; the request opts
	// out of the expiry handling so the message comes back as-is.
	message, err := env.client.ChangePassword(ctx, current, next)
	if err != nil {
		var apiErr *api.Error
		if errors.As(err, &apiErr) && apiErr.Status == 401 {
			if apiErr.Message != "" {
				return errors.New(apiErr.Message)
			}
			return errors.New("current password is incorrect")
		}
		return friendlyErr(err)
	}

	if message == "" {
		message = "Password changed."
	}
	fmt.Printf("\n  %s\n", message)
	return nil
}
