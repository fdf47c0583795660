package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the persisted session",
	RunE:  runLogout,
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in identity",
	RunE:  runWhoami,
}

func init() {
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
}

func runLogout(_ *cobra.Command, _ []string) error {
	env, err := newClientEnv()
	if err != nil {
		return err
	}
	defer env.Close()

	env.store.Logout()

	if !flagQuiet {
		fmt.Println("\n  Signed out.")
	}
	return nil
}

func runWhoami(_ *cobra.Command, _ []string) error {
	env, err := newClientEnv()
	if err != nil {
		return err
	}
	defer env.Close()

	snap := env.store.Snapshot()
	if !snap.Authenticated {
		fmt.Println("\n  Not signed in.")
		return nil
	}

	if snap.Claims == nil {
		fmt.Println("\n  Signed in (token carries no identity claims).")
		return nil
	}

	fmt.Println()
	if snap.Claims.FullName != "" {
		fmt.Printf("  %s\n", snap.Claims.FullName)
	}
	if snap.Claims.Email != "" {
		fmt.Printf("  %s\n", snap.Claims.Email)
	}
	if snap.Claims.ExpiresAt != nil {
		fmt.Printf("  Session expires %s\n", snap.Claims.ExpiresAt.Format("2006-01-02 15:04"))
	}
	return nil
}
