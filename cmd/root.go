package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/A1anTm/spendsmart/internal/api"
	"github.com/A1anTm/spendsmart/internal/config"
	"github.com/A1anTm/spendsmart/internal/session"
	"github.com/A1anTm/spendsmart/internal/state"

	"github.com/spf13/cobra"
)

var (
	flagAPIURL string
	flagQuiet  bool
)

var rootCmd = &cobra.Command{
	Use:   "spendsmart",
	Short: "SpendSmart personal finance client",
	Long:  "Track transactions, budgets, and savings goals against a SpendSmart backend.",
	RunE:  runTUI,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagAPIURL, "api-url", "", "Backend origin (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress informational output")
}

// clientEnv bundles the shared pieces every command needs: config,
// persisted state, the API client, and the hydrated session store.
type clientEnv struct {
	cfg    config.Config
	state  *state.Store
	client *api.Client
	store  *session.Store
}

// newClientEnv builds the environment. The session store is hydrated,
// so an expired persisted token is already cleared by the time a
// command runs.
func newClientEnv() (*clientEnv, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if flagAPIURL != "" {
		cfg.API.BaseURL = strings.TrimRight(flagAPIURL, "/")
	}

	st, err := state.Open(config.StatePath())
	if err != nil {
		return nil, fmt.Errorf("opening state store: %w", err)
	}

	client := api.NewClient(cfg.API.BaseURL)
	store := session.NewStore(client, st)
	store.Hydrate()

	return &clientEnv{cfg: cfg, state: st, client: client, store: store}, nil
}

func (e *clientEnv) Close() {
	_ = e.state.Close()
}

// requireAuth fails fast when no valid session exists.
func (e *clientEnv) requireAuth() error {
	if !e.store.Snapshot().Authenticated {
		return errors.New("not signed in. Run `spendsmart login` first")
	}
	return nil
}

// cmdContext returns the per-command request context.
func cmdContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 30*time.Second)
}

// friendlyErr rewrites transport failures into actionable messages.
func friendlyErr(err error) error {
	if errors.Is(err, api.ErrUnreachable) {
		return errors.New("cannot reach the server. Is the backend running? (see `spendsmart setup`)")
	}
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		if apiErr.Status == 401 {
			return errors.New("session expired. Run `spendsmart login` again")
		}
		if apiErr.Message != "" {
			return errors.New(apiErr.Message)
		}
	}
	return err
}

// prompt reads one line from stdin with a label.
func prompt(reader *bufio.Reader, label string) string {
	fmt.Printf("  %s > ", label)
	line, _ := reader.ReadString('\n')
	return strings.TrimSpace(line)
}
