package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

var (
	cfg    *Config
	client *Client
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cfg = DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "scorepad",
		Short: "CLI tool for the scorepad API",
		Long: `scorepad keeps score for tabletop and card games.

Manage a roster of players and game templates, record scores round by round
for the active game, and browse the history of finished games.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cfg.Output != OutputText && cfg.Output != OutputJSON {
				return fmt.Errorf("invalid output format %q: must be text or json", cfg.Output)
			}

			client = NewClient(cfg.ServerURL, cfg.Timeout)
			return nil
		},
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfg.ServerURL, "server", cfg.ServerURL, "Server URL (env: SCOREPAD_SERVER)")
	rootCmd.PersistentFlags().StringVarP(&cfg.Output, "output", "o", cfg.Output, "Output format: text, json")
	rootCmd.PersistentFlags().DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "HTTP request timeout")

	// Add subcommands
	rootCmd.AddCommand(newPlayerCmd())
	rootCmd.AddCommand(newTemplateCmd())
	rootCmd.AddCommand(newSessionCmd())
	rootCmd.AddCommand(newHistoryCmd())
	rootCmd.AddCommand(newHealthCmd())

	return rootCmd
}

// Execute runs the root command, cancelling its context on interrupt
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := NewRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
