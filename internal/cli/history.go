package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mcoot/scorepad/internal/api/response"
)

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Finished game commands",
	}

	cmd.AddCommand(newHistoryListCmd())
	cmd.AddCommand(newHistoryRecentCmd())
	cmd.AddCommand(newHistoryTopCmd())

	return cmd
}

func newHistoryListCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List finished games, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/api/v1/history"
			if cmd.Flags().Changed("limit") {
				path = fmt.Sprintf("%s?limit=%d", path, limit)
			}
			var result response.GameList

			if err := client.Get(cmd.Context(), path, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Show only the newest n games")

	return cmd
}

func newHistoryRecentCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "recent",
		Short: "Show the last five games",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.GameList

			if err := client.Get(cmd.Context(), "/api/v1/history/recent", &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
}

func newHistoryTopCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "top",
		Short: "Show the players with the most finished games",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.TopPlayers

			if err := client.Get(cmd.Context(), "/api/v1/history/top-players", &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
}
