package cli

import (
	"net/url"

	"github.com/spf13/cobra"

	"github.com/mcoot/scorepad/internal/api/response"
	"github.com/mcoot/scorepad/internal/model"
)

func newPlayerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "player",
		Aliases: []string{"players"},
		Short:   "Player roster commands",
	}

	cmd.AddCommand(newPlayerListCmd())
	cmd.AddCommand(newPlayerAddCmd())
	cmd.AddCommand(newPlayerShowCmd())
	cmd.AddCommand(newPlayerRenameCmd())
	cmd.AddCommand(newPlayerRemoveCmd())

	return cmd
}

func playerPath(id string) string {
	return "/api/v1/players/" + url.PathEscape(id)
}

func newPlayerListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all players",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.PlayerList

			if err := client.Get(cmd.Context(), "/api/v1/players", &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
}

func newPlayerAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add NAME",
		Short: "Add a player to the roster",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"name": args[0]}
			var result model.Player

			if err := client.Post(cmd.Context(), "/api/v1/players", req, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
}

func newPlayerShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show a player",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result model.Player

			if err := client.Get(cmd.Context(), playerPath(args[0]), &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
}

func newPlayerRenameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rename ID NAME",
		Short: "Rename a player",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"name": args[1]}
			var result model.Player

			if err := client.Patch(cmd.Context(), playerPath(args[0]), req, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
}

func newPlayerRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "remove ID",
		Aliases: []string{"rm"},
		Short:   "Remove a player from the roster",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete(cmd.Context(), playerPath(args[0])); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).PrintMessage("Player removed")
			return nil
		},
	}
}
