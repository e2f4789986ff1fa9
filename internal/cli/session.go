package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"

	"github.com/mcoot/scorepad/internal/api/response"
	"github.com/mcoot/scorepad/internal/model"
)

func newSessionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "session",
		Aliases: []string{"game"},
		Short:   "Active game commands",
	}

	cmd.AddCommand(newSessionShowCmd())
	cmd.AddCommand(newSessionStartCmd())
	cmd.AddCommand(newSessionScoreCmd())
	cmd.AddCommand(newSessionTotalsCmd())
	cmd.AddCommand(newSessionFinishCmd())
	cmd.AddCommand(newSessionCancelCmd())
	cmd.AddCommand(newSessionWatchCmd())

	return cmd
}

func newSessionShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the active game's score sheet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.Session

			if err := client.Get(cmd.Context(), "/api/v1/session", &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
}

func newSessionStartCmd() *cobra.Command {
	var templateID string
	var playerIDs []string

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start a game, replacing any game in progress",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(playerIDs) == 0 {
				return fmt.Errorf("at least one --player is required")
			}

			req := map[string]any{
				"templateId": templateID,
				"playerIds":  playerIDs,
			}
			var result response.Session

			if err := client.Post(cmd.Context(), "/api/v1/session", req, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&templateID, "template", string(model.DefaultTemplate().ID), "Template ID")
	cmd.Flags().StringSliceVarP(&playerIDs, "player", "p", nil, "Player ID, in seat order (repeatable)")

	return cmd
}

func newSessionScoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "score ROUND PLAYER [VALUE]",
		Short: "Record a score; omit VALUE to clear the slot",
		Long: `Record a score for the player at index PLAYER in round ROUND.

Indices start at 0. Scoring the round after the last one opens it, and a
completely filled last round opens the next one automatically.`,
		Args: cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			round, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid round %q: %w", args[0], err)
			}
			player, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid player %q: %w", args[1], err)
			}

			req := map[string]any{"value": nil}
			if len(args) == 3 {
				req["value"] = args[2]
			}
			var result response.Session

			path := fmt.Sprintf("/api/v1/session/rounds/%d/players/%d", round, player)
			if err := client.Put(cmd.Context(), path, req, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
}

func newSessionTotalsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "totals",
		Short: "Show running totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.Totals

			if err := client.Get(cmd.Context(), "/api/v1/session/totals", &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
}

func newSessionFinishCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "finish",
		Short: "Finish the game and record it in history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var result model.Game

			if err := client.Post(cmd.Context(), "/api/v1/session/finish", nil, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
}

func newSessionCancelCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cancel",
		Short: "Discard the active game without recording it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete(cmd.Context(), "/api/v1/session"); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).PrintMessage("Game cancelled")
			return nil
		},
	}
}

func newSessionWatchCmd() *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Stream live changes to the active game",
		Long: `Stream live changes to the active game until interrupted.

The first event is a snapshot of the current session. Use --count to exit
after a fixed number of events.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			dialer := websocket.Dialer{HandshakeTimeout: cfg.Timeout}

			conn, _, err := dialer.DialContext(ctx, client.WebsocketURL("/api/v1/session/events"), nil)
			if err != nil {
				return fmt.Errorf("failed to connect: %w", err)
			}
			defer conn.Close()

			stop := context.AfterFunc(ctx, func() { _ = conn.Close() })
			defer stop()

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			for received := 0; count <= 0 || received < count; received++ {
				var event model.SessionEvent
				if err := conn.ReadJSON(&event); err != nil {
					if ctx.Err() != nil || websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
						return nil
					}
					var closeErr *websocket.CloseError
					if errors.As(err, &closeErr) {
						return fmt.Errorf("server closed the stream: %w", err)
					}
					return fmt.Errorf("failed to read event: %w", err)
				}
				out.Print(event)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", 0, "Exit after this many events (0 streams until interrupted)")

	return cmd
}
