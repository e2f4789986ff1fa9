package cli

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/mcoot/scorepad/internal/api/response"
	"github.com/mcoot/scorepad/internal/model"
)

func newTemplateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "template",
		Aliases: []string{"templates"},
		Short:   "Game template commands",
	}

	cmd.AddCommand(newTemplateListCmd())
	cmd.AddCommand(newTemplateAddCmd())
	cmd.AddCommand(newTemplateShowCmd())
	cmd.AddCommand(newTemplateUpdateCmd())
	cmd.AddCommand(newTemplateRemoveCmd())

	return cmd
}

func templatePath(id string) string {
	return "/api/v1/templates/" + url.PathEscape(id)
}

func newTemplateListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all game templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.TemplateList

			if err := client.Get(cmd.Context(), "/api/v1/templates", &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
}

func newTemplateAddCmd() *cobra.Command {
	var reverse bool

	cmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Add a game template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scoring := model.ScoringNormal
			if reverse {
				scoring = model.ScoringReverse
			}

			req := map[string]string{"name": args[0], "scoringType": string(scoring)}
			var result model.Template

			if err := client.Post(cmd.Context(), "/api/v1/templates", req, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}

	cmd.Flags().BoolVar(&reverse, "reverse", false, "Lowest total wins")

	return cmd
}

func newTemplateShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show a game template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result model.Template

			if err := client.Get(cmd.Context(), templatePath(args[0]), &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
}

func newTemplateUpdateCmd() *cobra.Command {
	var name, scoring string

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Change a template's name or scoring type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == "" && scoring == "" {
				return fmt.Errorf("at least one of --name or --scoring is required")
			}

			req := map[string]string{}
			if name != "" {
				req["name"] = name
			}
			if scoring != "" {
				req["scoringType"] = scoring
			}
			var result model.Template

			if err := client.Patch(cmd.Context(), templatePath(args[0]), req, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New template name")
	cmd.Flags().StringVar(&scoring, "scoring", "", "Scoring type: normal, reverse")

	return cmd
}

func newTemplateRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "remove ID",
		Aliases: []string{"rm"},
		Short:   "Remove a game template",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete(cmd.Context(), templatePath(args[0])); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).PrintMessage("Template removed")
			return nil
		},
	}
}
