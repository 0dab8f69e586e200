package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/alexanderramin/coursebin/internal/cli/formatter"
	"github.com/alexanderramin/coursebin/internal/contract"
	"github.com/alexanderramin/coursebin/internal/domain"
)

func newDeleteCmd(app *App) *cobra.Command {
	var actorID, reason string
	var hard, yes bool

	cmd := &cobra.Command{
		Use:   "delete <entity-type> <entity-id>",
		Short: "Soft delete an entity, or permanently remove it with --hard",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			entityType, err := parseEntityType(args[0])
			if err != nil {
				return err
			}
			if actorID == "" {
				return fmt.Errorf("--as is required")
			}

			if hard && !yes {
				if !app.IsInteractive {
					return fmt.Errorf("refusing hard delete without --yes in non-interactive mode")
				}
				confirmed, err := confirmHardDelete(entityType, args[1])
				if err != nil {
					return err
				}
				if !confirmed {
					fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
					return nil
				}
			}

			ctx := context.Background()
			var result *contract.SafeDeleteResult
			if hard {
				result = app.SafeDelete.HardDelete(ctx, entityType, args[1], actorID, reason)
			} else {
				result = app.SafeDelete.SoftDelete(ctx, entityType, args[1], actorID, reason)
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatDeleteResult(result))
			if !result.Success {
				return fmt.Errorf("delete failed: %s", result.ErrorCode)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&actorID, "as", "", "Acting user ID")
	cmd.Flags().StringVar(&reason, "reason", "", "Reason recorded in the audit trail")
	cmd.Flags().BoolVar(&hard, "hard", false, "Permanently delete instead of archiving")
	cmd.Flags().BoolVar(&yes, "yes", false, "Skip the hard delete confirmation prompt")
	return cmd
}

func confirmHardDelete(entityType domain.EntityType, entityID string) (bool, error) {
	var confirmed bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Permanently delete %s %s? This cannot be undone.", entityType, entityID)).
				Affirmative("Delete").
				Negative("Cancel").
				Value(&confirmed),
		),
	).WithTheme(coursebinHuhTheme()).WithShowHelp(false)
	if err := form.Run(); err != nil {
		return false, err
	}
	return confirmed, nil
}

func coursebinHuhTheme() *huh.Theme {
	t := huh.ThemeBase()
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorRed).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	return t
}
