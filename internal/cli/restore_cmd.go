package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/coursebin/internal/cli/formatter"
)

func newRestoreCmd(app *App) *cobra.Command {
	var actorID, target string

	cmd := &cobra.Command{
		Use:   "restore <entity-type> <entity-id>",
		Short: "Restore a soft-deleted entity from the recycle bin",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			entityType, err := parseEntityType(args[0])
			if err != nil {
				return err
			}
			if actorID == "" {
				return fmt.Errorf("--as is required")
			}
			targetStatus, err := parseStatus(target)
			if err != nil {
				return err
			}

			result := app.SafeDelete.Restore(context.Background(), entityType, args[1], actorID, targetStatus)
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatDeleteResult(result))
			if !result.Success {
				return fmt.Errorf("restore failed: %s", result.ErrorCode)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&actorID, "as", "", "Acting user ID")
	cmd.Flags().StringVar(&target, "to", "active", "Target status after restore (name or 1-6)")
	return cmd
}
