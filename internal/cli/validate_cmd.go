package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/coursebin/internal/cli/formatter"
)

func newValidateCmd(app *App) *cobra.Command {
	var actorID string

	cmd := &cobra.Command{
		Use:   "validate <entity-type> <entity-id>",
		Short: "Check whether an entity can be deleted",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			entityType, err := parseEntityType(args[0])
			if err != nil {
				return err
			}
			if actorID == "" {
				return fmt.Errorf("--as is required")
			}

			result := app.SafeDelete.Validate(context.Background(), entityType, args[1], actorID)
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatValidationResult(result))
			return nil
		},
	}

	cmd.Flags().StringVar(&actorID, "as", "", "Acting user ID")
	return cmd
}
