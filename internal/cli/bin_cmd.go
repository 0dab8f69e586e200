package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/coursebin/internal/cli/formatter"
	"github.com/alexanderramin/coursebin/internal/contract"
)

func newBinCmd(app *App) *cobra.Command {
	var actorID, search, typeFilter string
	var page, pageSize int

	cmd := &cobra.Command{
		Use:   "bin",
		Short: "List soft-deleted entities owned by a user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if actorID == "" {
				return fmt.Errorf("--as is required")
			}
			if typeFilter != contract.EntityFilterAll {
				et, err := parseEntityType(typeFilter)
				if err != nil {
					return err
				}
				typeFilter = string(et)
			}

			result, err := app.RecycleBin.List(context.Background(), contract.RecycleBinRequest{
				ActorUserID: actorID,
				Search:      search,
				EntityType:  typeFilter,
				Page:        page,
				PageSize:    pageSize,
			})
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatRecycleBinPage(result))
			return nil
		},
	}

	cmd.Flags().StringVar(&actorID, "as", "", "Acting user ID")
	cmd.Flags().StringVar(&search, "search", "", "Substring match on name or description")
	cmd.Flags().StringVar(&typeFilter, "type", contract.EntityFilterAll, "Entity type filter (All, Course, Chapter, Lesson, Account, Enrollment)")
	cmd.Flags().IntVar(&page, "page", 1, "Page number")
	cmd.Flags().IntVar(&pageSize, "page-size", 10, "Items per page")
	return cmd
}
