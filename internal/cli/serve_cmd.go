package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/coursebin/internal/web"
)

func newServeCmd(app *App) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the deletion engine HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			server := web.NewServer(app.SafeDelete, app.RecycleBin)
			fmt.Fprintf(cmd.OutOrStdout(), "Listening on %s\n", addr)
			return server.Start(addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "Listen address")
	return cmd
}
