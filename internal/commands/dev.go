package commands

import (
	"strings"

	"github.com/spf13/cobra"
)

func newDevCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:    "dev",
		Short:  "Development helpers (server must run with DEV_MODE)",
		Hidden: true,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Replace your data with the demo practice",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAuth(app); err != nil {
				return err
			}
			res, err := app.API.DevReset(cmd.Context())
			if err != nil {
				return explain(err)
			}
			printf(cmd, "%s\n", res.Message)
			if len(res.Cleared) > 0 {
				printf(cmd, "%s\n", mutedStyle.Render("cleared: "+strings.Join(res.Cleared, ", ")))
			}
			return nil
		},
	})
	return cmd
}
