package commands

import (
	"github.com/spf13/cobra"

	"github.com/luminacoach/lumina/internal/apiclient"
)

func newClientsCmd(app *App) *cobra.Command {
	var q apiclient.ClientQuery

	cmd := &cobra.Command{
		Use:   "clients [id]",
		Short: "List clients, or show one with its sessions",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAuth(app); err != nil {
				return err
			}
			ctx := cmd.Context()

			if len(args) == 1 {
				c, err := app.API.GetClient(ctx, args[0])
				if err != nil {
					return explain(err)
				}
				printClient(cmd, c)
				return nil
			}

			list, err := app.API.Clients(ctx, q)
			if degrade(app, "clients", err) {
				printf(cmd, "%s\n", mutedStyle.Render("Clients are unavailable right now."))
				return nil
			}
			if len(list) == 0 {
				printf(cmd, "%s\n", mutedStyle.Render("No clients match."))
				return nil
			}
			printf(cmd, "%s\n", clientTable(list))
			return nil
		},
	}

	cmd.Flags().StringVar(&q.Search, "search", "", "match name, email or program")
	cmd.Flags().StringArrayVar(&q.Statuses, "status", nil, "filter by status (repeatable)")
	cmd.Flags().StringArrayVar(&q.Programs, "program", nil, "filter by program (repeatable)")
	return cmd
}

func clientTable(list []apiclient.ClientRecord) string {
	rows := make([][]string, 0, len(list))
	for _, c := range list {
		rows = append(rows, []string{c.ID, c.Name, c.Program, statusStyle(c.Status).Render(c.Status), c.Email})
	}
	return renderTable([]string{"ID", "Name", "Program", "Status", "Email"}, rows)
}

func printClient(cmd *cobra.Command, c apiclient.ClientRecord) {
	printf(cmd, "%s  %s\n", titleStyle.Render(c.Name), statusStyle(c.Status).Render(c.Status))
	printf(cmd, "%s %s\n", labelStyle.Render("Email:"), c.Email)
	if c.Phone != "" {
		printf(cmd, "%s %s\n", labelStyle.Render("Phone:"), c.Phone)
	}
	printf(cmd, "%s %s\n", labelStyle.Render("Program:"), c.Program)
	if c.StartDate != nil {
		printf(cmd, "%s %s\n", labelStyle.Render("Since:"), c.StartDate.Format("Jan 2, 2006"))
	}
	for _, e := range c.Engagements {
		printf(cmd, "%s %s, %d of %d sessions left\n", labelStyle.Render("Package:"), e.PackageName, e.Remaining, e.SessionsTotal)
	}
	if c.Notes != "" {
		printf(cmd, "\n%s\n", c.Notes)
	}

	printf(cmd, "\n%s\n", titleStyle.Render("Sessions"))
	if len(c.Sessions) == 0 {
		printf(cmd, "%s\n", mutedStyle.Render("No sessions yet."))
		return
	}
	printf(cmd, "%s\n", sessionTable(c.Sessions))
}
