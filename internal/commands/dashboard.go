package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newDashboardCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "dashboard",
		Aliases: []string{"home"},
		Short:   "Practice overview: metrics, upcoming sessions, recent clients",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAuth(app); err != nil {
				return err
			}

			d, err := app.API.Dashboard(cmd.Context())
			if err != nil {
				return explain(err)
			}

			m := d.Metrics
			printf(cmd, "%s\n", titleStyle.Render("Dashboard"))
			printf(cmd, "%s\n", renderTable(
				[]string{"Metric", "Value"},
				[][]string{
					{"Active clients", fmt.Sprintf("%d of %d", m.ActiveClients, m.TotalClients)},
					{"Upcoming sessions", fmt.Sprint(m.UpcomingSessions)},
					{"Sessions this week", fmt.Sprint(m.SessionsThisWeek)},
					{"Completed this month", fmt.Sprint(m.CompletedThisMonth)},
					{"Notes this month", fmt.Sprint(m.NotesThisMonth)},
					{"Revenue", money(m.Revenue)},
					{"Outstanding", money(m.Outstanding)},
				},
			))

			printf(cmd, "\n%s\n", titleStyle.Render("Upcoming"))
			if len(d.UpcomingSessions) == 0 {
				printf(cmd, "%s\n", mutedStyle.Render("No upcoming sessions."))
			} else {
				printf(cmd, "%s\n", sessionTable(d.UpcomingSessions))
			}

			printf(cmd, "\n%s\n", titleStyle.Render("Recent clients"))
			if len(d.RecentClients) == 0 {
				printf(cmd, "%s\n", mutedStyle.Render("No clients yet."))
			} else {
				printf(cmd, "%s\n", clientTable(d.RecentClients))
			}
			return nil
		},
	}
}
