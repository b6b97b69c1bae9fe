package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/luminacoach/lumina/internal/apiclient"
)

const dateInputLayout = "2006-01-02 15:04"

func newSessionsCmd(app *App) *cobra.Command {
	var (
		q        apiclient.SessionQuery
		from, to string
	)

	cmd := &cobra.Command{
		Use:   "sessions [id]",
		Short: "List sessions, or show one",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAuth(app); err != nil {
				return err
			}
			ctx := cmd.Context()

			if len(args) == 1 {
				s, err := app.API.Session(ctx, args[0])
				if err != nil {
					return explain(err)
				}
				printSession(cmd, s)
				return nil
			}

			var err error
			if q.From, err = parseDateFlag("from", from); err != nil {
				return err
			}
			if q.To, err = parseDateFlag("to", to); err != nil {
				return err
			}

			list, err := app.API.Sessions(ctx, q)
			if degrade(app, "sessions", err) {
				printf(cmd, "%s\n", mutedStyle.Render("Sessions are unavailable right now."))
				return nil
			}
			if len(list) == 0 {
				printf(cmd, "%s\n", mutedStyle.Render("No sessions match."))
				return nil
			}
			printf(cmd, "%s\n", sessionTable(list))
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&q.Search, "search", "", "match client, focus or type")
	f.StringArrayVar(&q.Statuses, "status", nil, "filter by status (repeatable)")
	f.StringArrayVar(&q.Locations, "location", nil, "filter by location (repeatable)")
	f.StringArrayVar(&q.Payments, "payment", nil, "filter by payment status (repeatable)")
	f.StringVar(&from, "from", "", `start of period, "YYYY-MM-DD" or "YYYY-MM-DD HH:MM"`)
	f.StringVar(&to, "to", "", "end of period")

	cmd.AddCommand(newCancelSessionCmd(app), newRescheduleSessionCmd(app))
	return cmd
}

func newCancelSessionCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "cancel <id>",
		Short: "Cancel a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAuth(app); err != nil {
				return err
			}
			s, err := app.API.CancelSession(cmd.Context(), args[0])
			if err != nil {
				return explain(err)
			}
			printf(cmd, "Session with %s on %s is %s.\n", s.Client, s.Date.Local().Format(dateInputLayout), statusStyle(s.Status).Render(s.Status))
			return nil
		},
	}
}

func newRescheduleSessionCmd(app *App) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "reschedule <id>",
		Short: "Move a session to a new date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAuth(app); err != nil {
				return err
			}
			when, err := parseDateFlag("date", date)
			if err != nil {
				return err
			}
			if when.IsZero() {
				return fmt.Errorf("--date is required")
			}

			s, err := app.API.RescheduleSession(cmd.Context(), args[0], when)
			if err != nil {
				return explain(err)
			}
			printf(cmd, "Session with %s moved to %s.\n", s.Client, s.Date.Local().Format(dateInputLayout))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", `new date, "YYYY-MM-DD HH:MM" in local time or RFC3339`)
	return cmd
}

// parseDateFlag accepts RFC3339, "YYYY-MM-DD HH:MM" or "YYYY-MM-DD" in
// local time. An empty value is the zero time.
func parseDateFlag(name, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	for _, layout := range []string{dateInputLayout, "2006-01-02"} {
		if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("--%s: cannot read %q as a date", name, value)
}

func sessionTable(list []apiclient.Session) string {
	rows := make([][]string, 0, len(list))
	for _, s := range list {
		rows = append(rows, []string{
			s.ID,
			s.Date.Local().Format(dateInputLayout),
			s.Client,
			s.SessionType,
			s.Location,
			statusStyle(s.Status).Render(s.Status),
			statusStyle(s.PaymentStatus).Render(s.PaymentStatus),
		})
	}
	return renderTable([]string{"ID", "When", "Client", "Type", "Location", "Status", "Payment"}, rows)
}

func printSession(cmd *cobra.Command, s apiclient.Session) {
	printf(cmd, "%s  %s\n", titleStyle.Render(s.Client), statusStyle(s.Status).Render(s.Status))
	printf(cmd, "%s %s (%d min)\n", labelStyle.Render("When:"), s.Date.Local().Format(dateInputLayout), s.Duration)
	printf(cmd, "%s %s, %s\n", labelStyle.Render("Type:"), s.SessionType, s.Location)
	if s.Focus != "" {
		printf(cmd, "%s %s\n", labelStyle.Render("Focus:"), s.Focus)
	}
	printf(cmd, "%s %s\n", labelStyle.Render("Payment:"), statusStyle(s.PaymentStatus).Render(s.PaymentStatus))
	if s.PackageRemaining != nil {
		printf(cmd, "%s %d sessions left\n", labelStyle.Render("Package:"), *s.PackageRemaining)
	}
	printf(cmd, "%s %d\n", labelStyle.Render("Notes:"), len(s.Notes))
}
