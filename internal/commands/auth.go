package commands

import (
	"errors"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/luminacoach/lumina/internal/authstate"
)

func newLoginCmd(app *App) *cobra.Command {
	var provider, email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in with an OAuth provider or email and password",
		Example: `  lumina login
  lumina login --provider microsoft
  lumina login --email coach@example.com --password secret`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			var err error
			if email != "" || password != "" {
				if email == "" || password == "" {
					return errors.New("--email and --password go together")
				}
				err = app.Auth.Login(ctx, email, password)
			} else {
				err = app.Auth.LoginWithOAuth(ctx, provider)
			}
			if errors.Is(err, authstate.ErrInvalidCredentials) {
				return err
			}
			if err != nil {
				return explain(err)
			}

			user := app.Auth.State().User
			printf(cmd, "%s Signed in as %s <%s>\n", okStyle.Render("✓"), user.Name, user.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&provider, "provider", "google", "OAuth provider")
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	return cmd
}

func newLogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and forget the stored token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Auth.Logout(cmd.Context()); err != nil {
				return err
			}
			printf(cmd, "Signed out.\n")
			return nil
		},
	}
}

func newWhoamiCmd(app *App) *cobra.Command {
	var follow bool

	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in coach",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAuth(app); err != nil {
				return err
			}

			me, err := app.API.Me(cmd.Context())
			if err != nil {
				return explain(err)
			}

			printf(cmd, "%s\n", titleStyle.Render(me.Name))
			printf(cmd, "%s %s\n", labelStyle.Render("Email:"), me.Email)
			if me.PracticeName != "" {
				printf(cmd, "%s %s\n", labelStyle.Render("Practice:"), me.PracticeName)
			}
			printf(cmd, "%s %s\n", labelStyle.Render("Timezone:"), me.Timezone)
			printf(cmd, "%s %s\n", labelStyle.Render("Server:"), mutedStyle.Render(app.API.BaseURL()))

			if follow {
				return followAuth(cmd, app)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&follow, "follow", false, "keep running and report sign-ins and sign-outs from other shells")
	return cmd
}

// followAuth prints every auth change until interrupted.
func followAuth(cmd *cobra.Command, app *App) error {
	w, ok := app.Store.(authstate.Watcher)
	if !ok {
		return errors.New("this state store cannot be watched")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	defer app.Auth.Subscribe(func(s authstate.State) {
		if s.Authenticated() {
			printf(cmd, "%s %s <%s>\n", okStyle.Render("signed in"), s.User.Name, s.User.Email)
			return
		}
		printf(cmd, "%s\n", warnStyle.Render("signed out"))
	})()

	return app.Auth.Follow(ctx, w)
}
