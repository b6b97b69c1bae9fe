// Package commands is the lumina CLI: sign in, browse the practice and
// write session notes against the API.
package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/luminacoach/lumina/internal/apiclient"
	"github.com/luminacoach/lumina/internal/authstate"
	"github.com/luminacoach/lumina/internal/kvstore"
	"github.com/luminacoach/lumina/internal/notestemplate"
)

// App is what every command works with. It is built once in main (or a
// test) and passed down; nothing here is global.
type App struct {
	API       *apiclient.Client
	Auth      *authstate.Auth
	Templates *notestemplate.State
	Store     kvstore.Store
	Logger    *slog.Logger
}

// NewApp wires the client services over store.
func NewApp(baseURL string, store kvstore.Store, logger *slog.Logger) *App {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	}
	api := apiclient.New(baseURL, store)
	return &App{
		API:       api,
		Auth:      authstate.New(api, store, logger),
		Templates: notestemplate.New(api),
		Store:     store,
		Logger:    logger,
	}
}

func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "lumina",
		Short: "Coaching practice from the terminal",
		Long: `lumina talks to a Lumina API server. Sign in once with "lumina login";
the token is kept in the state directory ($LUMINA_STATE_DIR or the user
config dir) until "lumina logout".`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			app.Auth.Restore()
		},
	}

	root.AddCommand(
		newLoginCmd(app),
		newLogoutCmd(app),
		newWhoamiCmd(app),
		newDashboardCmd(app),
		newClientsCmd(app),
		newSessionsCmd(app),
		newNotesCmd(app),
		newTemplatesCmd(app),
		newDevCmd(app),
	)
	return root
}

// Execute builds the app from the environment and runs the CLI.
func Execute() error {
	dir, err := kvstore.DefaultDir()
	if err != nil {
		return err
	}
	app := NewApp(apiclient.BaseURLFromEnv(), kvstore.NewFile(dir), nil)
	return NewRootCmd(app).ExecuteContext(context.Background())
}

// requireAuth fails early with a hint instead of a bare 401.
func requireAuth(app *App) error {
	if !app.Auth.State().Authenticated() {
		return errors.New(`not signed in; run "lumina login" first`)
	}
	return nil
}

// explain turns API failures into messages a person can act on.
func explain(err error) error {
	var se *apiclient.StatusError
	if !errors.As(err, &se) {
		return err
	}
	switch se.Status {
	case http.StatusUnauthorized:
		return errors.New(`session expired or revoked; run "lumina login" again`)
	case http.StatusNotFound:
		return errors.New("not found")
	}
	return err
}

// degrade logs err and reports whether the caller should show its empty
// state instead.
func degrade(app *App, what string, err error) bool {
	if err == nil {
		return false
	}
	app.Logger.Warn("could not load "+what, "error", err)
	return true
}

func out(cmd *cobra.Command) io.Writer { return cmd.OutOrStdout() }

func printf(cmd *cobra.Command, format string, args ...any) {
	fmt.Fprintf(out(cmd), format, args...)
}
