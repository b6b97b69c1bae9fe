package commands

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/luminacoach/lumina/internal/apiclient"
	"github.com/luminacoach/lumina/internal/config"
	"github.com/luminacoach/lumina/internal/db"
	"github.com/luminacoach/lumina/internal/domain/note"
	"github.com/luminacoach/lumina/internal/kvstore"
	"github.com/luminacoach/lumina/internal/models"
	"github.com/luminacoach/lumina/internal/routes"
	"github.com/luminacoach/lumina/internal/tokenstore"
)

type harness struct {
	t     *testing.T
	db    *gorm.DB
	store kvstore.Store
	url   string
}

// newHarness serves the API from a fresh sqlite database. With demo set,
// first sign-in seeds the demo practice.
func newHarness(t *testing.T, demo bool) *harness {
	t.Helper()
	gin.SetMode(gin.TestMode)

	gdb := db.NewTestDB(t)
	r := gin.New()
	routes.RegisterRoutes(r, routes.Deps{
		DB: gdb,
		Config: &config.Config{
			JWTSecret:      "cli-test",
			TokenTTL:       time.Hour,
			OAuthProviders: []string{"google"},
			DevMode:        demo,
		},
		Tokens: tokenstore.NewMemory(),
	})
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	return &harness{t: t, db: gdb, store: kvstore.NewFile(t.TempDir()), url: srv.URL}
}

// app is rebuilt for every run, like separate invocations of the binary.
func (h *harness) app() *App {
	return NewApp(h.url, h.store, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func (h *harness) run(args ...string) (string, error) {
	h.t.Helper()

	var buf bytes.Buffer
	cmd := NewRootCmd(h.app())
	cmd.SetOut(&buf)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return buf.String(), err
}

func (h *harness) mustRun(args ...string) string {
	h.t.Helper()
	out, err := h.run(args...)
	require.NoError(h.t, err, "lumina %v", args)
	return out
}

// seedSession creates a client and an upcoming session for the signed-in
// coach.
func (h *harness) seedSession(name string, at time.Time) apiclient.Session {
	h.t.Helper()
	ctx := context.Background()
	app := h.app()
	app.Auth.Restore()

	client := models.Client{ProviderID: app.Auth.State().User.ID, Name: name, Status: "active"}
	require.NoError(h.t, h.db.Create(&client).Error)

	s, err := app.API.CreateSession(ctx, apiclient.SessionInput{ClientID: client.ID, Date: at, Location: "zoom"})
	require.NoError(h.t, err)
	return s
}

func TestLoginWhoamiLogout(t *testing.T) {
	h := newHarness(t, false)

	_, err := h.run("whoami")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "lumina login")

	out := h.mustRun("login")
	assert.Contains(t, out, "Signed in as")

	out = h.mustRun("whoami")
	assert.Contains(t, out, "coach+google@lumina.local")

	_, err = h.run("login", "--email", "coach@example.com")
	require.Error(t, err)

	h.mustRun("logout")
	_, ok := h.store.Get(kvstore.TokenKey)
	assert.False(t, ok)

	_, err = h.run("whoami")
	require.Error(t, err)
}

func TestNotesWithTemplate(t *testing.T) {
	h := newHarness(t, false)
	h.mustRun("login")
	s := h.seedSession("Ada Chen", time.Now().Add(24*time.Hour))

	out := h.mustRun("notes", s.ID)
	assert.Contains(t, out, "Add Your First Note")

	_, err := h.run("notes", "add", s.ID, "--template", "--field", "Goal=Ship")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "lumina templates use")

	_, err = h.run("templates", "save", "--name", "  ", "--field", "Goal")
	require.Error(t, err)

	h.mustRun("templates", "save", "--name", "Intake", "--field", "Goal", "--field", "Blockers")
	app := h.app()
	app.Auth.Restore()
	require.NoError(t, app.Templates.Load(context.Background()))
	customs := app.Templates.Customs()
	require.Len(t, customs, 1)

	out = h.mustRun("templates", "use", customs[0].ID)
	assert.Contains(t, out, "Intake")

	out = h.mustRun("notes", "add", s.ID, "--template", "--field", "Goal=Land first client")
	assert.Contains(t, out, "Note saved")
	assert.Contains(t, out, "Land first client")
	assert.Contains(t, out, note.EmptyPlaceholder)

	out = h.mustRun("notes", s.ID)
	assert.Contains(t, out, "Intake")
	assert.NotContains(t, out, "Add Your First Note")

	out = h.mustRun("templates")
	assert.Contains(t, out, "Intake")
	assert.Contains(t, out, "template")
}

func TestFreeformNoteLifecycle(t *testing.T) {
	h := newHarness(t, false)
	h.mustRun("login")
	s := h.seedSession("Ben Ortiz", time.Now().Add(2*time.Hour))

	_, err := h.run("notes", "add", s.ID, "--text", "   ")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "note is empty")

	h.mustRun("notes", "add", s.ID, "--text", "Talked through the Q3 plan")

	app := h.app()
	app.Auth.Restore()
	list, err := app.API.Notes(context.Background(), s.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)

	out := h.mustRun("notes", "edit", s.ID, list[0].ID, "--text", "Q3 plan, revised")
	assert.Contains(t, out, "Q3 plan, revised")

	_, err = h.run("notes", "delete", s.ID, "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no note with that id")

	h.mustRun("notes", "delete", s.ID, list[0].ID)
	out = h.mustRun("notes", s.ID)
	assert.Contains(t, out, "Add Your First Note")
}

func TestSessionsCommands(t *testing.T) {
	h := newHarness(t, false)
	h.mustRun("login")
	first := h.seedSession("Ada Chen", time.Now().Add(48*time.Hour))
	second := h.seedSession("Ben Ortiz", time.Now().Add(72*time.Hour))

	out := h.mustRun("sessions", "--search", "ada")
	assert.Contains(t, out, "Ada Chen")
	assert.NotContains(t, out, "Ben Ortiz")

	out = h.mustRun("sessions", "cancel", first.ID)
	assert.Contains(t, out, "cancelled")

	out = h.mustRun("sessions", "--status", "upcoming")
	assert.Contains(t, out, "Ben Ortiz")
	assert.NotContains(t, out, "Ada Chen")

	_, err := h.run("sessions", "reschedule", second.ID, "--date", "next tuesday")
	require.Error(t, err)

	when := time.Now().Add(96 * time.Hour).Truncate(time.Minute)
	out = h.mustRun("sessions", "reschedule", second.ID, "--date", when.Format(time.RFC3339))
	assert.Contains(t, out, when.Local().Format(dateInputLayout))

	out = h.mustRun("sessions", second.ID)
	assert.Contains(t, out, "Ben Ortiz")

	_, err = h.run("sessions", "does-not-exist")
	require.Error(t, err)
	assert.Equal(t, "not found", err.Error())
}

func TestDashboardClientsAndReset(t *testing.T) {
	h := newHarness(t, true)
	h.mustRun("login")

	out := h.mustRun("dashboard")
	assert.Contains(t, out, "Active clients")

	out = h.mustRun("clients", "--status", "active")
	assert.Contains(t, out, "Maya Chen")
	assert.NotContains(t, out, "Ana Silva")

	out = h.mustRun("dev", "reset")
	assert.Contains(t, out, "Demo data restored.")
}

func TestParseDateFlag(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    time.Time
		wantErr bool
	}{
		{"empty", "", time.Time{}, false},
		{"rfc3339", "2026-10-19T09:00:00Z", time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC), false},
		{"local minutes", "2026-10-19 09:30", time.Date(2026, 10, 19, 9, 30, 0, 0, time.Local), false},
		{"local day", "2026-10-19", time.Date(2026, 10, 19, 0, 0, 0, 0, time.Local), false},
		{"garbage", "tomorrow", time.Time{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseDateFlag("date", tt.value)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %v", got)
		})
	}
}

func TestNoteFlagsInput(t *testing.T) {
	tests := []struct {
		name    string
		flags   noteFlags
		want    note.Input
		wantErr bool
	}{
		{"text only", noteFlags{text: "hi"}, note.Input{Text: "hi"}, false},
		{"fields", noteFlags{fields: []string{"Goal=Ship v2", " Next Steps =a=b"}},
			note.Input{Values: map[string]string{"Goal": "Ship v2", "Next Steps": "a=b"}}, false},
		{"missing separator", noteFlags{fields: []string{"Goal"}}, note.Input{}, true},
		{"blank label", noteFlags{fields: []string{" =x"}}, note.Input{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.flags.input()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
