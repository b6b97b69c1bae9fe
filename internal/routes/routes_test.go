package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/luminacoach/lumina/internal/config"
	"github.com/luminacoach/lumina/internal/db"
	"github.com/luminacoach/lumina/internal/domain/billing"
	"github.com/luminacoach/lumina/internal/models"
	"github.com/luminacoach/lumina/internal/tokenstore"
)

type authBody struct {
	AccessToken string `json:"accessToken"`
	User        struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	} `json:"user"`
}

type testServer struct {
	t      *testing.T
	engine *gin.Engine
	db     *gorm.DB
	token  string
}

func newTestServer(t *testing.T, opts ...func(*Deps)) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	gdb := db.NewTestDB(t)
	deps := Deps{
		DB: gdb,
		Config: &config.Config{
			JWTSecret:      "test-secret",
			TokenTTL:       time.Hour,
			OAuthProviders: []string{"google", "microsoft"},
			PublicBaseURL:  "http://localhost:5173",
		},
		Tokens:   tokenstore.NewMemory(),
		Registry: prometheus.NewRegistry(),
	}
	for _, o := range opts {
		o(&deps)
	}

	r := gin.New()
	RegisterRoutes(r, deps)
	return &testServer{t: t, engine: r, db: gdb}
}

func (s *testServer) do(method, path string, body any) *httptest.ResponseRecorder {
	s.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}

	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func (s *testServer) register() {
	s.t.Helper()
	w := s.do(http.MethodPost, "/api/auth/register", gin.H{
		"name": "Dana Coach", "email": "dana@example.com", "password": "s3cret-pass",
	})
	require.Equal(s.t, http.StatusCreated, w.Code, w.Body.String())
	s.token = decode[map[string]any](s.t, w)["accessToken"].(string)
}

func (s *testServer) createClient(name string) string {
	s.t.Helper()
	w := s.do(http.MethodPost, "/api/clients", gin.H{"name": name, "program": "Leadership"})
	require.Equal(s.t, http.StatusCreated, w.Code, w.Body.String())
	return decode[map[string]any](s.t, w)["id"].(string)
}

func (s *testServer) createSession(clientID string, date time.Time, location string) string {
	s.t.Helper()
	w := s.do(http.MethodPost, "/api/sessions", gin.H{
		"clientId": clientID, "date": date, "location": location,
		"sessionType": "1:1 Coaching", "focus": "Goals", "paymentStatus": "pending",
	})
	require.Equal(s.t, http.StatusCreated, w.Code, w.Body.String())
	return decode[map[string]any](s.t, w)["id"].(string)
}

// ======================================================
// AUTH
// ======================================================

func TestHealthAndMetrics(t *testing.T) {
	s := newTestServer(t)

	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/health", nil).Code)

	w := s.do(http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "lumina_http_requests_total")
}

func TestAuthRoundTrip(t *testing.T) {
	s := newTestServer(t)

	assert.Equal(t, http.StatusUnauthorized, s.do(http.MethodGet, "/api/me", nil).Code)

	s.register()

	w := s.do(http.MethodGet, "/api/me", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "dana@example.com", decode[map[string]any](t, w)["email"])

	s.token = ""
	w = s.do(http.MethodPost, "/api/auth/login", gin.H{"email": "DANA@example.com", "password": "s3cret-pass"})
	require.Equal(t, http.StatusOK, w.Code)
	login := decode[map[string]any](t, w)
	s.token = login["accessToken"].(string)
	assert.Equal(t, "Dana Coach", login["user"].(map[string]any)["name"])

	assert.Equal(t, http.StatusNoContent, s.do(http.MethodPost, "/api/auth/logout", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, s.do(http.MethodGet, "/api/me", nil).Code)
}

func TestLoginFailuresAreGeneric(t *testing.T) {
	s := newTestServer(t)
	s.register()
	s.token = ""

	for _, body := range []gin.H{
		{"email": "dana@example.com", "password": "wrong-pass"},
		{"email": "nobody@example.com", "password": "s3cret-pass"},
	} {
		w := s.do(http.MethodPost, "/api/auth/login", body)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Invalid credentials", decode[map[string]any](t, w)["message"])
	}

	w := s.do(http.MethodPost, "/api/auth/register", gin.H{
		"name": "Again", "email": "dana@example.com", "password": "another-pass",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestRegisterRejectsUnresolvableDomain(t *testing.T) {
	s := newTestServer(t, func(d *Deps) { d.Config.VerifyEmailDomains = true })

	w := s.do(http.MethodPost, "/api/auth/register", gin.H{
		"name": "Nobody", "email": "coach@lumina.invalid", "password": "s3cret-pass",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_email_domain", decode[map[string]any](t, w)["error_code"])
}

func TestOAuthLogin(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodPost, "/api/auth/oauth/google", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	out := decode[map[string]any](t, w)
	assert.Equal(t, "google", out["provider"])
	assert.NotEmpty(t, out["accessToken"])
	first := out["user"].(map[string]any)["id"]

	w = s.do(http.MethodPost, "/api/auth/oauth/google", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, first, decode[map[string]any](t, w)["user"].(map[string]any)["id"])

	assert.Equal(t, http.StatusBadRequest, s.do(http.MethodPost, "/api/auth/oauth/myspace", nil).Code)
}

func TestOAuthCannotClaimExistingAccounts(t *testing.T) {
	s := newTestServer(t)
	s.register()
	dana := decode[map[string]any](t, s.do(http.MethodGet, "/api/me", nil))["id"]
	s.token = ""

	// Outside DEV_MODE the body is ignored and the per-provider identity is used.
	w := s.do(http.MethodPost, "/api/auth/oauth/google", gin.H{"email": "dana@example.com"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	out := decode[authBody](t, w)
	assert.NotEqual(t, dana, out.User.ID)
	assert.Equal(t, "coach+google@lumina.local", out.User.Email)

	s.token = out.AccessToken
	me := decode[map[string]any](t, s.do(http.MethodGet, "/api/me", nil))
	assert.NotEqual(t, dana, me["id"])

	dev := newTestServer(t, func(d *Deps) { d.Config.DevMode = true })
	dev.register()
	dev.token = ""

	tests := []struct {
		name     string
		provider string
		body     gin.H
	}{
		{"password account", "google", gin.H{"email": "dana@example.com"}},
		{"other provider", "microsoft", gin.H{"email": "coach+google@lumina.local"}},
	}
	require.Equal(t, http.StatusOK, dev.do(http.MethodPost, "/api/auth/oauth/google", nil).Code)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := dev.do(http.MethodPost, "/api/auth/oauth/"+tt.provider, tt.body)
			assert.Equal(t, http.StatusConflict, w.Code)
			assert.Equal(t, "account_exists", decode[map[string]any](t, w)["error_code"])
		})
	}
}

func TestRegisterFailsClosedOnDatabaseError(t *testing.T) {
	s := newTestServer(t)
	require.NoError(t, db.Close(s.db))

	w := s.do(http.MethodPost, "/api/auth/register", gin.H{
		"name": "Dana Coach", "email": "dana@example.com", "password": "s3cret-pass",
	})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "failed_to_check_email", decode[map[string]any](t, w)["error_code"])
}

// ======================================================
// NOTES
// ======================================================

func TestTemplateNoteLifecycle(t *testing.T) {
	s := newTestServer(t)
	s.register()

	w := s.do(http.MethodPost, "/api/templates/custom", gin.H{"name": "Intake", "fields": []string{"Goal", "Blockers"}})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	templateID := decode[map[string]any](t, w)["id"].(string)

	w = s.do(http.MethodPut, "/api/settings/notes", gin.H{"templateMode": "template", "selectedTemplateId": templateID})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.do(http.MethodGet, "/api/templates/active", nil)
	require.Equal(t, http.StatusOK, w.Code)
	active := decode[map[string]map[string]any](t, w)["template"]
	assert.Equal(t, "Intake", active["name"])

	sessionID := s.createSession(s.createClient("Ada"), time.Now().Add(48*time.Hour), "zoom")
	notesPath := "/api/sessions/" + sessionID + "/notes"

	w = s.do(http.MethodPost, notesPath, gin.H{"isTemplate": true, "values": gin.H{"Goal": "Ship v1"}})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	noteID := decode[map[string]any](t, w)["id"].(string)

	w = s.do(http.MethodGet, notesPath, nil)
	require.Equal(t, http.StatusOK, w.Code)
	notes := decode[[]struct {
		TemplateName string `json:"templateName"`
		Entries      []struct {
			Field string `json:"field"`
			Value string `json:"value"`
		} `json:"entries"`
	}](t, w)
	require.Len(t, notes, 1)
	assert.Equal(t, "Intake", notes[0].TemplateName)
	require.Len(t, notes[0].Entries, 2)
	assert.Equal(t, "Goal", notes[0].Entries[0].Field)
	assert.Equal(t, "Ship v1", notes[0].Entries[0].Value)
	assert.Equal(t, "Blockers", notes[0].Entries[1].Field)
	assert.Equal(t, "No entry", notes[0].Entries[1].Value)

	assert.Equal(t, http.StatusNoContent, s.do(http.MethodDelete, notesPath+"/"+noteID, nil).Code)

	w = s.do(http.MethodGet, notesPath, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())
}

func TestTemplateEditsKeepNoteShape(t *testing.T) {
	s := newTestServer(t)
	s.register()

	w := s.do(http.MethodPost, "/api/templates/custom", gin.H{"name": "Intake", "fields": []string{"Goal", "Blockers"}})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	templateID := decode[map[string]any](t, w)["id"].(string)

	notesPath := "/api/sessions/" + s.createSession(s.createClient("Ada"), time.Now(), "zoom") + "/notes"
	w = s.do(http.MethodPost, notesPath, gin.H{"isTemplate": true, "templateId": templateID, "values": gin.H{"Goal": "Ship v1"}})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	noteID := decode[map[string]any](t, w)["id"].(string)

	w = s.do(http.MethodPut, "/api/templates/custom/"+templateID, gin.H{"name": "Intake v2", "fields": []string{"Energy", "Wins"}})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.do(http.MethodPut, notesPath+"/"+noteID, gin.H{"values": gin.H{"Goal": "Ship v2", "Blockers": "Hiring", "Energy": "High"}})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	updated := decode[struct {
		TemplateName string   `json:"templateName"`
		Fields       []string `json:"fields"`
		Entries      []struct {
			Field string `json:"field"`
			Value string `json:"value"`
		} `json:"entries"`
	}](t, w)
	assert.Equal(t, "Intake", updated.TemplateName)
	assert.Equal(t, []string{"Goal", "Blockers"}, updated.Fields)
	require.Len(t, updated.Entries, 2)
	assert.Equal(t, "Ship v2", updated.Entries[0].Value)
	assert.Equal(t, "Hiring", updated.Entries[1].Value)
}

func TestEmptyNotesAreRejected(t *testing.T) {
	s := newTestServer(t)
	s.register()
	notesPath := "/api/sessions/" + s.createSession(s.createClient("Ada"), time.Now(), "office") + "/notes"

	w := s.do(http.MethodPost, notesPath, gin.H{"text": "   "})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "empty_note", decode[map[string]any](t, w)["error_code"])

	w = s.do(http.MethodPost, notesPath, gin.H{"isTemplate": true, "templateId": "preset-grow", "values": gin.H{"Goal": " "}})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodGet, notesPath, nil)
	assert.JSONEq(t, "[]", w.Body.String())
}

func TestPresetsAreReadOnly(t *testing.T) {
	s := newTestServer(t)
	s.register()

	w := s.do(http.MethodGet, "/api/templates/presets", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, decode[[]map[string]any](t, w))

	w = s.do(http.MethodPut, "/api/templates/custom/preset-grow", gin.H{"name": "Mine", "fields": []string{"A"}})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, http.StatusForbidden, s.do(http.MethodDelete, "/api/templates/custom/preset-grow", nil).Code)
}

// ======================================================
// SESSIONS
// ======================================================

func TestSessionFiltersAndState(t *testing.T) {
	s := newTestServer(t)
	s.register()

	ada := s.createClient("Ada")
	bo := s.createClient("Bo")
	base := time.Now().Add(24 * time.Hour).UTC().Truncate(time.Second)

	first := s.createSession(ada, base, "zoom")
	s.createSession(bo, base.Add(time.Hour), "office")
	third := s.createSession(bo, base.Add(2*time.Hour), "zoom")

	w := s.do(http.MethodPatch, "/api/sessions/"+third+"/cancel", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "cancelled", decode[map[string]any](t, w)["status"])
	assert.Equal(t, http.StatusConflict, s.do(http.MethodPatch, "/api/sessions/"+third+"/cancel", nil).Code)

	w = s.do(http.MethodGet, "/api/sessions?location=zoom&status=upcoming", nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[[]map[string]any](t, w)
	require.Len(t, list, 1)
	assert.Equal(t, first, list[0]["id"])

	w = s.do(http.MethodGet, "/api/sessions?search=bo&location=zoom,office", nil)
	assert.Len(t, decode[[]map[string]any](t, w), 2)

	w = s.do(http.MethodPatch, "/api/sessions/"+third+"/reschedule", gin.H{"date": base.Add(72 * time.Hour)})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "upcoming", decode[map[string]any](t, w)["status"])

	w = s.do(http.MethodGet, "/api/sessions", nil)
	ids := []string{}
	for _, it := range decode[[]map[string]any](t, w) {
		ids = append(ids, it["id"].(string))
	}
	assert.Equal(t, third, ids[len(ids)-1])

	assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, "/api/sessions/missing", nil).Code)
}

func TestAuditLogFilters(t *testing.T) {
	s := newTestServer(t)
	s.register()

	ada := s.createClient("Ada")
	id := s.createSession(ada, time.Now().Add(24*time.Hour), "zoom")
	require.Equal(t, http.StatusOK, s.do(http.MethodPatch, "/api/sessions/"+id+"/cancel", nil).Code)

	type page struct {
		Total int64             `json:"total"`
		Items []models.AuditLog `json:"items"`
	}

	w := s.do(http.MethodGet, "/api/audit-logs?entity=session", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	got := decode[page](t, w)
	assert.EqualValues(t, 2, got.Total)
	assert.Equal(t, "session_cancelled", got.Items[0].Action)

	w = s.do(http.MethodGet, "/api/audit-logs?action=client_created&action=session_created&limit=1", nil)
	got = decode[page](t, w)
	assert.EqualValues(t, 2, got.Total)
	assert.Len(t, got.Items, 1)

	w = s.do(http.MethodGet, "/api/audit-logs?entityId="+id, nil)
	assert.EqualValues(t, 2, decode[page](t, w).Total)

	assert.Equal(t, http.StatusBadRequest, s.do(http.MethodGet, "/api/audit-logs?limit=500", nil).Code)
}

func TestClientDetailIncludesSessions(t *testing.T) {
	s := newTestServer(t)
	s.register()

	ada := s.createClient("Ada")
	s.createSession(ada, time.Now().Add(time.Hour), "phone")

	w := s.do(http.MethodGet, "/api/clients/"+ada, nil)
	require.Equal(t, http.StatusOK, w.Code)
	out := decode[map[string]any](t, w)
	assert.Len(t, out["sessions"], 1)

	w = s.do(http.MethodGet, "/api/clients?status=paused", nil)
	assert.JSONEq(t, "[]", w.Body.String())

	w = s.do(http.MethodGet, "/api/dashboard", nil)
	require.Equal(t, http.StatusOK, w.Code)
	dash := decode[struct {
		Metrics          map[string]any   `json:"metrics"`
		UpcomingSessions []map[string]any `json:"upcomingSessions"`
	}](t, w)
	assert.EqualValues(t, 1, dash.Metrics["activeClients"])
	assert.EqualValues(t, 1, dash.Metrics["upcomingSessions"])
	require.Len(t, dash.UpcomingSessions, 1)
	assert.Equal(t, "Ada", dash.UpcomingSessions[0]["client"])
}

func TestClientProgramFilterKeepsCommas(t *testing.T) {
	s := newTestServer(t)
	s.register()

	w := s.do(http.MethodPost, "/api/clients", gin.H{"name": "Ada", "program": "Leadership, Executive"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	s.createClient("Grace")

	w = s.do(http.MethodGet, "/api/clients?program="+url.QueryEscape("Leadership, Executive"), nil)
	require.Equal(t, http.StatusOK, w.Code)
	clients := decode[[]map[string]any](t, w)
	require.Len(t, clients, 1)
	assert.Equal(t, "Ada", clients[0]["name"])

	w = s.do(http.MethodGet, "/api/clients?program=Leadership&status=active,paused", nil)
	require.Equal(t, http.StatusOK, w.Code)
	clients = decode[[]map[string]any](t, w)
	require.Len(t, clients, 1)
	assert.Equal(t, "Grace", clients[0]["name"])
}

// ======================================================
// BILLING / DEV
// ======================================================

type fakeGateway struct{ calls int }

func (g *fakeGateway) CreateCheckout(_ context.Context, req billing.CheckoutRequest) (*billing.CheckoutLink, error) {
	g.calls++
	return &billing.CheckoutLink{ID: "pref-1", URL: "https://pay.example/" + req.InvoiceID}, nil
}

func TestCheckout(t *testing.T) {
	gw := &fakeGateway{}
	s := newTestServer(t, func(d *Deps) { d.Payments = gw })
	s.register()

	var provider models.Provider
	require.NoError(t, s.db.First(&provider).Error)
	clientID := s.createClient("Ada")

	pending := models.Invoice{ProviderID: provider.ID, ClientID: clientID, Amount: 150, Currency: "USD", Status: "pending", IssuedAt: time.Now()}
	paid := models.Invoice{ProviderID: provider.ID, ClientID: clientID, Amount: 90, Currency: "USD", Status: "paid", IssuedAt: time.Now()}
	require.NoError(t, s.db.Omit("Client").Create(&pending).Error)
	require.NoError(t, s.db.Omit("Client").Create(&paid).Error)

	w := s.do(http.MethodPost, "/api/invoices/"+pending.ID+"/checkout", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "https://pay.example/"+pending.ID, decode[map[string]any](t, w)["url"])

	assert.Equal(t, http.StatusConflict, s.do(http.MethodPost, "/api/invoices/"+paid.ID+"/checkout", nil).Code)
	assert.Equal(t, 1, gw.calls)

	w = s.do(http.MethodGet, "/api/billing/summary", nil)
	summary := decode[billing.Summary](t, w)
	assert.Equal(t, 90.0, summary.Paid)
	assert.Equal(t, 150.0, summary.Outstanding)

	w = s.do(http.MethodGet, "/api/invoices?status=paid", nil)
	assert.Len(t, decode[[]map[string]any](t, w), 1)
}

func TestCheckoutDisabled(t *testing.T) {
	s := newTestServer(t)
	s.register()

	w := s.do(http.MethodPost, "/api/invoices/any/checkout", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, http.StatusServiceUnavailable, s.do(http.MethodPost, "/api/me/avatar", nil).Code)
}

func TestDevReset(t *testing.T) {
	s := newTestServer(t)
	s.register()
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodPost, "/api/dev/reset", nil).Code)

	s = newTestServer(t, func(d *Deps) { d.Config.DevMode = true })
	s.register()
	s.createClient("Temporary")

	w := s.do(http.MethodPost, "/api/dev/reset", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	out := decode[map[string]any](t, w)
	assert.Contains(t, out["cleared"], "notes")

	w = s.do(http.MethodGet, "/api/clients?search=temporary", nil)
	assert.JSONEq(t, "[]", w.Body.String())
	w = s.do(http.MethodGet, "/api/clients", nil)
	assert.NotEmpty(t, decode[[]map[string]any](t, w))

	w = s.do(http.MethodGet, "/api/audit-logs", nil)
	require.Equal(t, http.StatusOK, w.Code)
}
