package apiclient

import (
	"context"
	"net/http"
	"net/url"
	"time"
)

// ======================================================
// AUTH
// ======================================================

func (c *Client) Health(ctx context.Context) error {
	_, err := Request[map[string]any](ctx, c, http.MethodGet, "/health", nil)
	return err
}

func (c *Client) LoginWithOAuth(ctx context.Context, provider string) (AuthResponse, error) {
	return Request[AuthResponse](ctx, c, http.MethodPost, "/api/auth/oauth/"+url.PathEscape(provider), nil)
}

func (c *Client) Login(ctx context.Context, email, password string) (AuthResponse, error) {
	return Request[AuthResponse](ctx, c, http.MethodPost, "/api/auth/login",
		map[string]string{"email": email, "password": password})
}

func (c *Client) Logout(ctx context.Context) error {
	_, err := Request[struct{}](ctx, c, http.MethodPost, "/api/auth/logout", nil)
	return err
}

func (c *Client) Me(ctx context.Context) (Profile, error) {
	return Request[Profile](ctx, c, http.MethodGet, "/api/me", nil)
}

func (c *Client) Dashboard(ctx context.Context) (Dashboard, error) {
	return Request[Dashboard](ctx, c, http.MethodGet, "/api/dashboard", nil)
}

// ======================================================
// CLIENTS / SESSIONS
// ======================================================

type ClientQuery struct {
	Search   string
	Statuses []string
	Programs []string
}

func (q ClientQuery) encode() string {
	v := url.Values{}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	for _, s := range q.Statuses {
		v.Add("status", s)
	}
	for _, p := range q.Programs {
		v.Add("program", p)
	}
	return withQuery(v)
}

func (c *Client) Clients(ctx context.Context, q ClientQuery) ([]ClientRecord, error) {
	return Request[[]ClientRecord](ctx, c, http.MethodGet, "/api/clients"+q.encode(), nil)
}

func (c *Client) GetClient(ctx context.Context, id string) (ClientRecord, error) {
	return Request[ClientRecord](ctx, c, http.MethodGet, "/api/clients/"+url.PathEscape(id), nil)
}

type SessionQuery struct {
	Search    string
	Statuses  []string
	Locations []string
	Payments  []string
	From, To  time.Time
}

func (q SessionQuery) encode() string {
	v := url.Values{}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	for _, s := range q.Statuses {
		v.Add("status", s)
	}
	for _, l := range q.Locations {
		v.Add("location", l)
	}
	for _, p := range q.Payments {
		v.Add("payment", p)
	}
	if !q.From.IsZero() {
		v.Set("from", q.From.Format(time.RFC3339))
	}
	if !q.To.IsZero() {
		v.Set("to", q.To.Format(time.RFC3339))
	}
	return withQuery(v)
}

func (c *Client) Sessions(ctx context.Context, q SessionQuery) ([]Session, error) {
	return Request[[]Session](ctx, c, http.MethodGet, "/api/sessions"+q.encode(), nil)
}

func (c *Client) Session(ctx context.Context, id string) (Session, error) {
	return Request[Session](ctx, c, http.MethodGet, sessionPath(id), nil)
}

func (c *Client) CreateSession(ctx context.Context, in SessionInput) (Session, error) {
	return Request[Session](ctx, c, http.MethodPost, "/api/sessions", in)
}

func (c *Client) UpdateSession(ctx context.Context, id string, in SessionInput) (Session, error) {
	return Request[Session](ctx, c, http.MethodPut, sessionPath(id), in)
}

func (c *Client) CancelSession(ctx context.Context, id string) (Session, error) {
	return Request[Session](ctx, c, http.MethodPatch, sessionPath(id)+"/cancel", nil)
}

func (c *Client) RescheduleSession(ctx context.Context, id string, date time.Time) (Session, error) {
	return Request[Session](ctx, c, http.MethodPatch, sessionPath(id)+"/reschedule",
		map[string]time.Time{"date": date})
}

// ======================================================
// NOTES
// ======================================================

func (c *Client) Notes(ctx context.Context, sessionID string) ([]Note, error) {
	return Request[[]Note](ctx, c, http.MethodGet, sessionPath(sessionID)+"/notes", nil)
}

func (c *Client) CreateNote(ctx context.Context, sessionID string, in NoteInput) (Note, error) {
	return Request[Note](ctx, c, http.MethodPost, sessionPath(sessionID)+"/notes", in)
}

func (c *Client) UpdateNote(ctx context.Context, sessionID, noteID string, in NoteInput) (Note, error) {
	return Request[Note](ctx, c, http.MethodPut, notePath(sessionID, noteID), in)
}

func (c *Client) DeleteNote(ctx context.Context, sessionID, noteID string) error {
	_, err := Request[struct{}](ctx, c, http.MethodDelete, notePath(sessionID, noteID), nil)
	return err
}

// ======================================================
// TEMPLATES
// ======================================================

func (c *Client) TemplatePresets(ctx context.Context) ([]Template, error) {
	return Request[[]Template](ctx, c, http.MethodGet, "/api/templates/presets", nil)
}

func (c *Client) CustomTemplates(ctx context.Context) ([]Template, error) {
	return Request[[]Template](ctx, c, http.MethodGet, "/api/templates/custom", nil)
}

func (c *Client) CreateCustomTemplate(ctx context.Context, name string, fields []string) (Template, error) {
	return Request[Template](ctx, c, http.MethodPost, "/api/templates/custom", templateBody(name, fields))
}

func (c *Client) UpdateCustomTemplate(ctx context.Context, id, name string, fields []string) (Template, error) {
	return Request[Template](ctx, c, http.MethodPut, "/api/templates/custom/"+url.PathEscape(id), templateBody(name, fields))
}

func (c *Client) DeleteCustomTemplate(ctx context.Context, id string) error {
	_, err := Request[struct{}](ctx, c, http.MethodDelete, "/api/templates/custom/"+url.PathEscape(id), nil)
	return err
}

func (c *Client) ActiveTemplate(ctx context.Context) (*Template, error) {
	out, err := Request[struct {
		Template *Template `json:"template"`
	}](ctx, c, http.MethodGet, "/api/templates/active", nil)
	return out.Template, err
}

func (c *Client) NoteSettings(ctx context.Context) (NoteSettings, error) {
	return Request[NoteSettings](ctx, c, http.MethodGet, "/api/settings/notes", nil)
}

func (c *Client) UpdateNoteSettings(ctx context.Context, s NoteSettings) (NoteSettings, error) {
	return Request[NoteSettings](ctx, c, http.MethodPut, "/api/settings/notes", s)
}

// ======================================================
// BILLING / DEV
// ======================================================

func (c *Client) Invoices(ctx context.Context, statuses ...string) ([]Invoice, error) {
	v := url.Values{}
	for _, s := range statuses {
		v.Add("status", s)
	}
	return Request[[]Invoice](ctx, c, http.MethodGet, "/api/invoices"+withQuery(v), nil)
}

func (c *Client) BillingSummary(ctx context.Context) (BillingSummary, error) {
	return Request[BillingSummary](ctx, c, http.MethodGet, "/api/billing/summary", nil)
}

func (c *Client) Checkout(ctx context.Context, invoiceID string) (CheckoutLink, error) {
	return Request[CheckoutLink](ctx, c, http.MethodPost, "/api/invoices/"+url.PathEscape(invoiceID)+"/checkout", nil)
}

func (c *Client) DevReset(ctx context.Context) (ResetResult, error) {
	return Request[ResetResult](ctx, c, http.MethodPost, "/api/dev/reset", nil)
}

// ======================================================
// HELPERS
// ======================================================

func sessionPath(id string) string {
	return "/api/sessions/" + url.PathEscape(id)
}

func notePath(sessionID, noteID string) string {
	return sessionPath(sessionID) + "/notes/" + url.PathEscape(noteID)
}

func templateBody(name string, fields []string) map[string]any {
	return map[string]any{"name": name, "fields": fields}
}

func withQuery(v url.Values) string {
	if len(v) == 0 {
		return ""
	}
	return "?" + v.Encode()
}
