package apiclient

import (
	"time"

	"github.com/luminacoach/lumina/internal/domain/note"
	"github.com/luminacoach/lumina/internal/domain/template"
)

type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type AuthResponse struct {
	AccessToken string `json:"accessToken"`
	Provider    string `json:"provider,omitempty"`
	User        User   `json:"user"`
}

type Profile struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	Email              string `json:"email"`
	PracticeName       string `json:"practiceName"`
	Timezone           string `json:"timezone"`
	AvatarURL          string `json:"avatarUrl"`
	TemplateMode       string `json:"templateMode"`
	SelectedTemplateID string `json:"selectedTemplateId"`
}

type Template = template.Template

type NoteSettings struct {
	TemplateMode       template.Mode `json:"templateMode"`
	SelectedTemplateID string        `json:"selectedTemplateId"`
}

type Note struct {
	ID           string       `json:"id"`
	SessionID    string       `json:"sessionId"`
	Content      string       `json:"content"`
	Timestamp    string       `json:"timestamp"`
	IsTemplate   bool         `json:"isTemplate"`
	TemplateID   string       `json:"templateId,omitempty"`
	TemplateName string       `json:"templateName,omitempty"`
	Fields       []string     `json:"fields,omitempty"`
	Entries      []note.Entry `json:"entries,omitempty"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}

// NoteInput creates or edits a note. Text is used by freeform notes, Values
// by template notes.
type NoteInput struct {
	IsTemplate bool              `json:"isTemplate,omitempty"`
	TemplateID string            `json:"templateId,omitempty"`
	Text       string            `json:"text,omitempty"`
	Values     map[string]string `json:"values,omitempty"`
}

type Session struct {
	ID           string  `json:"id"`
	ClientID     string  `json:"clientId"`
	Client       string  `json:"client"`
	EngagementID *string `json:"engagementId,omitempty"`

	Date        time.Time `json:"date"`
	Duration    int       `json:"duration"`
	Location    string    `json:"location"`
	Status      string    `json:"status"`
	SessionType string    `json:"sessionType"`
	Focus       string    `json:"focus"`

	PaymentStatus    string `json:"paymentStatus"`
	BillingSource    string `json:"billingSource"`
	PackageRemaining *int   `json:"packageRemaining"`

	Notes []Note `json:"notes"`
}

type SessionInput struct {
	ClientID         string    `json:"clientId"`
	EngagementID     *string   `json:"engagementId,omitempty"`
	Date             time.Time `json:"date"`
	Duration         int       `json:"duration,omitempty"`
	Location         string    `json:"location,omitempty"`
	Status           string    `json:"status,omitempty"`
	SessionType      string    `json:"sessionType,omitempty"`
	Focus            string    `json:"focus,omitempty"`
	PaymentStatus    string    `json:"paymentStatus,omitempty"`
	BillingSource    string    `json:"billingSource,omitempty"`
	PackageRemaining *int      `json:"packageRemaining,omitempty"`
}

type Engagement struct {
	ID            string    `json:"id"`
	PackageName   string    `json:"packageName"`
	SessionsTotal int       `json:"sessionsTotal"`
	SessionsUsed  int       `json:"sessionsUsed"`
	Remaining     int       `json:"remaining"`
	Price         float64   `json:"price"`
	PurchasedAt   time.Time `json:"purchasedAt"`
}

// ClientRecord is a coaching client, named apart from the API Client.
type ClientRecord struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Email       string       `json:"email"`
	Phone       string       `json:"phone"`
	Program     string       `json:"program"`
	Status      string       `json:"status"`
	Notes       string       `json:"notes"`
	StartDate   *time.Time   `json:"startDate"`
	Engagements []Engagement `json:"engagements,omitempty"`
	Sessions    []Session    `json:"sessions,omitempty"`
}

type BillingSummary struct {
	Paid        float64 `json:"paid"`
	Pending     float64 `json:"pending"`
	Overdue     float64 `json:"overdue"`
	Outstanding float64 `json:"outstanding"`
	Total       float64 `json:"total"`
	Count       int     `json:"count"`
}

type Dashboard struct {
	Metrics struct {
		ActiveClients      int     `json:"activeClients"`
		TotalClients       int     `json:"totalClients"`
		UpcomingSessions   int     `json:"upcomingSessions"`
		SessionsThisWeek   int     `json:"sessionsThisWeek"`
		CompletedThisMonth int     `json:"completedThisMonth"`
		Revenue            float64 `json:"revenue"`
		Outstanding        float64 `json:"outstanding"`
		NotesThisMonth     int     `json:"notesThisMonth"`
	} `json:"metrics"`
	Billing          BillingSummary `json:"billing"`
	UpcomingSessions []Session      `json:"upcomingSessions"`
	RecentClients    []ClientRecord `json:"recentClients"`
}

type Invoice struct {
	ID          string    `json:"id"`
	ClientID    string    `json:"clientId"`
	ClientName  string    `json:"clientName"`
	SessionID   *string   `json:"sessionId"`
	Description string    `json:"description"`
	Amount      float64   `json:"amount"`
	Currency    string    `json:"currency"`
	Status      string    `json:"status"`
	IssuedAt    time.Time `json:"issuedAt"`
	DueDate     time.Time `json:"dueDate"`
	CheckoutURL string    `json:"checkoutUrl,omitempty"`
}

type CheckoutLink struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

type ResetResult struct {
	Message string   `json:"message"`
	Cleared []string `json:"cleared"`
}
