package dto

import (
	"time"

	"github.com/luminacoach/lumina/internal/domain/note"
	domain "github.com/luminacoach/lumina/internal/domain/session"
	"github.com/luminacoach/lumina/internal/models"
)

type SessionDTO struct {
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

	Notes []NoteDTO `json:"notes"`
}

type NoteDTO struct {
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

func NewSessionDTO(s models.Session, loc *time.Location) SessionDTO {
	status := s.Status
	if st, err := domain.ParseStatus(status); err == nil {
		status = string(st)
	}

	out := SessionDTO{
		ID:               s.ID,
		ClientID:         s.ClientID,
		Client:           s.Client.Name,
		EngagementID:     s.EngagementID,
		Date:             s.Date,
		Duration:         s.Duration,
		Location:         s.Location,
		Status:           status,
		SessionType:      s.SessionType,
		Focus:            s.Focus,
		PaymentStatus:    s.PaymentStatus,
		BillingSource:    s.BillingSource,
		PackageRemaining: domain.PackageRemaining(&s),
		Notes:            NewNoteDTOs(s.Notes, loc),
	}
	return out
}

func NewSessionDTOs(list []models.Session, loc *time.Location) []SessionDTO {
	out := make([]SessionDTO, 0, len(list))
	for _, s := range list {
		out = append(out, NewSessionDTO(s, loc))
	}
	return out
}

// SessionFields exposes a DTO to the list filter.
func SessionFields(s SessionDTO) domain.Fields {
	return domain.Fields{
		ID:            s.ID,
		Client:        s.Client,
		SessionType:   s.SessionType,
		Focus:         s.Focus,
		Status:        s.Status,
		Location:      s.Location,
		PaymentStatus: s.PaymentStatus,
		Date:          s.Date,
	}
}

func NewNoteDTO(n models.SessionNote, loc *time.Location) NoteDTO {
	out := NoteDTO{
		ID:           n.ID,
		SessionID:    n.SessionID,
		Content:      n.Content,
		Timestamp:    note.Timestamp(n.UpdatedAt, loc),
		IsTemplate:   n.IsTemplate,
		TemplateID:   n.TemplateID,
		TemplateName: n.TemplateName,
		Fields:       n.Fields,
		CreatedAt:    n.CreatedAt,
		UpdatedAt:    n.UpdatedAt,
	}
	if n.IsTemplate {
		if entries, err := note.Render(n.Fields, n.Content); err == nil {
			out.Entries = entries
		}
	}
	return out
}

func NewNoteDTOs(list []models.SessionNote, loc *time.Location) []NoteDTO {
	out := make([]NoteDTO, 0, len(list))
	for _, n := range list {
		out = append(out, NewNoteDTO(n, loc))
	}
	return out
}
