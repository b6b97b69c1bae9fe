package note

import (
	"context"
	"time"

	"github.com/luminacoach/lumina/internal/audit"
	domain "github.com/luminacoach/lumina/internal/domain/note"
	tmpl "github.com/luminacoach/lumina/internal/domain/template"
	"github.com/luminacoach/lumina/internal/dto"
	"github.com/luminacoach/lumina/internal/httperr"
	"github.com/luminacoach/lumina/internal/models"
	"github.com/luminacoach/lumina/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

// CreateNoteInput picks the note's shape. With IsTemplate set, TemplateID
// names the template; when it is empty the provider's active template is
// used.
type CreateNoteInput struct {
	ProviderID string
	SessionID  string

	IsTemplate bool
	TemplateID string

	domain.Input
}

// ======================================================
// USE CASE
// ======================================================

type CreateNote struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	now   func() time.Time
}

func NewCreateNote(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CreateNote {
	return &CreateNote{
		repo:  repo,
		audit: audit,
		now:   time.Now,
	}
}

func (uc *CreateNote) Execute(
	ctx context.Context,
	in CreateNoteInput,
) (*dto.NoteDTO, error) {

	provider, err := uc.repo.GetProvider(ctx, in.ProviderID)
	if err != nil {
		return nil, err
	}

	if _, err := uc.repo.GetSession(ctx, in.ProviderID, in.SessionID); err != nil {
		return nil, err
	}

	shape := domain.Freeform
	if in.IsTemplate {
		t, err := uc.resolveTemplate(ctx, provider, in.TemplateID)
		if err != nil {
			return nil, err
		}
		shape = domain.ShapeOf(t)
	}

	content, err := domain.Compose(shape, in.Input)
	if err != nil {
		return nil, err
	}

	now := uc.now().UTC()
	n := &models.SessionNote{
		ProviderID:   in.ProviderID,
		SessionID:    in.SessionID,
		Content:      content,
		IsTemplate:   shape.IsTemplate,
		TemplateID:   shape.TemplateID,
		TemplateName: shape.TemplateName,
		Fields:       shape.Fields,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := uc.repo.CreateNote(ctx, n); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ProviderID: in.ProviderID,
		Action:     "note_created",
		Entity:     "session_note",
		EntityID:   &n.ID,
		Metadata:   map[string]any{"sessionId": in.SessionID, "isTemplate": n.IsTemplate},
	})

	out := dto.NewNoteDTO(*n, timezone.Location(provider.Timezone))
	return &out, nil
}

func (uc *CreateNote) resolveTemplate(
	ctx context.Context,
	provider *models.Provider,
	id string,
) (*tmpl.Template, error) {

	if id == "" {
		if provider.TemplateMode != string(tmpl.ModeTemplate) || provider.SelectedTemplateID == "" {
			return nil, httperr.ErrBusiness("template_not_selected")
		}
		id = provider.SelectedTemplateID
	}

	if t := tmpl.Find(tmpl.Presets(), id); t != nil {
		return t, nil
	}

	m, err := uc.repo.GetCustomTemplate(ctx, provider.ID, id)
	if err != nil {
		return nil, err
	}
	t := tmpl.FromModel(*m)
	return &t, nil
}
