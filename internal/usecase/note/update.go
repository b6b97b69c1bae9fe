package note

import (
	"context"
	"time"

	"github.com/luminacoach/lumina/internal/audit"
	domain "github.com/luminacoach/lumina/internal/domain/note"
	"github.com/luminacoach/lumina/internal/dto"
	"github.com/luminacoach/lumina/internal/timezone"
)

// UpdateNote rewrites a note's content using the note's own shape. The
// caller's current template selection plays no part, and a template edited
// since the note was written does not change the note's fields.
type UpdateNote struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	now   func() time.Time
}

func NewUpdateNote(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *UpdateNote {
	return &UpdateNote{
		repo:  repo,
		audit: audit,
		now:   time.Now,
	}
}

func (uc *UpdateNote) Execute(
	ctx context.Context,
	providerID string,
	sessionID string,
	noteID string,
	in domain.Input,
) (*dto.NoteDTO, error) {

	provider, err := uc.repo.GetProvider(ctx, providerID)
	if err != nil {
		return nil, err
	}

	n, err := uc.repo.GetNote(ctx, providerID, sessionID, noteID)
	if err != nil {
		return nil, err
	}

	shape := domain.Shape{
		IsTemplate:   n.IsTemplate,
		TemplateID:   n.TemplateID,
		TemplateName: n.TemplateName,
		Fields:       n.Fields,
	}

	content, err := domain.Compose(shape, in)
	if err != nil {
		return nil, err
	}

	n.Content = content
	n.UpdatedAt = uc.now().UTC()

	if err := uc.repo.UpdateNote(ctx, n); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ProviderID: providerID,
		Action:     "note_updated",
		Entity:     "session_note",
		EntityID:   &n.ID,
	})

	out := dto.NewNoteDTO(*n, timezone.Location(provider.Timezone))
	return &out, nil
}
