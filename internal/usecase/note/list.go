package note

import (
	"context"
	"time"

	domain "github.com/luminacoach/lumina/internal/domain/note"
	"github.com/luminacoach/lumina/internal/dto"
	"github.com/luminacoach/lumina/internal/models"
	"github.com/luminacoach/lumina/internal/timezone"
)

type ListNotes struct {
	repo domain.Repository
}

func NewListNotes(repo domain.Repository) *ListNotes {
	return &ListNotes{repo: repo}
}

// Execute returns the session's notes, most recent first.
func (uc *ListNotes) Execute(
	ctx context.Context,
	providerID string,
	sessionID string,
) ([]dto.NoteDTO, error) {

	provider, err := uc.repo.GetProvider(ctx, providerID)
	if err != nil {
		return nil, err
	}

	if _, err := uc.repo.GetSession(ctx, providerID, sessionID); err != nil {
		return nil, err
	}

	notes, err := uc.repo.ListNotes(ctx, providerID, sessionID)
	if err != nil {
		return nil, err
	}

	domain.NewestFirst(notes,
		func(n models.SessionNote) time.Time { return n.CreatedAt },
		func(n models.SessionNote) string { return n.ID },
	)

	return dto.NewNoteDTOs(notes, timezone.Location(provider.Timezone)), nil
}
