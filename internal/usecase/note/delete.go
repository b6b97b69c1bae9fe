package note

import (
	"context"

	"github.com/luminacoach/lumina/internal/audit"
	domain "github.com/luminacoach/lumina/internal/domain/note"
)

type DeleteNote struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewDeleteNote(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *DeleteNote {
	return &DeleteNote{
		repo:  repo,
		audit: audit,
	}
}

func (uc *DeleteNote) Execute(
	ctx context.Context,
	providerID string,
	sessionID string,
	noteID string,
) error {

	if err := uc.repo.DeleteNote(ctx, providerID, sessionID, noteID); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		ProviderID: providerID,
		Action:     "note_deleted",
		Entity:     "session_note",
		EntityID:   &noteID,
		Metadata:   map[string]any{"sessionId": sessionID},
	})
	return nil
}
