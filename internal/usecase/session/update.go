package session

import (
	"context"

	"github.com/luminacoach/lumina/internal/audit"
	domain "github.com/luminacoach/lumina/internal/domain/session"
	"github.com/luminacoach/lumina/internal/dto"
	"github.com/luminacoach/lumina/internal/timezone"
)

// UpdateSession replaces the editable fields of a session. Status may be set
// to any valid value here; the edit form is the user's explicit choice.
type UpdateSession struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewUpdateSession(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *UpdateSession {
	return &UpdateSession{
		repo:  repo,
		audit: audit,
	}
}

func (uc *UpdateSession) Execute(
	ctx context.Context,
	sessionID string,
	in SessionInput,
) (*dto.SessionDTO, error) {

	provider, err := uc.repo.GetProvider(ctx, in.ProviderID)
	if err != nil {
		return nil, err
	}

	s, err := uc.repo.GetSession(ctx, in.ProviderID, sessionID)
	if err != nil {
		return nil, err
	}

	previous := s.Status
	if err := apply(ctx, uc.repo, in, s); err != nil {
		return nil, err
	}
	if s.Status == string(domain.StatusCancelled) && s.CancelledAt == nil {
		now := timezone.NowIn(provider.Timezone)
		s.CancelledAt = &now
	}

	if err := uc.repo.UpdateSession(ctx, s); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ProviderID: in.ProviderID,
		Action:     "session_updated",
		Entity:     "session",
		EntityID:   &s.ID,
		Metadata: map[string]any{
			"from": previous,
			"to":   s.Status,
		},
	})

	out := dto.NewSessionDTO(*s, timezone.Location(provider.Timezone))
	return &out, nil
}
