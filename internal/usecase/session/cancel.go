package session

import (
	"context"

	"github.com/luminacoach/lumina/internal/audit"
	domain "github.com/luminacoach/lumina/internal/domain/session"
	"github.com/luminacoach/lumina/internal/dto"
	"github.com/luminacoach/lumina/internal/timezone"
)

type CancelSession struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCancelSession(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CancelSession {
	return &CancelSession{
		repo:  repo,
		audit: audit,
	}
}

func (uc *CancelSession) Execute(
	ctx context.Context,
	providerID string,
	sessionID string,
) (*dto.SessionDTO, error) {

	provider, err := uc.repo.GetProvider(ctx, providerID)
	if err != nil {
		return nil, err
	}

	s, err := uc.repo.GetSession(ctx, providerID, sessionID)
	if err != nil {
		return nil, err
	}

	now := timezone.NowIn(provider.Timezone)
	if err := domain.Cancel(s, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateSession(ctx, s); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ProviderID: providerID,
		Action:     "session_cancelled",
		Entity:     "session",
		EntityID:   &s.ID,
	})

	out := dto.NewSessionDTO(*s, timezone.Location(provider.Timezone))
	return &out, nil
}
