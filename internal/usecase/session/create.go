package session

import (
	"context"

	"github.com/luminacoach/lumina/internal/audit"
	domain "github.com/luminacoach/lumina/internal/domain/session"
	"github.com/luminacoach/lumina/internal/dto"
	"github.com/luminacoach/lumina/internal/models"
	"github.com/luminacoach/lumina/internal/timezone"
)

type CreateSession struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCreateSession(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CreateSession {
	return &CreateSession{
		repo:  repo,
		audit: audit,
	}
}

func (uc *CreateSession) Execute(
	ctx context.Context,
	in SessionInput,
) (*dto.SessionDTO, error) {

	provider, err := uc.repo.GetProvider(ctx, in.ProviderID)
	if err != nil {
		return nil, err
	}

	s := &models.Session{}
	if err := apply(ctx, uc.repo, in, s); err != nil {
		return nil, err
	}

	if err := uc.repo.CreateSession(ctx, s); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ProviderID: in.ProviderID,
		Action:     "session_created",
		Entity:     "session",
		EntityID:   &s.ID,
	})

	out := dto.NewSessionDTO(*s, timezone.Location(provider.Timezone))
	return &out, nil
}
