package session

import (
	"context"

	domain "github.com/luminacoach/lumina/internal/domain/session"
	"github.com/luminacoach/lumina/internal/dto"
	"github.com/luminacoach/lumina/internal/timezone"
)

type GetSession struct {
	repo domain.Repository
}

func NewGetSession(repo domain.Repository) *GetSession {
	return &GetSession{repo: repo}
}

// Execute returns the session with its notes, newest first.
func (uc *GetSession) Execute(
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

	out := dto.NewSessionDTO(*s, timezone.Location(provider.Timezone))
	return &out, nil
}
