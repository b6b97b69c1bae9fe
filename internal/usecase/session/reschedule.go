package session

import (
	"context"
	"time"

	"github.com/luminacoach/lumina/internal/audit"
	domain "github.com/luminacoach/lumina/internal/domain/session"
	"github.com/luminacoach/lumina/internal/dto"
	"github.com/luminacoach/lumina/internal/httperr"
	"github.com/luminacoach/lumina/internal/timezone"
)

type RescheduleSession struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewRescheduleSession(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *RescheduleSession {
	return &RescheduleSession{
		repo:  repo,
		audit: audit,
	}
}

func (uc *RescheduleSession) Execute(
	ctx context.Context,
	providerID string,
	sessionID string,
	date time.Time,
) (*dto.SessionDTO, error) {

	if date.IsZero() {
		return nil, httperr.ErrBusiness("invalid_date")
	}

	provider, err := uc.repo.GetProvider(ctx, providerID)
	if err != nil {
		return nil, err
	}

	s, err := uc.repo.GetSession(ctx, providerID, sessionID)
	if err != nil {
		return nil, err
	}

	previous := s.Date
	if err := domain.Reschedule(s, date.UTC()); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateSession(ctx, s); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ProviderID: providerID,
		Action:     "session_rescheduled",
		Entity:     "session",
		EntityID:   &s.ID,
		Metadata: map[string]any{
			"from": previous,
			"to":   s.Date,
		},
	})

	out := dto.NewSessionDTO(*s, timezone.Location(provider.Timezone))
	return &out, nil
}
