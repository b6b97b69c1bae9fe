package session

import (
	"context"
	"time"

	domain "github.com/luminacoach/lumina/internal/domain/session"
	"github.com/luminacoach/lumina/internal/dto"
	"github.com/luminacoach/lumina/internal/models"
	"github.com/luminacoach/lumina/internal/timezone"
)

type ListSessions struct {
	repo domain.Repository
}

func NewListSessions(repo domain.Repository) *ListSessions {
	return &ListSessions{repo: repo}
}

// Period narrows the listing to [From, To). Zero values mean unbounded.
type Period struct {
	From time.Time
	To   time.Time
}

func (uc *ListSessions) Execute(
	ctx context.Context,
	providerID string,
	filter domain.Filter,
	period Period,
) ([]dto.SessionDTO, error) {

	provider, err := uc.repo.GetProvider(ctx, providerID)
	if err != nil {
		return nil, err
	}

	var list []models.Session
	if period.From.IsZero() && period.To.IsZero() {
		list, err = uc.repo.ListSessions(ctx, providerID)
	} else {
		from, to := period.From, period.To
		if to.IsZero() {
			to = time.Date(9999, 1, 1, 0, 0, 0, 0, time.UTC)
		}
		list, err = uc.repo.ListSessionsForPeriod(ctx, providerID, from, to)
	}
	if err != nil {
		return nil, err
	}

	all := dto.NewSessionDTOs(list, timezone.Location(provider.Timezone))
	return domain.Apply(all, filter, dto.SessionFields), nil
}
