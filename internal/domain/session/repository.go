package session

import (
	"context"
	"time"

	"github.com/luminacoach/lumina/internal/models"
)

type Repository interface {
	GetProvider(ctx context.Context, providerID string) (*models.Provider, error)
	GetClient(ctx context.Context, providerID, clientID string) (*models.Client, error)
	GetEngagement(ctx context.Context, providerID, engagementID string) (*models.Engagement, error)

	ListSessions(ctx context.Context, providerID string) ([]models.Session, error)
	ListSessionsForPeriod(ctx context.Context, providerID string, start, end time.Time) ([]models.Session, error)
	GetSession(ctx context.Context, providerID, sessionID string) (*models.Session, error)
	CreateSession(ctx context.Context, s *models.Session) error
	UpdateSession(ctx context.Context, s *models.Session) error
}
