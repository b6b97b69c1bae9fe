package note

import (
	"context"

	"github.com/luminacoach/lumina/internal/models"
)

type Repository interface {
	GetSession(ctx context.Context, providerID, sessionID string) (*models.Session, error)
	GetProvider(ctx context.Context, providerID string) (*models.Provider, error)
	GetCustomTemplate(ctx context.Context, providerID, id string) (*models.Template, error)

	ListNotes(ctx context.Context, providerID, sessionID string) ([]models.SessionNote, error)
	GetNote(ctx context.Context, providerID, sessionID, noteID string) (*models.SessionNote, error)
	CreateNote(ctx context.Context, n *models.SessionNote) error
	UpdateNote(ctx context.Context, n *models.SessionNote) error
	DeleteNote(ctx context.Context, providerID, sessionID, noteID string) error
}
