package template

import (
	"context"

	"github.com/luminacoach/lumina/internal/models"
)

type Repository interface {
	ListCustom(ctx context.Context, providerID string) ([]models.Template, error)
	GetCustom(ctx context.Context, providerID, id string) (*models.Template, error)
	CreateCustom(ctx context.Context, t *models.Template) error
	UpdateCustom(ctx context.Context, t *models.Template) error
	DeleteCustom(ctx context.Context, providerID, id string) error

	GetProvider(ctx context.Context, providerID string) (*models.Provider, error)
	UpdateSettings(ctx context.Context, providerID string, mode Mode, selectedID string) error
}

// FromModel converts a stored custom template.
func FromModel(m models.Template) Template {
	return Template{
		ID:     m.ID,
		Name:   m.Name,
		Fields: append([]string(nil), m.Fields...),
		Custom: true,
	}
}

func FromModels(list []models.Template) []Template {
	out := make([]Template, 0, len(list))
	for _, m := range list {
		out = append(out, FromModel(m))
	}
	return out
}
