package template

import (
	"context"
	"time"

	"github.com/luminacoach/lumina/internal/audit"
	domain "github.com/luminacoach/lumina/internal/domain/template"
	"github.com/luminacoach/lumina/internal/httperr"
	"github.com/luminacoach/lumina/internal/models"
)

// ======================================================
// LIST
// ======================================================

type ListTemplates struct {
	repo domain.Repository
}

func NewListTemplates(repo domain.Repository) *ListTemplates {
	return &ListTemplates{repo: repo}
}

func (uc *ListTemplates) Presets() []domain.Template {
	return domain.Presets()
}

func (uc *ListTemplates) Custom(ctx context.Context, providerID string) ([]domain.Template, error) {
	list, err := uc.repo.ListCustom(ctx, providerID)
	if err != nil {
		return nil, err
	}
	return domain.FromModels(list), nil
}

// ======================================================
// SAVE (create or update, last write wins)
// ======================================================

type SaveCustomTemplateInput struct {
	ProviderID string
	ID         string
	Name       string
	Fields     []string
}

type SaveCustomTemplate struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	now   func() time.Time
}

func NewSaveCustomTemplate(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *SaveCustomTemplate {
	return &SaveCustomTemplate{
		repo:  repo,
		audit: audit,
		now:   time.Now,
	}
}

// Execute creates the template when in.ID is empty and replaces it
// otherwise. Invalid input persists nothing. Notes written under an earlier
// version keep their own field list.
func (uc *SaveCustomTemplate) Execute(
	ctx context.Context,
	in SaveCustomTemplateInput,
) (*domain.Template, error) {

	if err := domain.Validate(in.Name, in.Fields); err != nil {
		return nil, err
	}
	name, fields := domain.Normalize(in.Name, in.Fields)

	if in.ID != "" && domain.IsPreset(in.ID) {
		return nil, httperr.ErrBusiness("preset_read_only")
	}

	var (
		m      *models.Template
		action string
	)
	if in.ID == "" {
		m = &models.Template{ProviderID: in.ProviderID, Name: name, Fields: fields}
		if err := uc.repo.CreateCustom(ctx, m); err != nil {
			return nil, err
		}
		action = "template_created"
	} else {
		existing, err := uc.repo.GetCustom(ctx, in.ProviderID, in.ID)
		if err != nil {
			return nil, err
		}
		existing.Name = name
		existing.Fields = fields
		existing.UpdatedAt = uc.now().UTC()
		if err := uc.repo.UpdateCustom(ctx, existing); err != nil {
			return nil, err
		}
		m = existing
		action = "template_updated"
	}

	uc.audit.Dispatch(audit.Event{
		ProviderID: in.ProviderID,
		Action:     action,
		Entity:     "template",
		EntityID:   &m.ID,
	})

	t := domain.FromModel(*m)
	return &t, nil
}

// ======================================================
// DELETE
// ======================================================

type DeleteCustomTemplate struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewDeleteCustomTemplate(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *DeleteCustomTemplate {
	return &DeleteCustomTemplate{
		repo:  repo,
		audit: audit,
	}
}

func (uc *DeleteCustomTemplate) Execute(ctx context.Context, providerID, id string) error {
	if domain.IsPreset(id) {
		return httperr.ErrBusiness("preset_read_only")
	}

	if err := uc.repo.DeleteCustom(ctx, providerID, id); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		ProviderID: providerID,
		Action:     "template_deleted",
		Entity:     "template",
		EntityID:   &id,
	})
	return nil
}
