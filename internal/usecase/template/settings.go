package template

import (
	"context"
	"strings"

	"github.com/luminacoach/lumina/internal/audit"
	domain "github.com/luminacoach/lumina/internal/domain/template"
)

type Settings struct {
	TemplateMode       domain.Mode `json:"templateMode"`
	SelectedTemplateID string      `json:"selectedTemplateId"`
}

// ======================================================
// GET SETTINGS / ACTIVE TEMPLATE
// ======================================================

type GetSettings struct {
	repo domain.Repository
}

func NewGetSettings(repo domain.Repository) *GetSettings {
	return &GetSettings{repo: repo}
}

func (uc *GetSettings) Execute(ctx context.Context, providerID string) (*Settings, error) {
	p, err := uc.repo.GetProvider(ctx, providerID)
	if err != nil {
		return nil, err
	}

	mode, err := domain.ParseMode(p.TemplateMode)
	if err != nil {
		mode = domain.ModeDefault
	}
	return &Settings{TemplateMode: mode, SelectedTemplateID: p.SelectedTemplateID}, nil
}

// Active resolves the provider's effective template; nil means freeform.
func (uc *GetSettings) Active(ctx context.Context, providerID string) (*domain.Template, error) {
	s, err := uc.Execute(ctx, providerID)
	if err != nil {
		return nil, err
	}

	customs, err := uc.repo.ListCustom(ctx, providerID)
	if err != nil {
		return nil, err
	}

	return domain.Resolve(s.TemplateMode, s.SelectedTemplateID, domain.Presets(), domain.FromModels(customs)), nil
}

// ======================================================
// UPDATE SETTINGS
// ======================================================

type UpdateSettings struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewUpdateSettings(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *UpdateSettings {
	return &UpdateSettings{
		repo:  repo,
		audit: audit,
	}
}

// Execute stores the mode and selection. A non-empty selection must name an
// existing preset or one of the provider's custom templates.
func (uc *UpdateSettings) Execute(
	ctx context.Context,
	providerID string,
	mode string,
	selectedID string,
) (*Settings, error) {

	m, err := domain.ParseMode(mode)
	if err != nil {
		return nil, err
	}

	selectedID = strings.TrimSpace(selectedID)
	if selectedID != "" && !domain.IsPreset(selectedID) {
		if _, err := uc.repo.GetCustom(ctx, providerID, selectedID); err != nil {
			return nil, err
		}
	}

	if err := uc.repo.UpdateSettings(ctx, providerID, m, selectedID); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ProviderID: providerID,
		Action:     "note_settings_updated",
		Entity:     "provider",
		EntityID:   &providerID,
		Metadata:   map[string]any{"templateMode": m, "selectedTemplateId": selectedID},
	})

	return &Settings{TemplateMode: m, SelectedTemplateID: selectedID}, nil
}
