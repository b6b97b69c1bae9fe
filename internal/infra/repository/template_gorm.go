package repository

import (
	"context"

	"gorm.io/gorm"

	domain "github.com/luminacoach/lumina/internal/domain/template"
	"github.com/luminacoach/lumina/internal/models"
)

type TemplateGormRepository struct {
	db *gorm.DB
}

func NewTemplateGormRepository(db *gorm.DB) *TemplateGormRepository {
	return &TemplateGormRepository{db: db}
}

func (r *TemplateGormRepository) ListCustom(
	ctx context.Context,
	providerID string,
) ([]models.Template, error) {

	var list []models.Template
	err := r.db.WithContext(ctx).
		Where("provider_id = ?", providerID).
		Order("created_at ASC").
		Find(&list).Error
	return list, err
}

func (r *TemplateGormRepository) GetCustom(
	ctx context.Context,
	providerID string,
	id string,
) (*models.Template, error) {
	return getCustomTemplate(ctx, r.db, providerID, id)
}

func (r *TemplateGormRepository) CreateCustom(ctx context.Context, t *models.Template) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *TemplateGormRepository) UpdateCustom(ctx context.Context, t *models.Template) error {
	return r.db.WithContext(ctx).Save(t).Error
}

func (r *TemplateGormRepository) DeleteCustom(
	ctx context.Context,
	providerID string,
	id string,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND provider_id = ?", id, providerID).Delete(&models.Template{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return notFound(gorm.ErrRecordNotFound, "template_not_found")
		}

		// a deleted selection falls back to freeform notes
		return tx.Model(&models.Provider{}).
			Where("id = ? AND selected_template_id = ?", providerID, id).
			Updates(map[string]any{
				"selected_template_id": "",
				"template_mode":        string(domain.ModeDefault),
			}).Error
	})
}

func (r *TemplateGormRepository) GetProvider(ctx context.Context, providerID string) (*models.Provider, error) {
	return getProvider(ctx, r.db, providerID)
}

func (r *TemplateGormRepository) UpdateSettings(
	ctx context.Context,
	providerID string,
	mode domain.Mode,
	selectedID string,
) error {

	return r.db.WithContext(ctx).
		Model(&models.Provider{}).
		Where("id = ?", providerID).
		Updates(map[string]any{
			"template_mode":        string(mode),
			"selected_template_id": selectedID,
		}).Error
}

func getCustomTemplate(ctx context.Context, db *gorm.DB, providerID, id string) (*models.Template, error) {
	var t models.Template
	if err := db.WithContext(ctx).
		Where("id = ? AND provider_id = ?", id, providerID).
		First(&t).Error; err != nil {
		return nil, notFound(err, "template_not_found")
	}
	return &t, nil
}

// Compile-time check
var _ domain.Repository = (*TemplateGormRepository)(nil)
