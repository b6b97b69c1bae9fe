package repository

import (
	"context"

	"gorm.io/gorm"

	domain "github.com/luminacoach/lumina/internal/domain/note"
	"github.com/luminacoach/lumina/internal/models"
)

type NoteGormRepository struct {
	db *gorm.DB
}

func NewNoteGormRepository(db *gorm.DB) *NoteGormRepository {
	return &NoteGormRepository{db: db}
}

func (r *NoteGormRepository) GetProvider(ctx context.Context, providerID string) (*models.Provider, error) {
	return getProvider(ctx, r.db, providerID)
}

func (r *NoteGormRepository) GetSession(
	ctx context.Context,
	providerID string,
	sessionID string,
) (*models.Session, error) {

	var s models.Session
	if err := r.db.WithContext(ctx).
		Where("id = ? AND provider_id = ?", sessionID, providerID).
		First(&s).Error; err != nil {
		return nil, notFound(err, "session_not_found")
	}
	return &s, nil
}

func (r *NoteGormRepository) GetCustomTemplate(
	ctx context.Context,
	providerID string,
	id string,
) (*models.Template, error) {
	return getCustomTemplate(ctx, r.db, providerID, id)
}

func (r *NoteGormRepository) ListNotes(
	ctx context.Context,
	providerID string,
	sessionID string,
) ([]models.SessionNote, error) {

	var list []models.SessionNote
	err := r.db.WithContext(ctx).
		Where("provider_id = ? AND session_id = ?", providerID, sessionID).
		Order("created_at DESC").
		Find(&list).Error
	return list, err
}

func (r *NoteGormRepository) GetNote(
	ctx context.Context,
	providerID string,
	sessionID string,
	noteID string,
) (*models.SessionNote, error) {

	var n models.SessionNote
	if err := r.db.WithContext(ctx).
		Where("id = ? AND provider_id = ? AND session_id = ?", noteID, providerID, sessionID).
		First(&n).Error; err != nil {
		return nil, notFound(err, "note_not_found")
	}
	return &n, nil
}

func (r *NoteGormRepository) CreateNote(ctx context.Context, n *models.SessionNote) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *NoteGormRepository) UpdateNote(ctx context.Context, n *models.SessionNote) error {
	return r.db.WithContext(ctx).Save(n).Error
}

func (r *NoteGormRepository) DeleteNote(
	ctx context.Context,
	providerID string,
	sessionID string,
	noteID string,
) error {

	res := r.db.WithContext(ctx).
		Where("id = ? AND provider_id = ? AND session_id = ?", noteID, providerID, sessionID).
		Delete(&models.SessionNote{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return notFound(gorm.ErrRecordNotFound, "note_not_found")
	}
	return nil
}

// Compile-time check
var _ domain.Repository = (*NoteGormRepository)(nil)
