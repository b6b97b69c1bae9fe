package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/luminacoach/lumina/internal/domain/session"
	"github.com/luminacoach/lumina/internal/models"
)

type SessionGormRepository struct {
	db *gorm.DB
}

func NewSessionGormRepository(db *gorm.DB) *SessionGormRepository {
	return &SessionGormRepository{db: db}
}

// --------------------------------------------------
// Provider / Client / Engagement
// --------------------------------------------------

func (r *SessionGormRepository) GetProvider(ctx context.Context, providerID string) (*models.Provider, error) {
	return getProvider(ctx, r.db, providerID)
}

func (r *SessionGormRepository) GetClient(
	ctx context.Context,
	providerID string,
	clientID string,
) (*models.Client, error) {

	var c models.Client
	if err := r.db.WithContext(ctx).
		Where("id = ? AND provider_id = ?", clientID, providerID).
		First(&c).Error; err != nil {
		return nil, notFound(err, "client_not_found")
	}
	return &c, nil
}

func (r *SessionGormRepository) GetEngagement(
	ctx context.Context,
	providerID string,
	engagementID string,
) (*models.Engagement, error) {

	var e models.Engagement
	if err := r.db.WithContext(ctx).
		Where("id = ? AND provider_id = ?", engagementID, providerID).
		First(&e).Error; err != nil {
		return nil, notFound(err, "engagement_not_found")
	}
	return &e, nil
}

// --------------------------------------------------
// Session
// --------------------------------------------------

func (r *SessionGormRepository) ListSessions(
	ctx context.Context,
	providerID string,
) ([]models.Session, error) {

	var list []models.Session
	err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Engagement").
		Where("provider_id = ?", providerID).
		Order("date ASC").
		Find(&list).Error
	return list, err
}

func (r *SessionGormRepository) ListSessionsForPeriod(
	ctx context.Context,
	providerID string,
	start time.Time,
	end time.Time,
) ([]models.Session, error) {

	var list []models.Session
	err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Engagement").
		Where("provider_id = ? AND date >= ? AND date < ?", providerID, start.UTC(), end.UTC()).
		Order("date ASC").
		Find(&list).Error
	return list, err
}

func (r *SessionGormRepository) GetSession(
	ctx context.Context,
	providerID string,
	sessionID string,
) (*models.Session, error) {

	var s models.Session
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Engagement").
		Preload("Notes", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("created_at DESC")
		}).
		Where("id = ? AND provider_id = ?", sessionID, providerID).
		First(&s).Error; err != nil {
		return nil, notFound(err, "session_not_found")
	}
	return &s, nil
}

func (r *SessionGormRepository) CreateSession(ctx context.Context, s *models.Session) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(s).Error
}

func (r *SessionGormRepository) UpdateSession(ctx context.Context, s *models.Session) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(s).Error
}

func getProvider(ctx context.Context, db *gorm.DB, providerID string) (*models.Provider, error) {
	var p models.Provider
	if err := db.WithContext(ctx).First(&p, "id = ?", providerID).Error; err != nil {
		return nil, notFound(err, "provider_not_found")
	}
	return &p, nil
}

// Compile-time check
var _ domain.Repository = (*SessionGormRepository)(nil)
