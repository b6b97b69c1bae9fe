package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/luminacoach/lumina/internal/httperr"
	"github.com/luminacoach/lumina/internal/httpresp"
	"github.com/luminacoach/lumina/internal/models"
	"github.com/luminacoach/lumina/internal/timezone"
)

type AuditLogsHandler struct {
	db *gorm.DB
}

func NewAuditLogsHandler(db *gorm.DB) *AuditLogsHandler {
	return &AuditLogsHandler{db: db}
}

// AuditQuery filters the trail. Actions may repeat; from and to are whole
// days in the provider's timezone, both inclusive.
type AuditQuery struct {
	Entity   string `form:"entity"`
	EntityID string `form:"entityId"`
	From     string `form:"from"`
	To       string `form:"to"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	Limit    int    `form:"limit" binding:"omitempty,min=1,max=200"`
}

func (q *AuditQuery) defaults() {
	if q.Page == 0 {
		q.Page = 1
	}
	if q.Limit == 0 {
		q.Limit = 50
	}
}

// scope narrows a query to one provider's matching rows.
func (q AuditQuery) scope(providerID string, actions []string, loc *time.Location) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		db = db.Where("provider_id = ?", providerID)
		if len(actions) > 0 {
			db = db.Where("action IN ?", actions)
		}
		if q.Entity != "" {
			db = db.Where("entity = ?", q.Entity)
		}
		if q.EntityID != "" {
			db = db.Where("entity_id = ?", q.EntityID)
		}
		if from, ok := parseDateParam(q.From, loc); ok {
			db = db.Where("created_at >= ?", from)
		}
		if to, ok := parseDateParam(q.To, loc); ok {
			db = db.Where("created_at < ?", to.AddDate(0, 0, 1))
		}
		return db
	}
}

// List pages through the provider's audit trail, newest first.
func (h *AuditLogsHandler) List(c *gin.Context) {
	providerID := providerIDFrom(c)
	db := h.db.WithContext(c.Request.Context())

	var q AuditQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		invalidRequest(c, err)
		return
	}
	q.defaults()

	var provider models.Provider
	if err := db.Select("timezone").First(&provider, "id = ?", providerID).Error; err != nil {
		httperr.Internal(c, "provider_not_found", "Could not load account.")
		return
	}
	scope := q.scope(providerID, queryList(c, "action"), timezone.Location(provider.Timezone))

	var total int64
	if err := db.Model(&models.AuditLog{}).Scopes(scope).Count(&total).Error; err != nil {
		httperr.Internal(c, "audit_count_failed", "Could not count audit logs.")
		return
	}

	logs := []models.AuditLog{}
	err := db.Scopes(scope).
		Order("created_at DESC").
		Limit(q.Limit).
		Offset((q.Page - 1) * q.Limit).
		Find(&logs).Error
	if err != nil {
		httperr.Internal(c, "audit_list_failed", "Could not list audit logs.")
		return
	}

	httpresp.Paged(c, q.Page, q.Limit, total, logs)
}
