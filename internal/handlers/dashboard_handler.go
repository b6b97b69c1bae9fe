package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/luminacoach/lumina/internal/domain/billing"
	domain "github.com/luminacoach/lumina/internal/domain/session"
	"github.com/luminacoach/lumina/internal/dto"
	"github.com/luminacoach/lumina/internal/httperr"
	"github.com/luminacoach/lumina/internal/httpresp"
	"github.com/luminacoach/lumina/internal/models"
	"github.com/luminacoach/lumina/internal/timezone"
)

const dashboardListSize = 5

type DashboardHandler struct {
	db *gorm.DB
}

func NewDashboardHandler(db *gorm.DB) *DashboardHandler {
	return &DashboardHandler{db: db}
}

// Get aggregates the practice overview. Week and month windows follow the
// provider's timezone.
func (h *DashboardHandler) Get(c *gin.Context) {
	providerID := providerIDFrom(c)
	db := h.db.WithContext(c.Request.Context())

	var provider models.Provider
	if err := db.First(&provider, "id = ?", providerID).Error; err != nil {
		httperr.Internal(c, "provider_not_found", "Could not load account.")
		return
	}

	loc := timezone.Location(provider.Timezone)
	now := timezone.NowIn(provider.Timezone)
	monthStart, monthEnd := timezone.MonthBounds(now)
	weekStart, weekEnd := timezone.WeekBounds(now)

	var out dto.DashboardDTO

	// --------------------------------------------------
	// Clients
	// --------------------------------------------------

	var clients []models.Client
	if err := db.Where("provider_id = ?", providerID).
		Order("created_at DESC, id DESC").
		Find(&clients).Error; err != nil {
		httperr.Internal(c, "failed_to_load_dashboard", "Could not load dashboard.")
		return
	}

	out.Metrics.TotalClients = len(clients)
	for _, cl := range clients {
		if cl.Status == "active" {
			out.Metrics.ActiveClients++
		}
	}
	recent := clients
	if len(recent) > dashboardListSize {
		recent = recent[:dashboardListSize]
	}
	out.RecentClients = dto.NewClientDTOs(recent)

	// --------------------------------------------------
	// Sessions
	// --------------------------------------------------

	var sessions []models.Session
	if err := db.Where("provider_id = ?", providerID).
		Preload("Client").
		Preload("Engagement").
		Order("date ASC, id ASC").
		Find(&sessions).Error; err != nil {
		httperr.Internal(c, "failed_to_load_dashboard", "Could not load dashboard.")
		return
	}

	var upcoming []models.Session
	for _, s := range sessions {
		status, _ := domain.ParseStatus(s.Status)
		date := s.Date.In(loc)

		if status == domain.StatusUpcoming && !s.Date.Before(now) {
			upcoming = append(upcoming, s)
		}
		if status != domain.StatusCancelled && !date.Before(weekStart) && date.Before(weekEnd) {
			out.Metrics.SessionsThisWeek++
		}
		if status == domain.StatusCompleted && !date.Before(monthStart) && date.Before(monthEnd) {
			out.Metrics.CompletedThisMonth++
		}
	}
	out.Metrics.UpcomingSessions = len(upcoming)
	if len(upcoming) > dashboardListSize {
		upcoming = upcoming[:dashboardListSize]
	}
	out.UpcomingSessions = dto.NewSessionDTOs(upcoming, loc)

	// --------------------------------------------------
	// Notes and billing
	// --------------------------------------------------

	var notes int64
	if err := db.Model(&models.SessionNote{}).
		Where("provider_id = ? AND created_at >= ? AND created_at < ?", providerID, monthStart.UTC(), monthEnd.UTC()).
		Count(&notes).Error; err != nil {
		httperr.Internal(c, "failed_to_load_dashboard", "Could not load dashboard.")
		return
	}
	out.Metrics.NotesThisMonth = int(notes)

	var invoices []models.Invoice
	if err := db.Where("provider_id = ?", providerID).Find(&invoices).Error; err != nil {
		httperr.Internal(c, "failed_to_load_dashboard", "Could not load dashboard.")
		return
	}
	out.Billing = billing.Summarize(invoices)
	out.Metrics.Revenue = out.Billing.Paid
	out.Metrics.Outstanding = out.Billing.Outstanding

	httpresp.OK(c, out)
}
