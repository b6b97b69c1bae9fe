// Package seed loads and clears the demo practice used in development.
package seed

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/luminacoach/lumina/internal/models"
)

// Cleared lists what Reset removes, in deletion order.
var Cleared = []string{"notes", "sessions", "invoices", "engagements", "clients", "templates", "auditLogs"}

// Reset deletes every record owned by providerID and resets its note
// settings. The provider account itself stays.
func Reset(ctx context.Context, db *gorm.DB, providerID string) ([]string, error) {
	tables := []any{
		&models.SessionNote{},
		&models.Session{},
		&models.Invoice{},
		&models.Engagement{},
		&models.Client{},
		&models.Template{},
		&models.AuditLog{},
	}

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i, t := range tables {
			if err := tx.Where("provider_id = ?", providerID).Delete(t).Error; err != nil {
				return fmt.Errorf("clear %s: %w", Cleared[i], err)
			}
		}
		return tx.Model(&models.Provider{}).
			Where("id = ?", providerID).
			Updates(map[string]any{"template_mode": "default", "selected_template_id": ""}).Error
	})
	if err != nil {
		return nil, err
	}
	return append([]string(nil), Cleared...), nil
}

// Restore clears a provider's practice and reloads the demo dataset in one
// transaction. A failed reload leaves the previous data in place.
func Restore(ctx context.Context, db *gorm.DB, providerID string, now time.Time) ([]string, error) {
	var cleared []string
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		if cleared, err = Reset(ctx, tx, providerID); err != nil {
			return err
		}
		return Demo(ctx, tx, providerID, now)
	})
	if err != nil {
		return nil, err
	}
	return cleared, nil
}

type demoClient struct {
	name, email, program, status string
	sessions                     []demoSession
	pkg                          *demoPackage
}

type demoSession struct {
	offsetDays  int
	hour        int
	location    string
	status      string
	sessionType string
	focus       string
	payment     string
}

type demoPackage struct {
	name  string
	total int
	used  int
	price float64
}

var demo = []demoClient{
	{
		name: "Maya Chen", email: "maya.chen@example.com", program: "Leadership Accelerator", status: "active",
		pkg: &demoPackage{name: "Leadership 10-pack", total: 10, used: 4, price: 1800},
		sessions: []demoSession{
			{-14, 10, "zoom", "completed", "Coaching", "Delegation", "package"},
			{-7, 10, "zoom", "completed", "Coaching", "Team feedback", "package"},
			{2, 10, "zoom", "upcoming", "Coaching", "Quarterly planning", "package"},
		},
	},
	{
		name: "Omar Reyes", email: "omar.reyes@example.com", program: "Career Transition", status: "active",
		sessions: []demoSession{
			{-3, 15, "office", "completed", "Intake", "Career change", "paid"},
			{4, 15, "phone", "upcoming", "Follow-up", "CV review", "pending"},
		},
	},
	{
		name: "Ana Silva", email: "ana.silva@example.com", program: "Executive Presence", status: "paused",
		sessions: []demoSession{
			{-20, 9, "office", "cancelled", "Coaching", "Public speaking", "unpaid"},
		},
	},
	{
		name: "Lee Chen", email: "lee.chen@example.com", program: "Career Transition", status: "completed",
		sessions: []demoSession{
			{-40, 11, "phone", "completed", "Closing", "Wrap-up", "paid"},
		},
	},
}

// Demo inserts the demo clients, packages, sessions and invoices.
func Demo(ctx context.Context, db *gorm.DB, providerID string, now time.Time) error {
	now = now.UTC()
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i, dc := range demo {
			start := day.AddDate(0, -2, -i)
			client := models.Client{
				ProviderID: providerID,
				Name:       dc.name,
				Email:      dc.email,
				Program:    dc.program,
				Status:     dc.status,
				StartDate:  &start,
			}
			if err := tx.Create(&client).Error; err != nil {
				return err
			}

			var engagementID *string
			if dc.pkg != nil {
				e := models.Engagement{
					ProviderID:    providerID,
					ClientID:      client.ID,
					PackageName:   dc.pkg.name,
					SessionsTotal: dc.pkg.total,
					SessionsUsed:  dc.pkg.used,
					Price:         dc.pkg.price,
					PurchasedAt:   start,
				}
				if err := tx.Create(&e).Error; err != nil {
					return err
				}
				engagementID = &e.ID
			}

			for _, ds := range dc.sessions {
				s := models.Session{
					ProviderID:    providerID,
					ClientID:      client.ID,
					Date:          day.AddDate(0, 0, ds.offsetDays).Add(time.Duration(ds.hour) * time.Hour),
					Duration:      60,
					Location:      ds.location,
					Status:        ds.status,
					SessionType:   ds.sessionType,
					Focus:         ds.focus,
					PaymentStatus: ds.payment,
				}
				if ds.payment == "package" {
					s.EngagementID = engagementID
					s.BillingSource = "package"
				} else {
					s.BillingSource = "invoice"
				}
				if err := tx.Omit("Client", "Engagement", "Notes").Create(&s).Error; err != nil {
					return err
				}

				if s.BillingSource != "invoice" || ds.status == "cancelled" {
					continue
				}
				inv := models.Invoice{
					ProviderID:  providerID,
					ClientID:    client.ID,
					SessionID:   &s.ID,
					Description: fmt.Sprintf("%s session with %s", ds.sessionType, dc.name),
					Amount:      150,
					Currency:    "USD",
					Status:      invoiceStatus(ds.payment, s.Date, now),
					IssuedAt:    s.Date,
					DueDate:     s.Date.AddDate(0, 0, 14),
				}
				if err := tx.Omit("Client").Create(&inv).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
}

func invoiceStatus(payment string, issued, now time.Time) string {
	if payment == "paid" {
		return "paid"
	}
	if now.After(issued.AddDate(0, 0, 14)) {
		return "overdue"
	}
	return "pending"
}
