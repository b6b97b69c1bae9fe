package dto

import "github.com/luminacoach/lumina/internal/domain/billing"

type DashboardMetrics struct {
	ActiveClients      int     `json:"activeClients"`
	TotalClients       int     `json:"totalClients"`
	UpcomingSessions   int     `json:"upcomingSessions"`
	SessionsThisWeek   int     `json:"sessionsThisWeek"`
	CompletedThisMonth int     `json:"completedThisMonth"`
	Revenue            float64 `json:"revenue"`
	Outstanding        float64 `json:"outstanding"`
	NotesThisMonth     int     `json:"notesThisMonth"`
}

type DashboardDTO struct {
	Metrics          DashboardMetrics `json:"metrics"`
	Billing          billing.Summary  `json:"billing"`
	UpcomingSessions []SessionDTO     `json:"upcomingSessions"`
	RecentClients    []ClientDTO      `json:"recentClients"`
}
