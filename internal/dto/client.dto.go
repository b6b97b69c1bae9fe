package dto

import (
	"time"

	domain "github.com/luminacoach/lumina/internal/domain/client"
	"github.com/luminacoach/lumina/internal/models"
)

type EngagementDTO struct {
	ID            string    `json:"id"`
	PackageName   string    `json:"packageName"`
	SessionsTotal int       `json:"sessionsTotal"`
	SessionsUsed  int       `json:"sessionsUsed"`
	Remaining     int       `json:"remaining"`
	Price         float64   `json:"price"`
	PurchasedAt   time.Time `json:"purchasedAt"`
}

type ClientDTO struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Phone     string     `json:"phone"`
	Program   string     `json:"program"`
	Status    string     `json:"status"`
	Notes     string     `json:"notes"`
	StartDate *time.Time `json:"startDate"`

	Engagements []EngagementDTO `json:"engagements,omitempty"`
	Sessions    []SessionDTO    `json:"sessions,omitempty"`
}

func NewClientDTO(c models.Client) ClientDTO {
	out := ClientDTO{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		Program:   c.Program,
		Status:    c.Status,
		Notes:     c.Notes,
		StartDate: c.StartDate,
	}
	for _, e := range c.Engagements {
		out.Engagements = append(out.Engagements, EngagementDTO{
			ID:            e.ID,
			PackageName:   e.PackageName,
			SessionsTotal: e.SessionsTotal,
			SessionsUsed:  e.SessionsUsed,
			Remaining:     e.Remaining(),
			Price:         e.Price,
			PurchasedAt:   e.PurchasedAt,
		})
	}
	return out
}

func NewClientDTOs(list []models.Client) []ClientDTO {
	out := make([]ClientDTO, 0, len(list))
	for _, c := range list {
		out = append(out, NewClientDTO(c))
	}
	return out
}

func ClientFields(c ClientDTO) domain.Fields {
	return domain.Fields{Name: c.Name, Program: c.Program, Status: c.Status}
}
