package models

import "time"

type Client struct {
	ID         string `gorm:"primaryKey;size:36" json:"id"`
	ProviderID string `gorm:"size:36;index" json:"providerId"`

	Name    string `gorm:"size:100;not null" json:"name"`
	Email   string `gorm:"size:100" json:"email"`
	Phone   string `gorm:"size:30" json:"phone"`
	Program string `gorm:"size:100" json:"program"`
	Status  string `gorm:"size:20;default:'active'" json:"status"`
	Notes   string `gorm:"type:text" json:"notes"`

	StartDate *time.Time `json:"startDate"`

	Engagements []Engagement `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"engagements,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Engagement is a client's purchase of a package; its sessions draw from it.
type Engagement struct {
	ID         string `gorm:"primaryKey;size:36" json:"id"`
	ProviderID string `gorm:"size:36;index" json:"providerId"`
	ClientID   string `gorm:"size:36;index" json:"clientId"`

	PackageName   string  `gorm:"size:100" json:"packageName"`
	SessionsTotal int     `json:"sessionsTotal"`
	SessionsUsed  int     `json:"sessionsUsed"`
	Price         float64 `json:"price"`

	PurchasedAt time.Time `json:"purchasedAt"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (e Engagement) Remaining() int {
	if r := e.SessionsTotal - e.SessionsUsed; r > 0 {
		return r
	}
	return 0
}
