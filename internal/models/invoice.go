package models

import "time"

type Invoice struct {
	ID         string `gorm:"primaryKey;size:36" json:"id"`
	ProviderID string `gorm:"size:36;index" json:"providerId"`

	ClientID  string  `gorm:"size:36;index" json:"clientId"`
	Client    Client  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	SessionID *string `gorm:"size:36" json:"sessionId"`

	Description string  `gorm:"size:255" json:"description"`
	Amount      float64 `json:"amount"`
	Currency    string  `gorm:"size:3;default:'USD'" json:"currency"`
	Status      string  `gorm:"size:20;default:'pending'" json:"status"`

	IssuedAt    time.Time `json:"issuedAt"`
	DueDate     time.Time `json:"dueDate"`
	CheckoutURL string    `gorm:"size:255" json:"checkoutUrl,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
