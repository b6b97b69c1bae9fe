package models

import "time"

// Provider is the coach account. Every other record is scoped by ProviderID.
type Provider struct {
	ID string `gorm:"primaryKey;size:36" json:"id"`

	Name          string `gorm:"size:100;not null" json:"name"`
	Email         string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash  string `gorm:"size:255" json:"-"`
	OAuthProvider string `gorm:"size:30" json:"oauthProvider"`

	PracticeName string `gorm:"size:150" json:"practiceName"`
	Timezone     string `gorm:"size:60" json:"timezone"`
	AvatarURL    string `gorm:"size:255" json:"avatarUrl"`

	TemplateMode       string `gorm:"size:20;default:'default'" json:"templateMode"`
	SelectedTemplateID string `gorm:"size:36" json:"selectedTemplateId"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
