package models

import "time"

// Template is a custom note template. Presets are not stored.
type Template struct {
	ID         string `gorm:"primaryKey;size:36" json:"id"`
	ProviderID string `gorm:"size:36;index" json:"providerId"`

	Name   string   `gorm:"size:100;not null" json:"name"`
	Fields []string `gorm:"serializer:json;type:text" json:"fields"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
