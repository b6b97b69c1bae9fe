package models

import "time"

type Session struct {
	ID         string `gorm:"primaryKey;size:36" json:"id"`
	ProviderID string `gorm:"size:36;index" json:"providerId"`

	ClientID string `gorm:"size:36;index" json:"clientId"`
	Client   Client `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	EngagementID *string     `gorm:"size:36" json:"engagementId"`
	Engagement   *Engagement `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	Date        time.Time `gorm:"index" json:"date"`
	Duration    int       `json:"duration"`
	Location    string    `gorm:"size:20" json:"location"`
	Status      string    `gorm:"size:20;default:'upcoming'" json:"status"`
	SessionType string    `gorm:"size:100" json:"sessionType"`
	Focus       string    `gorm:"size:255" json:"focus"`

	PaymentStatus    string `gorm:"size:20" json:"paymentStatus"`
	BillingSource    string `gorm:"size:50" json:"billingSource"`
	PackageRemaining *int   `json:"packageRemaining"`

	Notes []SessionNote `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"notes,omitempty"`

	CancelledAt *time.Time `json:"cancelledAt"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// SessionNote is either freeform text or a field->value mapping captured
// under a template. Fields keeps the template's field list as it was when
// the note was created.
type SessionNote struct {
	ID         string `gorm:"primaryKey;size:36" json:"id"`
	ProviderID string `gorm:"size:36;index" json:"providerId"`
	SessionID  string `gorm:"size:36;index" json:"sessionId"`

	Content      string   `gorm:"type:text" json:"content"`
	IsTemplate   bool     `json:"isTemplate"`
	TemplateID   string   `gorm:"size:36" json:"templateId,omitempty"`
	TemplateName string   `gorm:"size:100" json:"templateName,omitempty"`
	Fields       []string `gorm:"serializer:json;type:text" json:"fields,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
