package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func newID() string {
	return uuid.NewString()
}

// assignID fills an empty string primary key before insert.
func assignID(id *string) {
	if *id == "" {
		*id = newID()
	}
}

func (p *Provider) BeforeCreate(*gorm.DB) error    { assignID(&p.ID); return nil }
func (c *Client) BeforeCreate(*gorm.DB) error      { assignID(&c.ID); return nil }
func (e *Engagement) BeforeCreate(*gorm.DB) error  { assignID(&e.ID); return nil }
func (s *Session) BeforeCreate(*gorm.DB) error     { assignID(&s.ID); return nil }
func (n *SessionNote) BeforeCreate(*gorm.DB) error { assignID(&n.ID); return nil }
func (t *Template) BeforeCreate(*gorm.DB) error    { assignID(&t.ID); return nil }
func (i *Invoice) BeforeCreate(*gorm.DB) error     { assignID(&i.ID); return nil }
func (a *AuditLog) BeforeCreate(*gorm.DB) error    { assignID(&a.ID); return nil }
