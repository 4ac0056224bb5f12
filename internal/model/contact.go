package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ContactStatus is the handling state of an enquiry
type ContactStatus string

const (
	ContactPending    ContactStatus = "pending"
	ContactInProgress ContactStatus = "in-progress"
	ContactResolved   ContactStatus = "resolved"
	ContactClosed     ContactStatus = "closed"
)

// Valid reports whether the status is one of the known statuses
func (s ContactStatus) Valid() bool {
	switch s {
	case ContactPending, ContactInProgress, ContactResolved, ContactClosed:
		return true
	}
	return false
}

// ContactPriority is the triage priority of an enquiry
type ContactPriority string

const (
	PriorityLow    ContactPriority = "low"
	PriorityMedium ContactPriority = "medium"
	PriorityHigh   ContactPriority = "high"
)

// Valid reports whether the priority is one of the known priorities
func (p ContactPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Contact represents a contact-form enquiry within one tenant
type Contact struct {
	ID         string          `json:"id" gorm:"type:uuid;primaryKey"`
	TenantID   string          `json:"tenant_id" gorm:"type:uuid;not null;index"`
	Name       string          `json:"name" gorm:"type:varchar(100);not null"`
	Email      string          `json:"email" gorm:"type:varchar(100);not null"`
	Phone      string          `json:"phone,omitempty" gorm:"type:varchar(30)"`
	Subject    string          `json:"subject" gorm:"type:varchar(255);not null"`
	Message    string          `json:"message" gorm:"type:text;not null"`
	Status     ContactStatus   `json:"status" gorm:"type:varchar(20);default:'pending';index"`
	Priority   ContactPriority `json:"priority" gorm:"type:varchar(10);default:'medium'"`
	AssignedTo *string         `json:"assigned_to,omitempty" gorm:"type:uuid"`
	Notes      string          `json:"notes,omitempty" gorm:"type:text"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
	DeletedAt  gorm.DeletedAt  `json:"-" gorm:"index"`
}

// BeforeCreate assigns a uuid and defaults status and priority
func (ct *Contact) BeforeCreate(tx *gorm.DB) error {
	if ct.ID == "" {
		ct.ID = uuid.NewString()
	}
	ct.Email = strings.ToLower(strings.TrimSpace(ct.Email))
	if ct.Status == "" {
		ct.Status = ContactPending
	}
	if ct.Priority == "" {
		ct.Priority = PriorityMedium
	}
	return nil
}
