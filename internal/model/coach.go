package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AvailabilityDay lists the bookable slots of a coach on one weekday
type AvailabilityDay struct {
	Day   string   `json:"day"`
	Slots []string `json:"slots"`
}

// Availability is a JSON-serialized list of per-day slot availabilities
type Availability []AvailabilityDay

// Value implements driver.Valuer
func (a Availability) Value() (driver.Value, error) {
	if a == nil {
		return nil, nil
	}
	return json.Marshal(a)
}

// Scan implements sql.Scanner
func (a *Availability) Scan(value interface{}) error {
	if value == nil {
		*a = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, a)
	case string:
		return json.Unmarshal([]byte(v), a)
	default:
		return fmt.Errorf("unsupported availability type %T", value)
	}
}

// Coach represents a coach profile within one tenant. The slug is unique per
// tenant, so the same slug may exist under different tenants.
type Coach struct {
	ID             string         `json:"id" gorm:"type:uuid;primaryKey"`
	TenantID       string         `json:"tenant_id" gorm:"type:uuid;not null;index;uniqueIndex:ux_coaches_tenant_slug"`
	Name           string         `json:"name" gorm:"type:varchar(100);not null"`
	Slug           string         `json:"slug" gorm:"type:varchar(100);not null;uniqueIndex:ux_coaches_tenant_slug"`
	Specialty      string         `json:"specialty" gorm:"type:varchar(100);not null"`
	Experience     string         `json:"experience" gorm:"type:varchar(100);not null"`
	Certifications string         `json:"certifications" gorm:"type:varchar(255);not null"`
	Bio            string         `json:"bio,omitempty" gorm:"type:text"`
	Image          string         `json:"image,omitempty" gorm:"type:varchar(255)"`
	Email          string         `json:"email,omitempty" gorm:"type:varchar(100)"`
	Phone          string         `json:"phone,omitempty" gorm:"type:varchar(30)"`
	Availability   Availability   `json:"availability,omitempty" gorm:"type:jsonb"`
	Rating         float64        `json:"rating" gorm:"default:0"`
	TotalSessions  int            `json:"total_sessions" gorm:"default:0"`
	IsActive       bool           `json:"is_active" gorm:"default:true"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `json:"-" gorm:"index"`
}

// BeforeCreate assigns a uuid and normalizes the slug
func (co *Coach) BeforeCreate(tx *gorm.DB) error {
	if co.ID == "" {
		co.ID = uuid.NewString()
	}
	co.Slug = strings.ToLower(strings.TrimSpace(co.Slug))
	co.Email = strings.ToLower(strings.TrimSpace(co.Email))
	return nil
}
