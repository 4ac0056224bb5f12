package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FAQCategory groups FAQs for filtering
type FAQCategory string

const (
	FAQGeneral    FAQCategory = "general"
	FAQMembership FAQCategory = "membership"
	FAQTraining   FAQCategory = "training"
	FAQFacilities FAQCategory = "facilities"
	FAQOther      FAQCategory = "other"
)

// Valid reports whether the category is one of the known categories
func (c FAQCategory) Valid() bool {
	switch c {
	case FAQGeneral, FAQMembership, FAQTraining, FAQFacilities, FAQOther:
		return true
	}
	return false
}

// FAQ represents a frequently-asked question within one tenant
type FAQ struct {
	ID        string         `json:"id" gorm:"type:uuid;primaryKey"`
	TenantID  string         `json:"tenant_id" gorm:"type:uuid;not null;index"`
	Question  string         `json:"question" gorm:"type:text;not null"`
	Answer    string         `json:"answer" gorm:"type:text;not null"`
	Category  FAQCategory    `json:"category" gorm:"type:varchar(20);default:'general';index"`
	Order     int            `json:"order" gorm:"column:display_order;default:0"`
	IsActive  bool           `json:"is_active" gorm:"default:true"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// BeforeCreate assigns a uuid and defaults the category
func (f *FAQ) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	if f.Category == "" {
		f.Category = FAQGeneral
	}
	return nil
}
