package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SubscriptionPlan is the billing plan a tenant is subscribed to
type SubscriptionPlan string

const (
	PlanFree       SubscriptionPlan = "free"
	PlanBasic      SubscriptionPlan = "basic"
	PlanPremium    SubscriptionPlan = "premium"
	PlanEnterprise SubscriptionPlan = "enterprise"
)

// Valid reports whether the plan is one of the known plans
func (p SubscriptionPlan) Valid() bool {
	switch p {
	case PlanFree, PlanBasic, PlanPremium, PlanEnterprise:
		return true
	}
	return false
}

// SubscriptionStatus is the lifecycle state of a tenant subscription
type SubscriptionStatus string

const (
	SubscriptionActive    SubscriptionStatus = "active"
	SubscriptionInactive  SubscriptionStatus = "inactive"
	SubscriptionSuspended SubscriptionStatus = "suspended"
)

// Valid reports whether the status is one of the known statuses
func (s SubscriptionStatus) Valid() bool {
	switch s {
	case SubscriptionActive, SubscriptionInactive, SubscriptionSuspended:
		return true
	}
	return false
}

// TenantAddress holds the tenant's postal address
type TenantAddress struct {
	Street  string `json:"street,omitempty"`
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	ZipCode string `json:"zip_code,omitempty"`
	Country string `json:"country,omitempty"`
}

// TenantBranding holds per-tenant branding settings
type TenantBranding struct {
	Logo           string `json:"logo,omitempty"`
	PrimaryColor   string `json:"primary_color,omitempty"`
	SecondaryColor string `json:"secondary_color,omitempty"`
}

// TenantSettings holds per-tenant operational settings
type TenantSettings struct {
	Timezone string         `json:"timezone"`
	Currency string         `json:"currency"`
	Branding TenantBranding `json:"branding" gorm:"embedded;embeddedPrefix:branding_"`
}

// Subscription holds the tenant's subscription state
type Subscription struct {
	Plan      SubscriptionPlan   `json:"plan" gorm:"type:varchar(20)"`
	Status    SubscriptionStatus `json:"status" gorm:"type:varchar(20)"`
	ExpiresAt *time.Time         `json:"expires_at,omitempty"`
}

// Tenant represents one gym organization. Every scoped resource carries the
// tenant id as a foreign key; no resource is shared across tenants.
type Tenant struct {
	ID           string         `json:"id" gorm:"type:uuid;primaryKey"`
	Name         string         `json:"name" gorm:"type:varchar(100);not null"`
	Slug         string         `json:"slug" gorm:"type:varchar(100);uniqueIndex;not null"`
	Email        string         `json:"email" gorm:"type:varchar(100);index;not null"`
	Phone        string         `json:"phone" gorm:"type:varchar(30);not null"`
	Address      TenantAddress  `json:"address" gorm:"embedded;embeddedPrefix:address_"`
	Settings     TenantSettings `json:"settings" gorm:"embedded;embeddedPrefix:settings_"`
	Subscription Subscription   `json:"subscription" gorm:"embedded;embeddedPrefix:subscription_"`
	IsActive     bool           `json:"is_active" gorm:"default:true"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"-" gorm:"index"`
}

// BeforeCreate assigns a uuid, normalizes the slug and fills setting defaults
func (t *Tenant) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	t.Slug = strings.ToLower(strings.TrimSpace(t.Slug))
	if t.Settings.Timezone == "" {
		t.Settings.Timezone = "Asia/Kolkata"
	}
	if t.Settings.Currency == "" {
		t.Settings.Currency = "INR"
	}
	if t.Subscription.Plan == "" {
		t.Subscription.Plan = PlanFree
	}
	if t.Subscription.Status == "" {
		t.Subscription.Status = SubscriptionActive
	}
	return nil
}
