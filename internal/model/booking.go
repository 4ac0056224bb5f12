package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SessionType is the kind of training session being booked
type SessionType string

const (
	SessionPersonal   SessionType = "personal"
	SessionAssessment SessionType = "assessment"
	SessionNutrition  SessionType = "nutrition"
)

// Valid reports whether the session type is one of the known types
func (s SessionType) Valid() bool {
	switch s {
	case SessionPersonal, SessionAssessment, SessionNutrition:
		return true
	}
	return false
}

// BookingStatus is the lifecycle state of a booking
type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
	BookingCompleted BookingStatus = "completed"
)

// Valid reports whether the status is one of the known statuses
func (s BookingStatus) Valid() bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingCancelled, BookingCompleted:
		return true
	}
	return false
}

// TimeSlots are the bookable slots of a day
var TimeSlots = []string{"6am", "8am", "10am", "4pm", "6pm", "8pm"}

// ValidTimeSlot reports whether the given slot is bookable
func ValidTimeSlot(slot string) bool {
	for _, s := range TimeSlots {
		if s == slot {
			return true
		}
	}
	return false
}

// Booking represents a session booking within one tenant. The partial unique
// index over (tenant_id, coach, date, time) excludes cancelled bookings and is
// the authoritative guard against double-booking a slot; the handler-level
// existence check is only a friendly pre-check.
type Booking struct {
	ID          string         `json:"id" gorm:"type:uuid;primaryKey"`
	TenantID    string         `json:"tenant_id" gorm:"type:uuid;not null;index;uniqueIndex:ux_bookings_slot,where:status <> 'cancelled'"`
	Name        string         `json:"name" gorm:"type:varchar(100);not null"`
	Email       string         `json:"email" gorm:"type:varchar(100);not null;index"`
	Phone       string         `json:"phone" gorm:"type:varchar(30);not null"`
	Coach       string         `json:"coach" gorm:"type:varchar(100);not null;uniqueIndex:ux_bookings_slot"`
	SessionType SessionType    `json:"session_type" gorm:"type:varchar(20);not null"`
	Date        time.Time      `json:"date" gorm:"type:date;not null;uniqueIndex:ux_bookings_slot"`
	Time        string         `json:"time" gorm:"type:varchar(10);not null;uniqueIndex:ux_bookings_slot"`
	Status      BookingStatus  `json:"status" gorm:"type:varchar(20);default:'pending';index"`
	Notes       string         `json:"notes,omitempty" gorm:"type:text"`
	UserID      *string        `json:"user_id,omitempty" gorm:"type:uuid;index"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}

// BeforeCreate assigns a uuid and defaults the status
func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	b.Email = strings.ToLower(strings.TrimSpace(b.Email))
	if b.Status == "" {
		b.Status = BookingPending
	}
	return nil
}
