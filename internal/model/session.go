package model

import (
	"time"

	"github.com/google/uuid"
)

// SessionStatus is the lifecycle state of a cleaning session.
type SessionStatus string

const (
	SessionScheduled  SessionStatus = "scheduled"
	SessionConfirmed  SessionStatus = "confirmed"
	SessionInProgress SessionStatus = "in_progress"
	SessionCompleted  SessionStatus = "completed"
	SessionCancelled  SessionStatus = "cancelled"
	SessionNoShow     SessionStatus = "no_show"
)

// Terminal reports whether the status is an end state.
func (s SessionStatus) Terminal() bool {
	return s == SessionCompleted || s == SessionCancelled || s == SessionNoShow
}

// DashboardMetadata is derived per load by the session-loading path; it is
// never persisted. ExpectedCompletionTime is nil when it cannot be computed.
type DashboardMetadata struct {
	ExpectedCompletionTime *time.Time `json:"expected_completion_time,omitempty"`
	IsOverdue              bool       `json:"is_overdue"`
	StatusIndicator        string     `json:"status_indicator"`
	PriorityLevel          string     `json:"priority_level"`
}

// CleaningSession represents one scheduled clean of a property.
// At most one session per cleaner is in_progress at a time; the store's
// lifecycle operations enforce this.
type CleaningSession struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	PropertyID uuid.UUID `gorm:"type:uuid;index;not null" json:"property_id"`
	CleanerID  uuid.UUID `gorm:"type:uuid;index" json:"cleaner_id"`

	ScheduledCleaningTime time.Time `gorm:"index;not null" json:"scheduled_cleaning_time"`
	CheckinTime           time.Time `json:"checkin_time"`
	CheckoutTime          time.Time `json:"checkout_time"`

	Status SessionStatus `gorm:"size:32;not null;default:scheduled" json:"status"`

	CleanerStartedAt  *time.Time `json:"cleaner_started_at,omitempty"`
	CleanerPausedAt   *time.Time `json:"cleaner_paused_at,omitempty"`
	IsCurrentlyPaused bool       `gorm:"not null;default:false" json:"is_currently_paused"`
	TotalBreakMinutes int        `gorm:"not null;default:0" json:"total_break_minutes"`

	PhotosCompleted bool `gorm:"not null;default:false" json:"photos_completed"`
	GuestCount      int  `gorm:"not null;default:0" json:"guest_count"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Associations
	Property Property `gorm:"constraint:OnDelete:CASCADE" json:"property"`

	// Derived, attached by the store when loading dashboard views.
	DashboardMetadata *DashboardMetadata `gorm:"-" json:"dashboard_metadata,omitempty"`
}

// RoomCount returns the associated property's room count, zero when the
// property was not preloaded.
func (s *CleaningSession) RoomCount() int {
	return s.Property.RoomCount
}
