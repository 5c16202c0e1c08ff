package model

import (
	"time"

	"github.com/google/uuid"
)

// Property represents a rental property managed through the platform.
type Property struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerID   uuid.UUID `gorm:"type:uuid;index;not null" json:"owner_id"`
	Name      string    `gorm:"size:256;not null" json:"name"`
	Address   string    `gorm:"size:512" json:"address"`
	RoomCount int       `gorm:"not null" json:"room_count"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`

	// Associations
	Sessions          []CleaningSession  `gorm:"foreignKey:PropertyID" json:"-"`
	LinenRequirements []LinenRequirement `gorm:"foreignKey:PropertyID" json:"-"`
}
