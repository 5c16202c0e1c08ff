package model

import (
	"time"

	"github.com/google/uuid"
)

// LinenRequirement describes one linen item a property needs per clean.
// BaseQuantity is always supplied; PerGuest is added once per guest.
type LinenRequirement struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	PropertyID   uuid.UUID `gorm:"type:uuid;index;not null" json:"property_id"`
	Item         string    `gorm:"size:128;not null" json:"item"`
	BaseQuantity int       `gorm:"not null" json:"base_quantity"`
	PerGuest     int       `gorm:"not null" json:"per_guest"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// QuantityFor returns the number of items to stage for the given guest count.
func (r LinenRequirement) QuantityFor(guests int) int {
	if guests < 0 {
		guests = 0
	}
	return r.BaseQuantity + r.PerGuest*guests
}
