package model

import (
	"time"

	"github.com/google/uuid"
)

// NotificationKind classifies a dispatched notification. The refresher uses
// the (session, kind) pair as its dedup key, so each kind fires at most once
// per session.
type NotificationKind string

const (
	NotifySessionReady     NotificationKind = "session_ready"
	NotifySessionOverdue   NotificationKind = "session_overdue"
	NotifySessionCompleted NotificationKind = "session_completed"
)

// Notification is a record of a push notification sent for a session.
type Notification struct {
	ID         uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	SessionID  uuid.UUID        `gorm:"type:uuid;index:idx_notification_session_kind,unique;not null" json:"session_id"`
	Kind       NotificationKind `gorm:"size:64;index:idx_notification_session_kind,unique;not null" json:"kind"`
	PropertyID uuid.UUID        `gorm:"type:uuid;index" json:"property_id"`
	Message    string           `gorm:"size:512;not null" json:"message"`
	SentAt     time.Time        `gorm:"index;not null" json:"sent_at"`
}
