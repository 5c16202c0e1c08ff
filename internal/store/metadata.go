package store

import (
	"time"

	"cleaning-coordination-backend/internal/model"
)

// Estimated clean duration: an hour of base work, 25 minutes per room, and
// 10 minutes per guest beyond a couple, capped at four hours. This stands in
// until real per-property duration data exists.
const (
	baseCleanMinutes    = 60
	perRoomMinutes      = 25
	perExtraGuestMinute = 10
	maxCleanMinutes     = 240
)

// EstimatedDurationMinutes returns the expected length of a clean for the
// given property size and booking.
func EstimatedDurationMinutes(roomCount, guestCount int) int {
	minutes := baseCleanMinutes + perRoomMinutes*roomCount
	if guestCount > 2 {
		minutes += perExtraGuestMinute * (guestCount - 2)
	}
	if minutes > maxCleanMinutes {
		minutes = maxCleanMinutes
	}
	return minutes
}

// AttachMetadata derives and attaches the dashboard metadata for a session.
// Terminal sessions get an indicator but no expected completion time.
func AttachMetadata(session *model.CleaningSession, now time.Time) {
	meta := &model.DashboardMetadata{
		StatusIndicator: string(session.Status),
		PriorityLevel:   "low",
	}
	session.DashboardMetadata = meta

	if session.Status.Terminal() {
		return
	}

	anchor := session.ScheduledCleaningTime
	if session.CleanerStartedAt != nil {
		anchor = *session.CleanerStartedAt
	}
	duration := EstimatedDurationMinutes(session.RoomCount(), session.GuestCount)
	expected := anchor.Add(time.Duration(duration+session.TotalBreakMinutes) * time.Minute)
	meta.ExpectedCompletionTime = &expected

	switch session.Status {
	case model.SessionInProgress:
		meta.PriorityLevel = "medium"
		meta.StatusIndicator = "in_progress"
		if session.IsCurrentlyPaused {
			meta.StatusIndicator = "paused"
		}
		if now.After(expected) {
			meta.IsOverdue = true
			meta.PriorityLevel = "high"
			meta.StatusIndicator = "overdue"
		}
	default:
		// Not started yet: overdue means the scheduled start has passed.
		if now.After(session.ScheduledCleaningTime) {
			meta.IsOverdue = true
			meta.PriorityLevel = "high"
			meta.StatusIndicator = "start_overdue"
		} else if session.ScheduledCleaningTime.Sub(now) <= 30*time.Minute {
			meta.PriorityLevel = "medium"
			meta.StatusIndicator = "upcoming"
		}
	}
}
