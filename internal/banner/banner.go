// Package banner derives the cleaner dashboard banner from today's cleaning
// sessions. Calculate is a pure function: no I/O, no shared state, total over
// its input. Callers rebuild the context and re-evaluate on a timer and on
// every session change.
package banner

import (
	"fmt"
	"math"
	"time"

	"cleaning-coordination-backend/internal/model"
	"cleaning-coordination-backend/internal/timewindow"
)

// Status is one of the seven discrete banner states.
type Status string

const (
	StatusRelax          Status = "relax"
	StatusScheduled      Status = "scheduled"
	StatusReady          Status = "ready"
	StatusActive         Status = "active"
	StatusBreak          Status = "break"
	StatusAwaitingPhotos Status = "awaiting_photos"
	StatusDayWrap        Status = "day_wrap"
)

// Priority is the display urgency of a banner.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// Role identifies the viewing user. Only cleaners get a meaningful banner.
type Role string

const (
	RoleCleaner       Role = "cleaner"
	RolePropertyOwner Role = "property_owner"
	RoleCoHost        Role = "co_host"
)

// Fixed local-time windows for the time-of-day rules. Start inclusive, end
// exclusive, compared as minute-of-day.
var (
	morningWindow = timewindow.MustParse("08:00-10:00")
	lunchWindow   = timewindow.MustParse("12:00-13:00")
	wrapWindow    = timewindow.MustParse("15:00-16:00")
)

const lateGraceMinutes = 30 // past expected completion before "overdue"

// Context is the immutable snapshot a single evaluation runs against.
type Context struct {
	Sessions      []model.CleaningSession
	CurrentTime   time.Time
	ActiveSession *model.CleaningSession
	NextSession   *model.CleaningSession
	UserRole      Role
	IsOnline      bool
}

// Result is the fully populated banner for one evaluation.
type Result struct {
	Status         Status   `json:"status"`
	Message        string   `json:"message"`
	TimeRemaining  *int     `json:"time_remaining,omitempty"` // minutes
	Priority       Priority `json:"priority"`
	ActionRequired bool     `json:"action_required,omitempty"`
	NextAction     string   `json:"next_action,omitempty"`
	UrgencyReason  string   `json:"urgency_reason,omitempty"`
}

// Calculate evaluates the banner rules in fixed priority order; the first
// matching rule wins. It never fails: malformed or partial sessions fall back
// to defensive defaults rather than errors.
func Calculate(ctx Context) Result {
	if ctx.UserRole != RoleCleaner {
		return Result{
			Status:   StatusRelax,
			Message:  "The cleaning banner is only shown to cleaners.",
			Priority: PriorityLow,
		}
	}

	if !ctx.IsOnline {
		return Result{
			Status:         StatusRelax,
			Message:        "You appear to be offline. Session updates are paused.",
			Priority:       PriorityMedium,
			ActionRequired: true,
			NextAction:     "Check internet connection",
		}
	}

	if ctx.ActiveSession != nil {
		return evaluateActiveSession(ctx.ActiveSession, ctx.CurrentTime)
	}

	if ctx.NextSession != nil {
		return evaluateNextSession(ctx.NextSession, ctx.CurrentTime)
	}

	if r, ok := evaluateTimeOfDay(ctx.Sessions, ctx.CurrentTime); ok {
		return r
	}

	return evaluateDayState(ctx.Sessions, ctx.CurrentTime)
}

// evaluateActiveSession handles a cleaner mid-job: photo gating first, then
// an open pause, then normal progress with late/overdue escalation.
func evaluateActiveSession(s *model.CleaningSession, now time.Time) Result {
	guests := s.GuestCount
	rooms := s.RoomCount()
	expected := expectedCompletion(s)
	runningLate := expected != nil && now.After(*expected)

	if PhotosRequired(guests, rooms) && !s.PhotosCompleted {
		r := Result{
			Status:         StatusAwaitingPhotos,
			Message:        fmt.Sprintf("Upload %d photos to finish this clean.", RequiredPhotoCount(guests, rooms)),
			Priority:       PriorityHigh,
			ActionRequired: true,
			NextAction:     "Take required photos",
		}
		if runningLate {
			r.Priority = PriorityUrgent
			r.UrgencyReason = "Session is past its expected completion time"
		}
		return r
	}

	if s.IsCurrentlyPaused {
		paused := s.TotalBreakMinutes
		if s.CleanerPausedAt != nil && now.After(*s.CleanerPausedAt) {
			paused += int(now.Sub(*s.CleanerPausedAt) / time.Minute)
		}
		r := Result{
			Status:     StatusBreak,
			Message:    fmt.Sprintf("On break for %dm. Resume when you're ready.", paused),
			Priority:   PriorityMedium,
			NextAction: "Resume cleaning",
		}
		if paused > 30 {
			r.Priority = PriorityHigh
			r.ActionRequired = true
			r.Message = fmt.Sprintf("Break has run %dm. Time to get back to it.", paused)
		}
		return r
	}

	elapsed := 0
	if s.CleanerStartedAt != nil && now.After(*s.CleanerStartedAt) {
		elapsed = int(now.Sub(*s.CleanerStartedAt)/time.Minute) - s.TotalBreakMinutes
		if elapsed < 0 {
			elapsed = 0
		}
	}

	r := Result{
		Status:   StatusActive,
		Message:  fmt.Sprintf("Cleaning in progress, %dm elapsed.", elapsed),
		Priority: PriorityMedium,
	}
	if runningLate {
		lateBy := int(now.Sub(*expected) / time.Minute)
		r.Priority = PriorityHigh
		r.Message = fmt.Sprintf("Running %dm past expected completion.", lateBy)
		r.UrgencyReason = "Past expected completion time"
		if lateBy > lateGraceMinutes {
			r.Priority = PriorityUrgent
			r.UrgencyReason = "More than 30 minutes past expected completion"
		}
	} else if expected != nil {
		remaining := int(math.Ceil(expected.Sub(now).Minutes()))
		r.TimeRemaining = &remaining
	}
	return r
}

// evaluateNextSession handles the countdown to the soonest still-scheduled
// session when nothing is in progress.
func evaluateNextSession(s *model.CleaningSession, now time.Time) Result {
	minutesUntil := int(math.Ceil(s.ScheduledCleaningTime.Sub(now).Minutes()))

	if minutesUntil < 0 {
		return Result{
			Status:         StatusReady,
			Message:        fmt.Sprintf("OVERDUE by %dm. This cleaning should have started.", -minutesUntil),
			Priority:       PriorityUrgent,
			ActionRequired: true,
			NextAction:     "Start cleaning now",
			UrgencyReason:  "Scheduled start time has passed",
		}
	}

	if minutesUntil <= 30 {
		priority := PriorityHigh
		if minutesUntil <= 15 {
			priority = PriorityUrgent
		}
		return Result{
			Status:        StatusReady,
			Message:       fmt.Sprintf("Next cleaning starts in %dm.", minutesUntil),
			TimeRemaining: &minutesUntil,
			Priority:      priority,
			NextAction:    "Head to the property",
		}
	}

	return Result{
		Status:        StatusScheduled,
		Message:       fmt.Sprintf("Next cleaning in %s.", formatLead(minutesUntil)),
		TimeRemaining: &minutesUntil,
		Priority:      PriorityLow,
	}
}

// evaluateTimeOfDay applies the three fixed local-time windows. Returns
// ok=false when no window rule fires so the caller falls through to the
// day-state rules.
func evaluateTimeOfDay(sessions []model.CleaningSession, now time.Time) (Result, bool) {
	if morningWindow.Contains(now) {
		if n := countByStatus(sessions, model.SessionScheduled); n > 0 {
			return Result{
				Status:   StatusScheduled,
				Message:  fmt.Sprintf("%d cleanings on the books today. Time to prep.", n),
				Priority: PriorityMedium,
			}, true
		}
		return Result{}, false
	}

	if lunchWindow.Contains(now) {
		// Suggestion only: fires whether or not the session is actually
		// paused. See the design inconsistency note in DESIGN.md.
		if countByStatus(sessions, model.SessionInProgress) > 0 {
			return Result{
				Status:     StatusBreak,
				Message:    "Midday already. A lunch break keeps the afternoon sharp.",
				Priority:   PriorityMedium,
				NextAction: "Pause for lunch",
			}, true
		}
		return Result{}, false
	}

	if wrapWindow.Contains(now) {
		if allTerminal(sessions) {
			return Result{
				Status:   StatusDayWrap,
				Message:  "All cleanings wrapped up for today.",
				Priority: PriorityLow,
			}, true
		}
		remaining := len(sessions) - countTerminal(sessions)
		return Result{
			Status:        StatusReady,
			Message:       fmt.Sprintf("%d cleanings still open this afternoon.", remaining),
			Priority:      PriorityHigh,
			UrgencyReason: "Cleaning window closing soon",
		}, true
	}

	return Result{}, false
}

// evaluateDayState is the final fallback once no higher-priority rule fired.
func evaluateDayState(sessions []model.CleaningSession, now time.Time) Result {
	hour := now.Hour()

	if hour >= 15 && len(sessions) > 0 && countByStatus(sessions, model.SessionCompleted) == len(sessions) {
		return Result{
			Status:   StatusDayWrap,
			Message:  "Every cleaning finished. Nice work today.",
			Priority: PriorityLow,
		}
	}

	if hour < 10 && len(sessions) == 0 {
		return Result{
			Status:   StatusRelax,
			Message:  "No cleanings scheduled today. Enjoy the morning.",
			Priority: PriorityLow,
		}
	}

	if hour >= 16 && allTerminal(sessions) {
		return Result{
			Status:   StatusRelax,
			Message:  "All done here. Enjoy your evening.",
			Priority: PriorityLow,
		}
	}

	return Result{
		Status:   StatusRelax,
		Message:  "Check your schedule for upcoming cleanings.",
		Priority: PriorityLow,
	}
}

func expectedCompletion(s *model.CleaningSession) *time.Time {
	if s.DashboardMetadata == nil {
		return nil
	}
	return s.DashboardMetadata.ExpectedCompletionTime
}

func countByStatus(sessions []model.CleaningSession, status model.SessionStatus) int {
	n := 0
	for i := range sessions {
		if sessions[i].Status == status {
			n++
		}
	}
	return n
}

// allTerminal treats completed and cancelled as terminal; vacuously true for
// an empty day.
func allTerminal(sessions []model.CleaningSession) bool {
	return countTerminal(sessions) == len(sessions)
}

func countTerminal(sessions []model.CleaningSession) int {
	n := 0
	for i := range sessions {
		if sessions[i].Status == model.SessionCompleted || sessions[i].Status == model.SessionCancelled {
			n++
		}
	}
	return n
}

// formatLead renders a lead time in minutes as "Xm" under an hour and
// "Xh Ym" from an hour up.
func formatLead(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}
