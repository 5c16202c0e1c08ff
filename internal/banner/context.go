package banner

import (
	"time"

	"cleaning-coordination-backend/internal/model"
)

// ContextFor links today's sessions into an evaluation context: the active
// session is the (at most one) in_progress session, the next session is the
// soonest not-yet-started one. Sessions may arrive in any order.
func ContextFor(sessions []model.CleaningSession, now time.Time, role Role, online bool) Context {
	ctx := Context{
		Sessions:    sessions,
		CurrentTime: now,
		UserRole:    role,
		IsOnline:    online,
	}

	for i := range sessions {
		s := &sessions[i]
		switch s.Status {
		case model.SessionInProgress:
			if ctx.ActiveSession == nil {
				ctx.ActiveSession = s
			}
		case model.SessionScheduled, model.SessionConfirmed:
			if ctx.NextSession == nil || s.ScheduledCleaningTime.Before(ctx.NextSession.ScheduledCleaningTime) {
				ctx.NextSession = s
			}
		}
	}
	return ctx
}
