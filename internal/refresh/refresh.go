// Package refresh re-derives dashboard metadata on an interval and pushes
// notifications for sessions that became ready or overdue since the last
// cycle.
package refresh

import (
	"context"
	"fmt"
	"log"
	"time"

	"cleaning-coordination-backend/config"
	"cleaning-coordination-backend/internal/model"
	"cleaning-coordination-backend/internal/notification"
	"cleaning-coordination-backend/internal/store"

	"github.com/SherClockHolmes/webpush-go"
)

// overdueGrace is how far past expected completion an in_progress session
// runs before it is flagged.
const overdueGrace = 30 * time.Minute

// Service drives the periodic refresh loop.
type Service struct {
	cfg        *config.Config
	store      store.Store
	workerPool *notification.WorkerPool
	now        func() time.Time
}

// NewService creates and initializes a new refresh service.
func NewService(cfg *config.Config, st store.Store) *Service {
	webpushOptions := webpush.Options{
		VAPIDPublicKey:  cfg.Push.PublicKey,
		VAPIDPrivateKey: cfg.Push.PrivateKey,
		Subscriber:      cfg.Push.Subject,
		TTL:             cfg.Push.TTL,
	}

	return &Service{
		cfg:        cfg,
		store:      st,
		workerPool: notification.NewWorkerPool(cfg.WorkerPool.Size, st.DB(), &webpushOptions),
		now:        time.Now,
	}
}

// SetClock overrides the service's time source; used by tests.
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

// Run starts the refresh loop until the context is cancelled.
func (s *Service) Run(ctx context.Context) {
	if !s.cfg.Refresh.Enabled {
		log.Println("Refresh loop is disabled. Not starting.")
		return
	}
	log.Println("Starting refresh service...")

	s.workerPool.Start(ctx)
	s.RefreshOnce(ctx)

	timer := time.NewTimer(s.cfg.Refresh.Interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Refresh service shutting down.")
			return
		case <-timer.C:
			s.RefreshOnce(ctx)
			timer.Reset(s.cfg.Refresh.Interval)
		}
	}
}

// RefreshOnce performs a single refresh cycle. Errors abort the cycle, never
// the loop.
func (s *Service) RefreshOnce(ctx context.Context) {
	now := s.now()

	sessions, err := s.store.TodaySessions(ctx, now)
	if err != nil {
		log.Printf("Refresh cycle aborted: %v", err)
		return
	}

	for i := range sessions {
		session := &sessions[i]
		kind, message, ok := classify(session, now)
		if !ok {
			continue
		}

		created, err := s.store.RecordNotification(ctx, &model.Notification{
			SessionID:  session.ID,
			PropertyID: session.PropertyID,
			Kind:       kind,
			Message:    message,
			SentAt:     now,
		})
		if err != nil {
			log.Printf("Error recording %s notification for session %s: %v", kind, session.ID, err)
			continue
		}
		if !created {
			continue // already notified in an earlier cycle
		}

		s.workerPool.Dispatch(notification.Job{SessionID: session.ID, Message: message})
	}
}

// classify decides whether a session currently warrants a notification.
func classify(session *model.CleaningSession, now time.Time) (model.NotificationKind, string, bool) {
	name := session.Property.Name
	if name == "" {
		name = "the property"
	}

	switch session.Status {
	case model.SessionScheduled, model.SessionConfirmed:
		if now.After(session.ScheduledCleaningTime) {
			return model.NotifySessionReady,
				fmt.Sprintf("The cleaning at %s is ready to start.", name), true
		}
	case model.SessionInProgress:
		meta := session.DashboardMetadata
		if meta != nil && meta.ExpectedCompletionTime != nil &&
			now.After(meta.ExpectedCompletionTime.Add(overdueGrace)) {
			return model.NotifySessionOverdue,
				fmt.Sprintf("The cleaning at %s is running well past its expected finish.", name), true
		}
	}
	return "", "", false
}
