package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"cleaning-coordination-backend/internal/banner"
	"cleaning-coordination-backend/internal/model"
)

// Lifecycle errors surfaced to the API layer.
var (
	ErrSessionNotFound      = errors.New("session not found")
	ErrInvalidTransition    = errors.New("invalid session status transition")
	ErrAnotherSessionActive = errors.New("cleaner already has a session in progress")
	ErrNotPaused            = errors.New("session is not paused")
	ErrAlreadyPaused        = errors.New("session is already paused")
	ErrPhotosRequired       = errors.New("completion photos are required")
)

// Store defines the interface for all database operations.
type Store interface {
	DB() *gorm.DB

	TodaySessions(ctx context.Context, now time.Time) ([]model.CleaningSession, error)
	SessionByID(ctx context.Context, id uuid.UUID) (*model.CleaningSession, error)

	StartSession(ctx context.Context, id uuid.UUID, now time.Time) (*model.CleaningSession, error)
	PauseSession(ctx context.Context, id uuid.UUID, now time.Time) (*model.CleaningSession, error)
	ResumeSession(ctx context.Context, id uuid.UUID, now time.Time) (*model.CleaningSession, error)
	CompleteSession(ctx context.Context, id uuid.UUID, now time.Time, photosCompleted bool) (*model.CleaningSession, error)
	CancelSession(ctx context.Context, id uuid.UUID) (*model.CleaningSession, error)

	// RecordNotification inserts the dedup row for (session, kind).
	// Returns false without error when that pair was already recorded.
	RecordNotification(ctx context.Context, n *model.Notification) (bool, error)
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) DB() *gorm.DB {
	return s.db
}

// TodaySessions loads the current local day's sessions in chronological
// order, with properties preloaded and dashboard metadata attached.
func (s *gormStore) TodaySessions(ctx context.Context, now time.Time) ([]model.CleaningSession, error) {
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dayEnd := dayStart.Add(24 * time.Hour)

	var sessions []model.CleaningSession
	err := s.db.WithContext(ctx).
		Preload("Property").
		Where("scheduled_cleaning_time >= ? AND scheduled_cleaning_time < ?", dayStart, dayEnd).
		Order("scheduled_cleaning_time ASC").
		Find(&sessions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load today's sessions: %w", err)
	}

	for i := range sessions {
		AttachMetadata(&sessions[i], now)
	}
	return sessions, nil
}

func (s *gormStore) SessionByID(ctx context.Context, id uuid.UUID) (*model.CleaningSession, error) {
	var session model.CleaningSession
	err := s.db.WithContext(ctx).Preload("Property").First(&session, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session %s: %w", id, err)
	}
	return &session, nil
}

// StartSession moves a scheduled or confirmed session to in_progress. The
// single-active-session invariant is enforced here: starting fails while the
// cleaner has any other session in progress.
func (s *gormStore) StartSession(ctx context.Context, id uuid.UUID, now time.Time) (*model.CleaningSession, error) {
	return s.mutateSession(ctx, id, func(tx *gorm.DB, session *model.CleaningSession) error {
		if session.Status != model.SessionScheduled && session.Status != model.SessionConfirmed {
			return fmt.Errorf("%w: cannot start a %s session", ErrInvalidTransition, session.Status)
		}

		var active int64
		if err := tx.Model(&model.CleaningSession{}).
			Where("cleaner_id = ? AND status = ? AND id <> ?", session.CleanerID, model.SessionInProgress, session.ID).
			Count(&active).Error; err != nil {
			return fmt.Errorf("failed to check for active sessions: %w", err)
		}
		if active > 0 {
			return ErrAnotherSessionActive
		}

		session.Status = model.SessionInProgress
		session.CleanerStartedAt = &now
		return nil
	})
}

// PauseSession opens a break on an in_progress session.
func (s *gormStore) PauseSession(ctx context.Context, id uuid.UUID, now time.Time) (*model.CleaningSession, error) {
	return s.mutateSession(ctx, id, func(tx *gorm.DB, session *model.CleaningSession) error {
		if session.Status != model.SessionInProgress {
			return fmt.Errorf("%w: cannot pause a %s session", ErrInvalidTransition, session.Status)
		}
		if session.IsCurrentlyPaused {
			return ErrAlreadyPaused
		}
		session.IsCurrentlyPaused = true
		session.CleanerPausedAt = &now
		return nil
	})
}

// ResumeSession closes the open break, folding its length into
// total_break_minutes.
func (s *gormStore) ResumeSession(ctx context.Context, id uuid.UUID, now time.Time) (*model.CleaningSession, error) {
	return s.mutateSession(ctx, id, func(tx *gorm.DB, session *model.CleaningSession) error {
		if session.Status != model.SessionInProgress || !session.IsCurrentlyPaused {
			return ErrNotPaused
		}
		foldOpenBreak(session, now)
		return nil
	})
}

// CompleteSession finishes an in_progress session. The photo gate applies:
// sessions with three or more guests or rooms cannot complete until photos
// are done. An open break is folded in on the way out.
func (s *gormStore) CompleteSession(ctx context.Context, id uuid.UUID, now time.Time, photosCompleted bool) (*model.CleaningSession, error) {
	return s.mutateSession(ctx, id, func(tx *gorm.DB, session *model.CleaningSession) error {
		if session.Status != model.SessionInProgress {
			return fmt.Errorf("%w: cannot complete a %s session", ErrInvalidTransition, session.Status)
		}

		if photosCompleted {
			session.PhotosCompleted = true
		}
		if banner.PhotosRequired(session.GuestCount, session.RoomCount()) && !session.PhotosCompleted {
			return ErrPhotosRequired
		}

		if session.IsCurrentlyPaused {
			foldOpenBreak(session, now)
		}
		session.Status = model.SessionCompleted
		return nil
	})
}

// CancelSession cancels any session that has not already ended.
func (s *gormStore) CancelSession(ctx context.Context, id uuid.UUID) (*model.CleaningSession, error) {
	return s.mutateSession(ctx, id, func(tx *gorm.DB, session *model.CleaningSession) error {
		if session.Status.Terminal() {
			return fmt.Errorf("%w: cannot cancel a %s session", ErrInvalidTransition, session.Status)
		}
		session.Status = model.SessionCancelled
		return nil
	})
}

// RecordNotification inserts a notification row, relying on the unique
// (session_id, kind) index for dedup. A conflict means an earlier cycle
// already notified; that is not an error.
func (s *gormStore) RecordNotification(ctx context.Context, n *model.Notification) (bool, error) {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	res := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "session_id"}, {Name: "kind"}},
		DoNothing: true,
	}).Create(n)
	if res.Error != nil {
		return false, fmt.Errorf("failed to record notification: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

// mutateSession loads a session, applies the mutation inside a transaction,
// and saves it.
func (s *gormStore) mutateSession(ctx context.Context, id uuid.UUID, mutate func(*gorm.DB, *model.CleaningSession) error) (*model.CleaningSession, error) {
	var session model.CleaningSession
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Property").First(&session, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSessionNotFound
			}
			return fmt.Errorf("failed to load session %s: %w", id, err)
		}
		if err := mutate(tx, &session); err != nil {
			return err
		}
		if err := tx.Omit(clause.Associations).Save(&session).Error; err != nil {
			return fmt.Errorf("failed to save session %s: %w", id, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// foldOpenBreak adds the running pause to the accumulated total and clears
// the pause markers.
func foldOpenBreak(session *model.CleaningSession, now time.Time) {
	if session.CleanerPausedAt != nil && now.After(*session.CleanerPausedAt) {
		session.TotalBreakMinutes += int(now.Sub(*session.CleanerPausedAt) / time.Minute)
	}
	session.IsCurrentlyPaused = false
	session.CleanerPausedAt = nil
}
