package store

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"cleaning-coordination-backend/internal/model"
)

// newTestStore opens an isolated in-memory SQLite database with the schema
// migrated.
func newTestStore(t *testing.T) Store {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&model.Property{},
		&model.LinenRequirement{},
		&model.CleaningSession{},
		&model.Notification{},
		&model.PushSubscription{},
	))
	return NewGormStore(db)
}

func seedSession(t *testing.T, s Store, scheduled time.Time, rooms, guests int) *model.CleaningSession {
	t.Helper()
	property := model.Property{
		ID:        uuid.New(),
		OwnerID:   uuid.New(),
		Name:      "Seaview Loft",
		RoomCount: rooms,
	}
	require.NoError(t, s.DB().Create(&property).Error)

	session := model.CleaningSession{
		ID:                    uuid.New(),
		PropertyID:            property.ID,
		CleanerID:             uuid.New(),
		ScheduledCleaningTime: scheduled,
		CheckinTime:           scheduled.Add(6 * time.Hour),
		CheckoutTime:          scheduled.Add(-2 * time.Hour),
		Status:                model.SessionScheduled,
		GuestCount:            guests,
	}
	require.NoError(t, s.DB().Create(&session).Error)
	return &session
}

func TestSessionLifecycle(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	now := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)

	seeded := seedSession(t, s, now, 2, 2)

	started, err := s.StartSession(ctx, seeded.ID, now)
	require.NoError(t, err)
	assert.Equal(t, model.SessionInProgress, started.Status)
	require.NotNil(t, started.CleanerStartedAt)

	paused, err := s.PauseSession(ctx, seeded.ID, now.Add(40*time.Minute))
	require.NoError(t, err)
	assert.True(t, paused.IsCurrentlyPaused)

	resumed, err := s.ResumeSession(ctx, seeded.ID, now.Add(55*time.Minute))
	require.NoError(t, err)
	assert.False(t, resumed.IsCurrentlyPaused)
	assert.Equal(t, 15, resumed.TotalBreakMinutes)
	assert.Nil(t, resumed.CleanerPausedAt)

	completed, err := s.CompleteSession(ctx, seeded.ID, now.Add(2*time.Hour), false)
	require.NoError(t, err)
	assert.Equal(t, model.SessionCompleted, completed.Status)
}

func TestStartSession_SingleActiveInvariant(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	now := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)

	first := seedSession(t, s, now, 2, 2)
	second := seedSession(t, s, now.Add(2*time.Hour), 2, 2)
	// Same cleaner on both jobs.
	require.NoError(t, s.DB().Model(&model.CleaningSession{}).
		Where("id = ?", second.ID).
		Update("cleaner_id", first.CleanerID).Error)

	_, err := s.StartSession(ctx, first.ID, now)
	require.NoError(t, err)

	_, err = s.StartSession(ctx, second.ID, now.Add(10*time.Minute))
	assert.ErrorIs(t, err, ErrAnotherSessionActive)

	// Finishing the first clears the way.
	_, err = s.CompleteSession(ctx, first.ID, now.Add(time.Hour), false)
	require.NoError(t, err)
	_, err = s.StartSession(ctx, second.ID, now.Add(90*time.Minute))
	assert.NoError(t, err)
}

func TestStartSession_InvalidStates(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	now := time.Now().UTC()

	seeded := seedSession(t, s, now, 1, 1)
	require.NoError(t, s.DB().Model(&model.CleaningSession{}).
		Where("id = ?", seeded.ID).
		Update("status", model.SessionCompleted).Error)

	_, err := s.StartSession(ctx, seeded.ID, now)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = s.StartSession(ctx, uuid.New(), now)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestPauseResume_Guards(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	now := time.Now().UTC()

	seeded := seedSession(t, s, now, 1, 1)

	_, err := s.PauseSession(ctx, seeded.ID, now)
	assert.ErrorIs(t, err, ErrInvalidTransition, "cannot pause before starting")

	_, err = s.StartSession(ctx, seeded.ID, now)
	require.NoError(t, err)

	_, err = s.ResumeSession(ctx, seeded.ID, now)
	assert.ErrorIs(t, err, ErrNotPaused)

	_, err = s.PauseSession(ctx, seeded.ID, now)
	require.NoError(t, err)
	_, err = s.PauseSession(ctx, seeded.ID, now)
	assert.ErrorIs(t, err, ErrAlreadyPaused)
}

func TestCompleteSession_PhotoGate(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	now := time.Now().UTC()

	// Four guests trips the photo requirement.
	seeded := seedSession(t, s, now, 4, 4)
	_, err := s.StartSession(ctx, seeded.ID, now)
	require.NoError(t, err)

	_, err = s.CompleteSession(ctx, seeded.ID, now.Add(time.Hour), false)
	assert.ErrorIs(t, err, ErrPhotosRequired)

	completed, err := s.CompleteSession(ctx, seeded.ID, now.Add(time.Hour), true)
	require.NoError(t, err)
	assert.Equal(t, model.SessionCompleted, completed.Status)
	assert.True(t, completed.PhotosCompleted)
}

func TestCompleteSession_FoldsOpenBreak(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	seeded := seedSession(t, s, now, 1, 1)
	_, err := s.StartSession(ctx, seeded.ID, now)
	require.NoError(t, err)
	_, err = s.PauseSession(ctx, seeded.ID, now.Add(30*time.Minute))
	require.NoError(t, err)

	completed, err := s.CompleteSession(ctx, seeded.ID, now.Add(50*time.Minute), false)
	require.NoError(t, err)
	assert.Equal(t, 20, completed.TotalBreakMinutes)
	assert.False(t, completed.IsCurrentlyPaused)
}

func TestCancelSession(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	now := time.Now().UTC()

	seeded := seedSession(t, s, now, 1, 1)
	cancelled, err := s.CancelSession(ctx, seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, model.SessionCancelled, cancelled.Status)

	_, err = s.CancelSession(ctx, seeded.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestTodaySessions(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)

	later := seedSession(t, s, now.Add(3*time.Hour), 2, 2)
	earlier := seedSession(t, s, now.Add(-3*time.Hour), 2, 2)
	seedSession(t, s, now.Add(26*time.Hour), 2, 2) // tomorrow, excluded

	sessions, err := s.TodaySessions(ctx, now)
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Equal(t, earlier.ID, sessions[0].ID, "chronological order")
	assert.Equal(t, later.ID, sessions[1].ID)

	for _, got := range sessions {
		require.NotNil(t, got.DashboardMetadata, "metadata attached on load")
		assert.Equal(t, "Seaview Loft", got.Property.Name, "property preloaded")
	}
	assert.True(t, sessions[0].DashboardMetadata.IsOverdue, "missed start is flagged")
}

func TestRecordNotification_Dedup(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	now := time.Now().UTC()

	seeded := seedSession(t, s, now, 1, 1)
	n := model.Notification{
		SessionID:  seeded.ID,
		PropertyID: seeded.PropertyID,
		Kind:       model.NotifySessionOverdue,
		Message:    "Cleaning at Seaview Loft is overdue",
		SentAt:     now,
	}

	created, err := s.RecordNotification(ctx, &n)
	require.NoError(t, err)
	assert.True(t, created)

	again := model.Notification{
		SessionID: seeded.ID,
		Kind:      model.NotifySessionOverdue,
		Message:   "duplicate",
		SentAt:    now,
	}
	created, err = s.RecordNotification(ctx, &again)
	require.NoError(t, err)
	assert.False(t, created, "same (session, kind) pair is ignored")

	other := model.Notification{
		SessionID: seeded.ID,
		Kind:      model.NotifySessionCompleted,
		Message:   "different kind",
		SentAt:    now,
	}
	created, err = s.RecordNotification(ctx, &other)
	require.NoError(t, err)
	assert.True(t, created)
}
