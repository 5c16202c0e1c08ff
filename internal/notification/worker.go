package notification

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"cleaning-coordination-backend/internal/model"
)

// Sender defines the interface for sending a web push notification.
type Sender interface {
	Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error)
}

// WebPushSender is the real Sender backed by the webpush library.
type WebPushSender struct{}

// Send sends a notification using the webpush library.
func (s *WebPushSender) Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
	return webpush.SendNotification(payload, sub, options)
}

// Job is one push request: notify everyone watching a session's property.
type Job struct {
	SessionID uuid.UUID
	Message   string
}

// WorkerPool manages a pool of workers for sending push notifications.
type WorkerPool struct {
	size    int
	jobs    chan Job
	db      *gorm.DB
	webpush *webpush.Options
	sender  Sender
}

// NewWorkerPool creates a new worker pool.
func NewWorkerPool(size int, db *gorm.DB, webpushOptions *webpush.Options) *WorkerPool {
	return &WorkerPool{
		size:    size,
		jobs:    make(chan Job, size),
		db:      db,
		webpush: webpushOptions,
		sender:  &WebPushSender{},
	}
}

// Start launches the worker goroutines.
func (wp *WorkerPool) Start(ctx context.Context) {
	for i := 0; i < wp.size; i++ {
		go wp.worker(ctx, i)
	}
}

func (wp *WorkerPool) worker(ctx context.Context, id int) {
	log.Printf("notification worker %d started", id)
	for {
		select {
		case job := <-wp.jobs:
			wp.sendForSession(ctx, job)
		case <-ctx.Done():
			log.Printf("notification worker %d shutting down", id)
			return
		}
	}
}

// Dispatch queues a job for delivery.
func (wp *WorkerPool) Dispatch(job Job) {
	wp.jobs <- job
}

// Jobs returns the jobs channel for testing.
func (wp *WorkerPool) Jobs() chan Job {
	return wp.jobs
}

// sendForSession fans the job's message out to every subscription watching
// the session's property.
func (wp *WorkerPool) sendForSession(ctx context.Context, job Job) {
	var session model.CleaningSession
	if err := wp.db.WithContext(ctx).Preload("Property").
		First(&session, "id = ?", job.SessionID).Error; err != nil {
		log.Printf("Error fetching session %s: %v", job.SessionID, err)
		return
	}

	var subscriptions []model.PushSubscription
	err := wp.db.WithContext(ctx).
		Joins("JOIN subscription_property_mapping spm ON spm.push_subscription_endpoint = push_subscriptions.endpoint").
		Where("spm.property_id = ?", session.PropertyID).
		Find(&subscriptions).Error
	if err != nil {
		log.Printf("Error fetching subscriptions for property %s: %v", session.PropertyID, err)
		return
	}
	if len(subscriptions) == 0 {
		return
	}

	message := job.Message
	if message == "" {
		message = fmt.Sprintf("Update for the cleaning at %s", session.Property.Name)
	}

	log.Printf("Sending %d notifications for session %s", len(subscriptions), job.SessionID)
	for _, sub := range subscriptions {
		wp.sendOne(ctx, sub, []byte(message))
	}
}

// sendOne delivers a single web push notification and prunes expired
// subscriptions.
func (wp *WorkerPool) sendOne(ctx context.Context, sub model.PushSubscription, payload []byte) {
	wpSub := &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.P256DH,
			Auth:   sub.Auth,
		},
	}

	resp, err := wp.sender.Send(payload, wpSub, wp.webpush)
	if err != nil {
		log.Printf("Error sending notification to %s: %v", sub.Endpoint, err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusGone {
		log.Printf("Subscription for endpoint %s is expired. Deleting.", sub.Endpoint)
		if err := wp.db.WithContext(ctx).Delete(&sub).Error; err != nil {
			log.Printf("Failed to delete expired subscription %s: %v", sub.Endpoint, err)
		}
	}
}

// SetSender swaps the delivery implementation; used by tests.
func (wp *WorkerPool) SetSender(s Sender) {
	wp.sender = s
}
