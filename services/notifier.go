package services

import (
	"context"
	"sync"
	"time"

	"campy/logger"

	"github.com/go-resty/resty/v2"
)

// EventType names a lifecycle event published after a commit.
type EventType string

const (
	EventEnrolled        EventType = "enrolled"
	EventUnenrolled      EventType = "unenrolled"
	EventCourseCompleted EventType = "course_completed"
)

// Event is the payload handed to a Notifier.
type Event struct {
	Type     EventType `json:"type"`
	UserID   string    `json:"userId"`
	CourseID string    `json:"courseId"`
	At       time.Time `json:"at"`
}

// Notifier receives events once the owning unit of work has committed.
// Implementations must not block the caller.
type Notifier interface {
	Notify(ctx context.Context, evt Event)
}

// NopNotifier drops every event.
type NopNotifier struct{}

func (NopNotifier) Notify(context.Context, Event) {}

func (NopNotifier) Drain(context.Context) error { return nil }

// WebhookNotifier posts events as JSON to a configured URL.
type WebhookNotifier struct {
	client   *resty.Client
	url      string
	log      *logger.Logger
	inflight sync.WaitGroup
}

func NewWebhookNotifier(url string, timeout time.Duration, log *logger.Logger) *WebhookNotifier {
	client := resty.New().
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json")
	return &WebhookNotifier{client: client, url: url, log: log}
}

// Notify delivers evt in the background. Delivery failures are logged only.
func (w *WebhookNotifier) Notify(_ context.Context, evt Event) {
	w.inflight.Add(1)
	go func() {
		defer w.inflight.Done()
		w.deliver(evt)
	}()
}

// Drain waits for in-flight deliveries or until ctx is done.
func (w *WebhookNotifier) Drain(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		w.inflight.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (w *WebhookNotifier) deliver(evt Event) {
	resp, err := w.client.R().SetBody(evt).Post(w.url)
	if err != nil {
		w.log.Warn("webhook delivery failed", "event", evt.Type, "userId", evt.UserID, "courseId", evt.CourseID, "error", err)
		return
	}
	if resp.IsError() {
		w.log.Warn("webhook rejected event", "event", evt.Type, "status", resp.StatusCode(), "body", resp.String())
		return
	}
	w.log.Debug("webhook delivered", "event", evt.Type, "userId", evt.UserID, "courseId", evt.CourseID)
}

// DrainingNotifier is a Notifier that can flush pending events on shutdown.
type DrainingNotifier interface {
	Notifier
	Drain(ctx context.Context) error
}

// NewNotifier picks the webhook notifier when url is set.
func NewNotifier(url string, timeout time.Duration, log *logger.Logger) DrainingNotifier {
	if url == "" {
		return NopNotifier{}
	}
	return NewWebhookNotifier(url, timeout, log)
}
