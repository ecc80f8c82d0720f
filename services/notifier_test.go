package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"campy/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWebhookNotifierPostsEvent(t *testing.T) {
	received := make(chan Event, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		var evt Event
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&evt))
		received <- evt
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	n := NewNotifier(srv.URL, time.Second, logger.NewNop())
	require.IsType(t, &WebhookNotifier{}, n)

	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	n.Notify(context.Background(), Event{Type: EventCourseCompleted, UserID: "u1", CourseID: "c1", At: at})

	select {
	case evt := <-received:
		assert.Equal(t, EventCourseCompleted, evt.Type)
		assert.Equal(t, "u1", evt.UserID)
		assert.True(t, at.Equal(evt.At))
	case <-time.After(5 * time.Second):
		t.Fatal("webhook was not called")
	}
}

func TestWebhookNotifierDrainWaitsForDelivery(t *testing.T) {
	var delivered atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Millisecond)
		delivered.Add(1)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	n := NewWebhookNotifier(srv.URL, 5*time.Second, logger.NewNop())
	for i := 0; i < 3; i++ {
		n.Notify(context.Background(), Event{Type: EventEnrolled, UserID: "u1", CourseID: "c1"})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, n.Drain(ctx))
	assert.EqualValues(t, 3, delivered.Load())
}

func TestWebhookNotifierDrainHonoursDeadline(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()
	defer close(release)

	n := NewWebhookNotifier(srv.URL, 5*time.Second, logger.NewNop())
	n.Notify(context.Background(), Event{Type: EventEnrolled})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, n.Drain(ctx), context.DeadlineExceeded)
}

func TestNewNotifierWithoutURLIsNop(t *testing.T) {
	n := NewNotifier("", time.Second, logger.NewNop())
	assert.IsType(t, NopNotifier{}, n)
	n.Notify(context.Background(), Event{Type: EventEnrolled})
	assert.NoError(t, n.Drain(context.Background()))
}
