package worker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"

	"github.com/emsworks/employment-service/internal/events"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newEvent(entityID string) events.Event {
	return events.New(events.EventTaskAssigned, entityID, events.Actor{}, time.Now(), nil)
}

func TestNotificationWorker_DeliversInOrderAndDrainsOnStop(t *testing.T) {
	w := NewNotificationWorker(events.NewInMemoryDispatcher(), 16, zap.NewNop())

	var mu sync.Mutex
	var got []string
	w.Subscribe(events.EventTaskAssigned, func(_ context.Context, e events.Event) error {
		mu.Lock()
		defer mu.Unlock()
		got = append(got, e.EntityID)
		return nil
	})

	w.Start(context.Background())
	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, w.Publish(context.Background(), newEvent(id)))
	}
	w.Stop()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"a", "b", "c"}, got)
}

func TestNotificationWorker_PublishAfterStop(t *testing.T) {
	w := NewNotificationWorker(events.NewInMemoryDispatcher(), 1, zap.NewNop())
	w.Start(context.Background())
	w.Stop()
	w.Stop()

	assert.ErrorIs(t, w.Publish(context.Background(), newEvent("late")), ErrStopped)
}

func TestNotificationWorker_QueueFullDropsEvent(t *testing.T) {
	w := NewNotificationWorker(events.NewInMemoryDispatcher(), 1, zap.NewNop())

	require.NoError(t, w.Publish(context.Background(), newEvent("first")))
	assert.ErrorIs(t, w.Publish(context.Background(), newEvent("second")), ErrQueueFull)

	w.Start(context.Background())
	w.Stop()
}

func TestNotificationWorker_HandlerErrorDoesNotStopDelivery(t *testing.T) {
	w := NewNotificationWorker(events.NewInMemoryDispatcher(), 4, zap.NewNop())
	delivered := make(chan string, 2)
	w.Subscribe(events.EventTaskAssigned, func(_ context.Context, e events.Event) error {
		delivered <- e.EntityID
		return errors.New("webhook unreachable")
	})

	w.Start(context.Background())
	require.NoError(t, w.Publish(context.Background(), newEvent("x")))
	require.NoError(t, w.Publish(context.Background(), newEvent("y")))
	w.Stop()

	close(delivered)
	var ids []string
	for id := range delivered {
		ids = append(ids, id)
	}
	assert.Equal(t, []string{"x", "y"}, ids)
}
