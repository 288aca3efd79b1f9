package worker

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/emsworks/employment-service/internal/events"
	"github.com/emsworks/employment-service/internal/service"
)

var (
	// ErrQueueFull is returned by Publish when the buffer is saturated; the event is dropped.
	ErrQueueFull = errors.New("notification queue full")
	// ErrStopped is returned by Publish after Stop.
	ErrStopped = errors.New("notification worker stopped")
)

const defaultQueueSize = 256

// NotificationWorker is an asynchronous events.Dispatcher. Publish enqueues and returns at once;
// a single goroutine delivers queued events to the subscribers of the wrapped dispatcher in order.
type NotificationWorker struct {
	next   events.Dispatcher
	queue  chan events.Event
	logger *zap.Logger

	mu       sync.RWMutex
	stopped  bool
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewNotificationWorker wraps next with a buffered queue of queueSize events.
func NewNotificationWorker(next events.Dispatcher, queueSize int, logger *zap.Logger) *NotificationWorker {
	if queueSize <= 0 {
		queueSize = defaultQueueSize
	}
	return &NotificationWorker{
		next:   next,
		queue:  make(chan events.Event, queueSize),
		logger: logger,
	}
}

// Subscribe registers handler on the wrapped dispatcher.
func (w *NotificationWorker) Subscribe(eventType events.EventType, handler events.EventHandler) {
	w.next.Subscribe(eventType, handler)
}

// Publish enqueues event without blocking.
func (w *NotificationWorker) Publish(_ context.Context, event events.Event) error {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.stopped {
		return ErrStopped
	}

	select {
	case w.queue <- event:
		return nil
	default:
		w.logger.Warn("dropping event, queue full",
			zap.String("event_type", string(event.Type)),
			zap.String("entity_id", event.EntityID))
		return ErrQueueFull
	}
}

// Start launches the delivery goroutine. Handlers receive ctx.
func (w *NotificationWorker) Start(ctx context.Context) {
	w.wg.Add(1)
	go w.run(ctx)
}

func (w *NotificationWorker) run(ctx context.Context) {
	defer w.wg.Done()
	for event := range w.queue {
		if err := w.next.Publish(ctx, event); err != nil {
			w.logger.Error("event delivery failed",
				zap.String("event_id", event.ID),
				zap.String("event_type", string(event.Type)),
				zap.Error(err))
		}
	}
}

// Stop refuses new events, drains the queue and waits for delivery to finish.
func (w *NotificationWorker) Stop() {
	w.stopOnce.Do(func() {
		w.mu.Lock()
		w.stopped = true
		close(w.queue)
		w.mu.Unlock()
	})
	w.wg.Wait()
}

// StartNotificationWorker registers notification handlers and starts delivery.
func StartNotificationWorker(ctx context.Context, w *NotificationWorker, notificationService *service.NotificationService) {
	if w == nil {
		return
	}
	if notificationService != nil {
		notificationService.RegisterHandlers(w)
	}
	w.Start(ctx)
}
