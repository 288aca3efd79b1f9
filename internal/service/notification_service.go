package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/emsworks/employment-service/internal/config"
	"github.com/emsworks/employment-service/internal/events"
)

// EventSink stores events for clients to consume.
type EventSink interface {
	Append(ctx context.Context, event events.Event) (string, error)
}

// NotificationService handles emitting notifications for domain events.
type NotificationService struct {
	sink   EventSink
	logger *zap.Logger
	cfg    config.NotificationConfig
}

// NewNotificationService creates the service. sink may be nil.
func NewNotificationService(sink EventSink, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationService{
		sink:   sink,
		logger: logger,
		cfg:    cfg,
	}
}

// emailEvents are the events a person should hear about directly.
var emailEvents = map[events.EventType]bool{
	events.EventLeaveReviewed:          true,
	events.EventPayrollStatusChanged:   true,
	events.EventTaskAssigned:           true,
	events.EventCandidateApplied:       true,
	events.EventCandidateStatusChanged: true,
}

// RegisterHandlers subscribes to every published event type.
func (n *NotificationService) RegisterHandlers(dispatcher events.Dispatcher) {
	if dispatcher == nil {
		return
	}
	for _, eventType := range events.AllEventTypes {
		dispatcher.Subscribe(eventType, n.handle)
	}
}

func (n *NotificationService) handle(ctx context.Context, event events.Event) error {
	n.logger.Info("domain event",
		zap.String("event_id", event.ID),
		zap.String("event_type", string(event.Type)),
		zap.String("entity_id", event.EntityID),
		zap.String("actor_id", event.Actor.UserID),
		zap.Any("payload", event.Payload))

	if emailEvents[event.Type] {
		n.sendEmailNotificationStub(ctx, event)
	}
	n.sendWebhookNotificationStub(ctx, event)

	if n.sink == nil {
		return nil
	}
	entryID, err := n.sink.Append(ctx, event)
	if err != nil {
		return err
	}
	n.logger.Debug("event appended to stream", zap.String("event_id", event.ID), zap.String("entry_id", entryID))
	return nil
}

func (n *NotificationService) sendEmailNotificationStub(_ context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.EmailFrom) == "" {
		return
	}
	n.logger.Debug("sendEmailNotificationStub",
		zap.String("from", n.cfg.EmailFrom),
		zap.String("entity_id", event.EntityID),
		zap.String("event_type", string(event.Type)))
}

func (n *NotificationService) sendWebhookNotificationStub(_ context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("sendWebhookNotificationStub",
		zap.String("url", n.cfg.WebhookURL),
		zap.String("entity_id", event.EntityID),
		zap.String("event_type", string(event.Type)))
}
