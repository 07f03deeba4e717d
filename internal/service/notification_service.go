package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/storefront-service/internal/events"
)

// OrderPublisher forwards order events to an external broker.
type OrderPublisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// NotificationService reacts to domain events.
type NotificationService struct {
	dispatcher events.Dispatcher
	publisher  OrderPublisher
	logger     *zap.Logger
}

// NewNotificationService creates the service. publisher may be nil.
func NewNotificationService(dispatcher events.Dispatcher, publisher OrderPublisher, logger *zap.Logger) *NotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationService{
		dispatcher: dispatcher,
		publisher:  publisher,
		logger:     logger,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventUserCreated, n.handleUserCreated)
	n.dispatcher.Subscribe(events.EventCartUpdated, n.handleCartUpdated)
	n.dispatcher.Subscribe(events.EventOrderSubmitted, n.handleOrderSubmitted)
}

func (n *NotificationService) handleUserCreated(_ context.Context, event events.Event) error {
	n.logger.Info("UserCreated", zap.String("event_id", event.ID), zap.String("username", event.Username), zap.Any("payload", event.Payload))
	return nil
}

func (n *NotificationService) handleCartUpdated(_ context.Context, event events.Event) error {
	n.logger.Debug("CartUpdated", zap.String("event_id", event.ID), zap.String("username", event.Username), zap.Any("payload", event.Payload))
	return nil
}

func (n *NotificationService) handleOrderSubmitted(ctx context.Context, event events.Event) error {
	n.logger.Info("OrderSubmitted", zap.String("event_id", event.ID), zap.String("username", event.Username), zap.Any("payload", event.Payload))
	if n.publisher == nil {
		return nil
	}
	if err := n.publisher.PublishJSON(ctx, event); err != nil {
		return fmt.Errorf("publish order event: %w", err)
	}
	return nil
}
