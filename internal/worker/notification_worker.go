package worker

import (
	"go.uber.org/zap"

	"github.com/spec-kit/storefront-service/internal/events"
	"github.com/spec-kit/storefront-service/internal/service"
)

// StartNotificationWorker subscribes the notification handlers to dispatcher.
// Submitted orders are forwarded to publisher when one is configured.
func StartNotificationWorker(dispatcher events.Dispatcher, publisher service.OrderPublisher, logger *zap.Logger) *service.NotificationService {
	if dispatcher == nil {
		return nil
	}
	notifications := service.NewNotificationService(dispatcher, publisher, logger)
	notifications.RegisterHandlers()
	logger.Info("notification worker started", zap.Bool("broker", publisher != nil))
	return notifications
}
