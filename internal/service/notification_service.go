package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/ticket-marketplace/internal/config"
	"github.com/spec-kit/ticket-marketplace/internal/events"
)

// NotificationService handles emitting notifications for domain events.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.NotificationConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventListingCreated, n.handleListingCreated)
	n.dispatcher.Subscribe(events.EventListingStatusChanged, n.handleListingStatusChanged)
	n.dispatcher.Subscribe(events.EventListingAdvertiseChanged, n.handleListingAdvertiseChanged)
	n.dispatcher.Subscribe(events.EventBookingCreated, n.handleBookingCreated)
	n.dispatcher.Subscribe(events.EventBookingStatusChanged, n.handleBookingStatusChanged)
}

func (n *NotificationService) handleListingCreated(ctx context.Context, event events.Event) error {
	n.logger.Info("ListingCreated", zap.String("listing_id", event.EntityID), zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleListingStatusChanged(ctx context.Context, event events.Event) error {
	n.logger.Info("ListingStatusChanged", zap.String("listing_id", event.EntityID), zap.Any("payload", event.Payload))
	n.sendEmailNotificationStub(ctx, event)
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleListingAdvertiseChanged(ctx context.Context, event events.Event) error {
	n.logger.Info("ListingAdvertiseChanged", zap.String("listing_id", event.EntityID), zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleBookingCreated(ctx context.Context, event events.Event) error {
	n.logger.Info("BookingCreated", zap.String("booking_id", event.EntityID), zap.Any("payload", event.Payload))
	n.sendEmailNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleBookingStatusChanged(ctx context.Context, event events.Event) error {
	n.logger.Info("BookingStatusChanged", zap.String("booking_id", event.EntityID), zap.Any("payload", event.Payload))
	n.sendEmailNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) sendEmailNotificationStub(ctx context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.EmailFrom) == "" {
		return
	}
	n.logger.Debug("sendEmailNotificationStub",
		zap.String("from", n.cfg.EmailFrom),
		zap.String("entity_id", event.EntityID),
		zap.String("event_type", string(event.Type)))
}

func (n *NotificationService) sendWebhookNotificationStub(ctx context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("sendWebhookNotificationStub",
		zap.String("url", n.cfg.WebhookURL),
		zap.String("entity_id", event.EntityID),
		zap.String("event_type", string(event.Type)))
}
