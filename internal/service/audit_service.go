package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/companion-service/internal/events"
)

// AuditService writes an audit log line for every domain event.
type AuditService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewAuditService creates the service.
func NewAuditService(dispatcher events.Dispatcher, logger *zap.Logger) *AuditService {
	return &AuditService{
		dispatcher: dispatcher,
		logger:     logger.Named("audit"),
	}
}

// RegisterHandlers subscribes to events.
func (a *AuditService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	a.dispatcher.Subscribe(events.EventContentChanged, a.handleContentChanged)
	a.dispatcher.Subscribe(events.EventTokensPurchased, a.handleTokensPurchased)
}

func (a *AuditService) handleContentChanged(_ context.Context, event events.Event) error {
	a.logger.Info("ContentChanged",
		zap.String("event_id", event.ID),
		zap.String("subject", event.Subject),
		zap.String("actor", event.Actor.UserID),
		zap.Any("payload", event.Payload))
	return nil
}

func (a *AuditService) handleTokensPurchased(_ context.Context, event events.Event) error {
	a.logger.Info("TokensPurchased",
		zap.String("event_id", event.ID),
		zap.String("session_id", event.Subject),
		zap.String("user_id", event.Actor.UserID),
		zap.Any("payload", event.Payload))
	return nil
}
