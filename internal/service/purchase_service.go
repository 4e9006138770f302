package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/companion-service/internal/events"
	"github.com/spec-kit/companion-service/internal/payment"
	"github.com/spec-kit/companion-service/internal/repository"
)

// PurchaseService turns provider webhooks into token credits.
type PurchaseService struct {
	tokens     repository.TokenRepository
	provider   payment.Provider
	dedupe     payment.Deduper
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewPurchaseService builds the service. provider and dedupe may be nil.
func NewPurchaseService(tokens repository.TokenRepository, provider payment.Provider, dedupe payment.Deduper, dispatcher events.Dispatcher, logger *zap.Logger) *PurchaseService {
	return &PurchaseService{
		tokens:     tokens,
		provider:   provider,
		dedupe:     dedupe,
		dispatcher: dispatcher,
		logger:     logger.Named("purchase_service"),
	}
}

// RegisterHandlers subscribes the crediting handler.
func (s *PurchaseService) RegisterHandlers() {
	if s.dispatcher == nil {
		return
	}
	s.dispatcher.Subscribe(events.EventTokensPurchased, s.handleTokensPurchased)
}

// Balance returns the user's token balance; 0 when none is stored.
func (s *PurchaseService) Balance(ctx context.Context, userID string) (int64, error) {
	return s.tokens.GetBalance(ctx, userID)
}

// HandleWebhook verifies a provider callback and publishes the purchase it
// carries. Events that are not token purchases are acknowledged and ignored.
func (s *PurchaseService) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	if s.provider == nil {
		return payment.ErrNotConfigured
	}
	purchase, err := s.provider.ParseWebhook(payload, signature)
	if err != nil {
		return err
	}
	if purchase == nil {
		return nil
	}
	return s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventTokensPurchased,
		Subject:   purchase.SessionID,
		Actor:     events.Actor{UserID: purchase.UserID},
		Timestamp: time.Now().UTC(),
		Payload: events.TokensPurchasedPayload{
			UserID:    purchase.UserID,
			PackageID: purchase.PackageID,
			Tokens:    purchase.Tokens,
			Price:     purchase.Price,
			SessionID: purchase.SessionID,
		},
	})
}

func (s *PurchaseService) handleTokensPurchased(ctx context.Context, event events.Event) error {
	p, ok := event.Payload.(events.TokensPurchasedPayload)
	if !ok {
		return fmt.Errorf("unexpected payload %T", event.Payload)
	}

	if s.dedupe != nil {
		first, err := s.dedupe.First(ctx, p.SessionID)
		if err != nil {
			return err
		}
		if !first {
			s.logger.Info("duplicate purchase ignored", zap.String("session_id", p.SessionID))
			return nil
		}
	}

	balance, err := s.tokens.Credit(ctx, p.UserID, p.Tokens)
	if err != nil {
		if s.dedupe != nil {
			if ferr := s.dedupe.Forget(ctx, p.SessionID); ferr != nil {
				s.logger.Warn("failed to clear purchase marker", zap.Error(ferr))
			}
		}
		return err
	}
	s.logger.Info("tokens credited",
		zap.String("user_id", p.UserID),
		zap.Int64("tokens", p.Tokens),
		zap.Int64("balance", balance),
		zap.String("session_id", p.SessionID))
	return nil
}
