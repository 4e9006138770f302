package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/companion-service/internal/domain"
	"github.com/spec-kit/companion-service/internal/events"
	"github.com/spec-kit/companion-service/internal/payment"
)

func TestPurchaseService_WebhookCreditsOnce(t *testing.T) {
	provider := &mockProvider{}
	purchase := &domain.TokenPurchase{UserID: "u1", Tokens: 200, SessionID: "cs_1"}
	provider.On("ParseWebhook", []byte("payload"), "sig").Return(purchase, nil)

	tokens := &memoryTokens{}
	dispatcher := events.NewInMemoryDispatcher()
	svc := NewPurchaseService(tokens, provider, &memoryDeduper{}, dispatcher, zap.NewNop())
	svc.RegisterHandlers()

	require.NoError(t, svc.HandleWebhook(context.Background(), []byte("payload"), "sig"))
	require.NoError(t, svc.HandleWebhook(context.Background(), []byte("payload"), "sig"))

	balance, err := svc.Balance(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(200), balance)
	assert.Equal(t, 1, tokens.credits)
}

func TestPurchaseService_IgnoresOtherEvents(t *testing.T) {
	provider := &mockProvider{}
	provider.On("ParseWebhook", []byte("other"), "sig").Return(nil, nil)

	tokens := &memoryTokens{}
	svc := NewPurchaseService(tokens, provider, nil, events.NewInMemoryDispatcher(), zap.NewNop())
	svc.RegisterHandlers()

	require.NoError(t, svc.HandleWebhook(context.Background(), []byte("other"), "sig"))
	assert.Zero(t, tokens.credits)
}

func TestPurchaseService_Unconfigured(t *testing.T) {
	svc := NewPurchaseService(&memoryTokens{}, nil, nil, events.NewInMemoryDispatcher(), zap.NewNop())
	assert.ErrorIs(t, svc.HandleWebhook(context.Background(), nil, ""), payment.ErrNotConfigured)
}
