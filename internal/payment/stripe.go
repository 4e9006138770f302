// Package payment creates token checkouts and reads completed purchases
// from provider webhooks.
package payment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
	"github.com/stripe/stripe-go/v76/webhook"

	"github.com/spec-kit/companion-service/internal/config"
	"github.com/spec-kit/companion-service/internal/domain"
)

// PurchaseType tags checkout sessions that buy tokens.
const PurchaseType = "token_purchase"

var (
	ErrNotConfigured    = errors.New("payment provider not configured")
	ErrMissingMetadata  = errors.New("checkout session is missing purchase metadata")
	ErrWebhookSignature = errors.New("invalid webhook signature")
)

// CheckoutRequest describes a token package purchase.
type CheckoutRequest struct {
	Package    domain.TokenPackage
	UserID     string
	Email      string
	SuccessURL string
	CancelURL  string
}

// Provider is the payment gateway used by the premium flow.
type Provider interface {
	CreateCheckout(ctx context.Context, req CheckoutRequest) (string, error)
	ParseWebhook(payload []byte, signature string) (*domain.TokenPurchase, error)
}

// StripeProvider implements Provider with Stripe Checkout.
type StripeProvider struct {
	api           *client.API
	webhookSecret string
	currency      string
}

// NewStripeProvider returns nil when no secret key is configured.
func NewStripeProvider(cfg config.PaymentConfig) *StripeProvider {
	if !cfg.Configured() {
		return nil
	}
	currency := cfg.Currency
	if currency == "" {
		currency = "sek"
	}
	return &StripeProvider{
		api:           client.New(cfg.SecretKey, nil),
		webhookSecret: cfg.WebhookSecret,
		currency:      currency,
	}
}

// CreateCheckout opens a hosted checkout session and returns its URL.
func (p *StripeProvider) CreateCheckout(ctx context.Context, req CheckoutRequest) (string, error) {
	if p == nil {
		return "", ErrNotConfigured
	}
	params := &stripe.CheckoutSessionParams{
		Mode:              stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:        stripe.String(req.SuccessURL),
		CancelURL:         stripe.String(req.CancelURL),
		ClientReferenceID: stripe.String(req.UserID),
		LineItems: []*stripe.CheckoutSessionLineItemParams{{
			Quantity: stripe.Int64(1),
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:   stripe.String(p.currency),
				UnitAmount: stripe.Int64(MinorUnits(req.Package.Price)),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(req.Package.Name),
				},
			},
		}},
	}
	if req.Email != "" {
		params.CustomerEmail = stripe.String(req.Email)
	}
	params.Context = ctx
	for k, v := range PurchaseMetadata(req) {
		params.AddMetadata(k, v)
	}

	session, err := p.api.CheckoutSessions.New(params)
	if err != nil {
		return "", fmt.Errorf("create checkout session: %w", err)
	}
	return session.URL, nil
}

// ParseWebhook verifies the payload and returns the completed token purchase
// it describes. Other event types return nil without error.
func (p *StripeProvider) ParseWebhook(payload []byte, signature string) (*domain.TokenPurchase, error) {
	if p == nil || p.webhookSecret == "" {
		return nil, ErrNotConfigured
	}
	event, err := webhook.ConstructEventWithOptions(payload, signature, p.webhookSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWebhookSignature, err)
	}
	if event.Type != stripe.EventTypeCheckoutSessionCompleted || event.Data == nil {
		return nil, nil
	}

	var session stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
		return nil, fmt.Errorf("decode checkout session: %w", err)
	}
	if session.Metadata["type"] != PurchaseType {
		return nil, nil
	}
	if session.PaymentStatus == stripe.CheckoutSessionPaymentStatusUnpaid {
		return nil, nil
	}
	return purchaseFromMetadata(session.ID, session.ClientReferenceID, session.Metadata)
}

// PurchaseMetadata is attached to every token checkout.
func PurchaseMetadata(req CheckoutRequest) map[string]string {
	return map[string]string{
		"type":       PurchaseType,
		"tokens":     strconv.FormatInt(req.Package.Tokens, 10),
		"price":      strconv.FormatFloat(req.Package.Price, 'f', -1, 64),
		"user_id":    req.UserID,
		"package_id": req.Package.ID,
	}
}

// MinorUnits converts a price to the smallest currency unit.
func MinorUnits(price float64) int64 {
	return int64(math.Round(price * 100))
}

func purchaseFromMetadata(sessionID, reference string, md map[string]string) (*domain.TokenPurchase, error) {
	userID := md["user_id"]
	if userID == "" {
		userID = reference
	}
	tokens, err := strconv.ParseInt(md["tokens"], 10, 64)
	if err != nil || tokens <= 0 || userID == "" {
		return nil, ErrMissingMetadata
	}
	price, _ := strconv.ParseFloat(md["price"], 64)
	return &domain.TokenPurchase{
		UserID:    userID,
		PackageID: md["package_id"],
		Tokens:    tokens,
		Price:     price,
		SessionID: sessionID,
	}, nil
}
