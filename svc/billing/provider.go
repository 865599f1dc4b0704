package billing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	paddle "github.com/PaddleHQ/paddle-go-sdk/v4"
	"github.com/google/uuid"
)

// EventType is the normalized webhook event kind.
type EventType string

const (
	EventSubscriptionCreated   EventType = "subscription.created"
	EventSubscriptionUpdated   EventType = "subscription.updated"
	EventSubscriptionCancelled EventType = "subscription.cancelled"
	EventSubscriptionResumed   EventType = "subscription.resumed"
)

// WebhookEvent is a normalized Paddle webhook. UserID comes from the
// custom data attached at checkout; events without it cannot be applied to
// a local subscription.
type WebhookEvent struct {
	Type              EventType
	ProviderEvent     string
	SubscriptionID    string
	UserID            uuid.UUID
	Email             string
	PriceID           string
	Status            string
	CancelAtPeriodEnd bool
	CancelAt          *time.Time
	RenewalDate       *time.Time
}

// CheckoutRequest describes a hosted checkout session to create.
type CheckoutRequest struct {
	PriceID    string
	UserID     uuid.UUID
	Email      string
	SuccessURL string
}

// CheckoutLink is a hosted checkout session returned by the provider.
type CheckoutLink struct {
	URL           string    `json:"url"`
	TransactionID string    `json:"transactionId"`
	ExpiresAt     time.Time `json:"expiresAt"`
}

// PaddleProvider wraps the Paddle SDK for checkout creation and webhook
// verification.
type PaddleProvider struct {
	client   *paddle.SDK
	verifier *paddle.WebhookVerifier
	config   Config
}

// NewPaddleProvider creates a Paddle provider for the configured
// environment.
func NewPaddleProvider(config Config) (*PaddleProvider, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("%w: API key is required", ErrInvalidConfig)
	}
	if config.WebhookSecret == "" {
		return nil, fmt.Errorf("%w: webhook secret is required", ErrInvalidConfig)
	}

	var client *paddle.SDK
	var err error
	switch strings.ToLower(config.Environment) {
	case "sandbox":
		client, err = paddle.NewSandbox(config.APIKey)
	case "production", "":
		client, err = paddle.New(config.APIKey)
	default:
		return nil, fmt.Errorf("%w: unknown environment %q", ErrInvalidConfig, config.Environment)
	}
	if err != nil {
		return nil, fmt.Errorf("create paddle client: %w", err)
	}

	return &PaddleProvider{
		client:   client,
		verifier: paddle.NewWebhookVerifier(config.WebhookSecret),
		config:   config,
	}, nil
}

// CreateCheckoutLink creates a hosted checkout transaction for one plan.
// The user ID and email ride along as custom data so the webhook can tie
// the resulting subscription back to the local account.
func (p *PaddleProvider) CreateCheckoutLink(ctx context.Context, req CheckoutRequest) (*CheckoutLink, error) {
	if req.PriceID == "" {
		return nil, fmt.Errorf("%w: price ID is required", ErrInvalidConfig)
	}
	if req.UserID == uuid.Nil {
		return nil, fmt.Errorf("%w: user ID is required", ErrInvalidConfig)
	}

	item := paddle.NewCreateTransactionItemsTransactionItemFromCatalog(&paddle.TransactionItemFromCatalog{
		PriceID:  req.PriceID,
		Quantity: 1,
	})

	transactionReq := &paddle.CreateTransactionRequest{
		Items: []paddle.CreateTransactionItems{*item},
		CustomData: paddle.CustomData{
			"user_id": req.UserID.String(),
		},
	}
	if req.Email != "" {
		transactionReq.CustomData["email"] = req.Email
	}

	successURL := req.SuccessURL
	if successURL == "" {
		successURL = p.config.CheckoutURL
	}
	if successURL != "" {
		transactionReq.Checkout = &paddle.TransactionCheckout{
			URL: paddle.PtrTo(successURL),
		}
	}

	transaction, err := p.client.TransactionsClient.CreateTransaction(ctx, transactionReq)
	if err != nil {
		return nil, fmt.Errorf("create paddle transaction: %w", err)
	}

	if transaction.Checkout == nil || transaction.Checkout.URL == nil {
		return nil, ErrNoCheckoutURL
	}

	return &CheckoutLink{
		URL:           *transaction.Checkout.URL,
		TransactionID: transaction.ID,
		ExpiresAt:     time.Now().Add(24 * time.Hour),
	}, nil
}

// ParseWebhookRequest verifies the request signature and normalizes the
// payload into a WebhookEvent. Non-subscription events return (nil, nil):
// verified but not actionable.
func (p *PaddleProvider) ParseWebhookRequest(req *http.Request) (*WebhookEvent, error) {
	valid, err := p.verifier.Verify(req)
	if err != nil {
		return nil, errors.Join(ErrInvalidSignature, err)
	}
	if !valid {
		return nil, ErrInvalidSignature
	}

	body, err := io.ReadAll(req.Body)
	if err != nil {
		return nil, errors.Join(ErrMalformedEvent, err)
	}

	return parseEvent(body)
}

func parseEvent(payload []byte) (*WebhookEvent, error) {
	var raw struct {
		EventType string         `json:"event_type"`
		Data      map[string]any `json:"data"`
	}
	if err := json.Unmarshal(payload, &raw); err != nil {
		return nil, errors.Join(ErrMalformedEvent, err)
	}

	if !strings.HasPrefix(raw.EventType, "subscription.") {
		return nil, nil
	}

	event := &WebhookEvent{
		Type:          mapEventType(raw.EventType),
		ProviderEvent: raw.EventType,
	}

	if id, ok := raw.Data["id"].(string); ok {
		event.SubscriptionID = id
	}
	if status, ok := raw.Data["status"].(string); ok {
		event.Status = status
	}

	if customData, ok := raw.Data["custom_data"].(map[string]any); ok {
		if idStr, ok := customData["user_id"].(string); ok {
			if id, err := uuid.Parse(idStr); err == nil {
				event.UserID = id
			}
		}
		if email, ok := customData["email"].(string); ok {
			event.Email = email
		}
	}

	if items, ok := raw.Data["items"].([]any); ok && len(items) > 0 {
		if item, ok := items[0].(map[string]any); ok {
			if price, ok := item["price"].(map[string]any); ok {
				if priceID, ok := price["id"].(string); ok {
					event.PriceID = priceID
				}
			}
		}
	}

	if change, ok := raw.Data["scheduled_change"].(map[string]any); ok {
		if action, ok := change["action"].(string); ok && action == "cancel" {
			event.CancelAtPeriodEnd = true
			event.CancelAt = parseTime(change["effective_at"])
		}
	}
	if period, ok := raw.Data["current_billing_period"].(map[string]any); ok {
		event.RenewalDate = parseTime(period["ends_at"])
	}

	return event, nil
}

func parseTime(v any) *time.Time {
	s, ok := v.(string)
	if !ok {
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil
	}
	return &t
}

func mapEventType(providerEvent string) EventType {
	switch providerEvent {
	case "subscription.created":
		return EventSubscriptionCreated
	case "subscription.updated":
		return EventSubscriptionUpdated
	case "subscription.canceled", "subscription.cancelled":
		return EventSubscriptionCancelled
	case "subscription.resumed":
		return EventSubscriptionResumed
	default:
		return EventType(providerEvent)
	}
}
