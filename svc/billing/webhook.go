package billing

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/growthlab/pkg/email"
	"github.com/dmitrymomot/growthlab/pkg/logger"
)

// EventParser verifies and normalizes an incoming webhook request.
// Implemented by PaddleProvider.
type EventParser interface {
	ParseWebhookRequest(req *http.Request) (*WebhookEvent, error)
}

// Invalidator drops a cached entitlement. Implemented by
// entitlement.Resolver.
type Invalidator interface {
	Invalidate(ctx context.Context, userID uuid.UUID) error
}

// WebhookHandler applies provider webhooks to the local subscription mirror
// and keeps the entitlement cache honest.
type WebhookHandler struct {
	parser       EventParser
	store        SubscriptionStore
	entitlements Invalidator
	mailer       email.EmailSender
	log          *slog.Logger
}

// WebhookOption configures a WebhookHandler.
type WebhookOption func(*WebhookHandler)

// WithMailer enables lifecycle emails (welcome, cancellation notice).
func WithMailer(m email.EmailSender) WebhookOption {
	return func(h *WebhookHandler) {
		h.mailer = m
	}
}

// WithWebhookLogger supplies a logger.
func WithWebhookLogger(log *slog.Logger) WebhookOption {
	return func(h *WebhookHandler) {
		if log != nil {
			h.log = log
		}
	}
}

// NewWebhookHandler creates the webhook handler. Panics if parser, store or
// entitlements is nil to fail fast during initialization.
func NewWebhookHandler(parser EventParser, store SubscriptionStore, entitlements Invalidator, opts ...WebhookOption) *WebhookHandler {
	if parser == nil {
		panic("billing: EventParser is required")
	}
	if store == nil {
		panic("billing: SubscriptionStore is required")
	}
	if entitlements == nil {
		panic("billing: Invalidator is required")
	}

	h := &WebhookHandler{
		parser:       parser,
		store:        store,
		entitlements: entitlements,
		log:          slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// ServeHTTP verifies, normalizes and applies one webhook. Signature
// failures are rejected with 401; apply failures return 500 so the provider
// retries delivery; everything else is acked with 200.
func (h *WebhookHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	event, err := h.parser.ParseWebhookRequest(r)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, ErrInvalidSignature) {
			status = http.StatusUnauthorized
		}
		h.log.WarnContext(r.Context(), "webhook rejected", logger.Error(err))
		w.WriteHeader(status)
		return
	}

	if err := h.Apply(r.Context(), event); err != nil {
		h.log.ErrorContext(r.Context(), "webhook apply failed",
			logger.Error(err), logger.EventType(string(event.Type)))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}

// Apply updates the subscription mirror from one normalized event and
// invalidates the user's cached entitlement. Events that cannot be tied to
// a local user are acked and dropped; retrying them cannot succeed. Email
// failures never fail the event.
func (h *WebhookHandler) Apply(ctx context.Context, event *WebhookEvent) error {
	if event == nil {
		return nil
	}
	if event.UserID == uuid.Nil {
		h.log.WarnContext(ctx, "webhook event without user reference",
			logger.EventType(string(event.Type)))
		return nil
	}

	sub := Subscription{
		UserID:            event.UserID,
		ProviderSubID:     event.SubscriptionID,
		PriceID:           event.PriceID,
		Status:            event.Status,
		CancelAtPeriodEnd: event.CancelAtPeriodEnd,
		CancelAt:          event.CancelAt,
		RenewalDate:       event.RenewalDate,
		UpdatedAt:         time.Now().UTC(),
	}
	if err := h.store.Upsert(ctx, sub); err != nil {
		return err
	}

	if err := h.entitlements.Invalidate(ctx, event.UserID); err != nil {
		h.log.WarnContext(ctx, "entitlement invalidation failed",
			logger.Error(err), logger.UserID(event.UserID))
	}

	h.sendLifecycleEmail(ctx, event)

	h.log.InfoContext(ctx, "webhook applied",
		logger.EventType(string(event.Type)), logger.UserID(event.UserID), logger.PlanID(event.PriceID))
	return nil
}

func (h *WebhookHandler) sendLifecycleEmail(ctx context.Context, event *WebhookEvent) {
	if h.mailer == nil || event.Email == "" {
		return
	}

	var params email.SendEmailParams
	switch event.Type {
	case EventSubscriptionCreated:
		params = email.SendEmailParams{
			SendTo:   event.Email,
			Subject:  "Welcome aboard",
			BodyHTML: "<p>Your subscription is active. Enjoy full access to all member content.</p>",
			Tag:      "subscription-created",
		}
	case EventSubscriptionCancelled:
		params = email.SendEmailParams{
			SendTo:   event.Email,
			Subject:  "Your subscription has been cancelled",
			BodyHTML: "<p>Your subscription was cancelled. You keep access until the end of the paid period.</p>",
			Tag:      "subscription-cancelled",
		}
	default:
		return
	}

	if err := h.mailer.SendEmail(ctx, params); err != nil {
		h.log.WarnContext(ctx, "lifecycle email failed",
			logger.Error(err), logger.EventType(string(event.Type)))
	}
}
