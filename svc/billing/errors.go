package billing

import "errors"

var (
	// ErrInvalidConfig indicates missing or contradictory Paddle settings.
	ErrInvalidConfig = errors.New("invalid billing config")
	// ErrInvalidSignature indicates a webhook whose signature did not verify.
	ErrInvalidSignature = errors.New("webhook signature verification failed")
	// ErrMalformedEvent indicates a webhook payload that could not be parsed.
	ErrMalformedEvent = errors.New("malformed webhook event")
	// ErrNoCheckoutURL indicates Paddle returned a transaction without a
	// hosted checkout link.
	ErrNoCheckoutURL = errors.New("no checkout URL returned")
	// ErrStoreUnavailable indicates the subscription store could not be
	// reached.
	ErrStoreUnavailable = errors.New("subscription store unavailable")
)
