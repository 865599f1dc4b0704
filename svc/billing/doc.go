// Package billing integrates with Paddle. Checkout sessions flow out;
// subscription webhooks flow in and are mirrored into Postgres, which is
// the read path for entitlement resolution. The provider API is never
// queried on a content request.
package billing
