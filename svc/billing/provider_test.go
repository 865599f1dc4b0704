package billing

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEvent(t *testing.T) {
	t.Parallel()

	userID := uuid.New()

	t.Run("subscription created", func(t *testing.T) {
		t.Parallel()
		payload := `{
			"event_type": "subscription.created",
			"data": {
				"id": "sub_123",
				"status": "active",
				"custom_data": {"user_id": "` + userID.String() + `", "email": "user@example.com"},
				"items": [{"price": {"id": "pri_growth_m"}}],
				"current_billing_period": {"ends_at": "2026-10-01T00:00:00Z"}
			}
		}`

		event, err := parseEvent([]byte(payload))
		require.NoError(t, err)
		require.NotNil(t, event)
		assert.Equal(t, EventSubscriptionCreated, event.Type)
		assert.Equal(t, "sub_123", event.SubscriptionID)
		assert.Equal(t, userID, event.UserID)
		assert.Equal(t, "user@example.com", event.Email)
		assert.Equal(t, "pri_growth_m", event.PriceID)
		assert.Equal(t, "active", event.Status)
		assert.False(t, event.CancelAtPeriodEnd)
		require.NotNil(t, event.RenewalDate)
		assert.Equal(t, time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC), event.RenewalDate.UTC())
	})

	t.Run("scheduled cancellation", func(t *testing.T) {
		t.Parallel()
		payload := `{
			"event_type": "subscription.updated",
			"data": {
				"id": "sub_123",
				"status": "active",
				"custom_data": {"user_id": "` + userID.String() + `"},
				"scheduled_change": {"action": "cancel", "effective_at": "2026-10-01T00:00:00Z"}
			}
		}`

		event, err := parseEvent([]byte(payload))
		require.NoError(t, err)
		require.NotNil(t, event)
		assert.Equal(t, EventSubscriptionUpdated, event.Type)
		assert.True(t, event.CancelAtPeriodEnd)
		require.NotNil(t, event.CancelAt)
	})

	t.Run("non-subscription event is skipped", func(t *testing.T) {
		t.Parallel()
		event, err := parseEvent([]byte(`{"event_type": "transaction.completed", "data": {"id": "txn_1"}}`))
		require.NoError(t, err)
		assert.Nil(t, event)
	})

	t.Run("unparseable user reference leaves the event unbound", func(t *testing.T) {
		t.Parallel()
		payload := `{
			"event_type": "subscription.created",
			"data": {"id": "sub_123", "custom_data": {"user_id": "not-a-uuid"}}
		}`

		event, err := parseEvent([]byte(payload))
		require.NoError(t, err)
		require.NotNil(t, event)
		assert.Equal(t, uuid.Nil, event.UserID)
	})

	t.Run("malformed payload", func(t *testing.T) {
		t.Parallel()
		_, err := parseEvent([]byte(`{`))
		assert.ErrorIs(t, err, ErrMalformedEvent)
	})

	t.Run("both cancellation spellings normalize", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, EventSubscriptionCancelled, mapEventType("subscription.canceled"))
		assert.Equal(t, EventSubscriptionCancelled, mapEventType("subscription.cancelled"))
	})
}

func TestNewPaddleProvider_Validation(t *testing.T) {
	t.Parallel()

	_, err := NewPaddleProvider(Config{WebhookSecret: "whsec"})
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = NewPaddleProvider(Config{APIKey: "key"})
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = NewPaddleProvider(Config{APIKey: "key", WebhookSecret: "whsec", Environment: "staging"})
	assert.ErrorIs(t, err, ErrInvalidConfig)
}
