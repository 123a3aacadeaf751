package messaging

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/segyhp/loan-origination/internal/domain"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPublisher(t *testing.T) (*miniredis.Miniredis, *StreamPublisher) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })
	return mr, NewStreamPublisher(client, 1000)
}

func readSingleMessage(t *testing.T, mr *miniredis.Miniredis, stream string) map[string]any {
	t.Helper()
	entries, err := mr.Stream(stream)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	values := entries[0].Values
	require.Len(t, values, 2)
	require.Equal(t, PayloadField, values[0])

	var message map[string]any
	require.NoError(t, json.Unmarshal([]byte(values[1]), &message))
	return message
}

func TestNotificationDispatcher_PublishesDecision(t *testing.T) {
	mr, publisher := newTestPublisher(t)
	dispatcher := NewStreamNotificationDispatcher(publisher, "decisions")

	decidedAt := time.Date(2025, 4, 2, 15, 30, 0, 0, time.UTC)
	order := &domain.Order{
		ID:           "o-1",
		Amount:       decimal.RequireFromString("15000.50"),
		Deadline:     12,
		EmailAddress: "ana@example.com",
		Status:       domain.StatusApproved,
		UpdatedAt:    decidedAt,
	}

	require.NoError(t, dispatcher.NotifyOrderDecision(context.Background(), order))

	message := readSingleMessage(t, mr, "decisions")
	assert.Equal(t, "o-1", message["orderId"])
	assert.Equal(t, "ana@example.com", message["emailAddress"])
	assert.Equal(t, "APPROVED", message["decision"])
	assert.Equal(t, "15000.5", message["amount"])
	assert.Equal(t, float64(12), message["deadline"])
	assert.Equal(t, "2025-04-02T15:30:00Z", message["decisionDate"])
	assert.Equal(t, OrderDecisionType, message["type"])
}

func TestNotificationDispatcher_UnknownStatusRendersUnknown(t *testing.T) {
	mr, publisher := newTestPublisher(t)
	dispatcher := NewStreamNotificationDispatcher(publisher, "decisions")

	require.NoError(t, dispatcher.NotifyOrderDecision(context.Background(), &domain.Order{ID: "o-2"}))

	assert.Equal(t, "UNKNOWN", readSingleMessage(t, mr, "decisions")["decision"])
}

func TestDebtCapacityDispatcher_PublishesRequest(t *testing.T) {
	mr, publisher := newTestPublisher(t)
	dispatcher := NewStreamDebtCapacityDispatcher(publisher, "capacity").(*streamDebtCapacityDispatcher)
	dispatcher.now = func() time.Time { return time.Date(2025, 4, 2, 0, 0, 0, 0, time.UTC) }

	request := domain.NewDebtCapacityRequest("o-1", "u-1", decimal.NewFromInt(20000), 24, "ana@example.com",
		decimal.NewFromInt(4000), decimal.RequireFromString("0.015"), "lt-1", time.Now())
	request.ID = "dc-1"

	require.NoError(t, dispatcher.Submit(context.Background(), request))

	message := readSingleMessage(t, mr, "capacity")
	assert.Equal(t, "o-1", message["order_id"])
	assert.Equal(t, "u-1", message["user_id"])
	assert.Equal(t, "20000", message["amount"])
	assert.Equal(t, "4000", message["base_salary"])
	assert.Equal(t, "0.015", message["interest_rate"])
	assert.Equal(t, "lt-1", message["loan_type_id"])
	assert.Equal(t, domain.CapacityValidationType, message["type"])
	assert.Equal(t, "2025-04-02T00:00:00Z", message["timestamp"])
}

func TestDispatchers_ReturnErrorWhenRedisUnavailable(t *testing.T) {
	mr, publisher := newTestPublisher(t)
	mr.Close()

	err := NewStreamNotificationDispatcher(publisher, "decisions").
		NotifyOrderDecision(context.Background(), &domain.Order{ID: "o-1", Status: domain.StatusRejected})
	assert.Error(t, err)

	err = NewStreamDebtCapacityDispatcher(publisher, "capacity").
		Submit(context.Background(), &domain.DebtCapacityRequest{ID: "dc-1", OrderID: "o-1"})
	assert.Error(t, err)
}

func TestNoopDispatchers(t *testing.T) {
	assert.NoError(t, NoopNotifier{}.NotifyOrderDecision(context.Background(), &domain.Order{}))
	assert.NoError(t, NoopDebtCapacityDispatcher{}.Submit(context.Background(), &domain.DebtCapacityRequest{}))
}
