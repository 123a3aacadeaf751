package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestDebtCapacityRequest_Lifecycle(t *testing.T) {
	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	req := NewDebtCapacityRequest("order-1", "user-1", decimal.NewFromInt(50000), 24, "test@example.com",
		decimal.NewFromInt(4000), decimal.RequireFromString("12.5"), "product-1", now)

	assert.True(t, req.IsPending())
	assert.False(t, req.IsCompleted())
	assert.Empty(t, req.ID)
	assert.Nil(t, req.ProcessedAt)

	plan := []PaymentPlanItem{
		NewPaymentPlanItem(1, decimal.NewFromInt(2000), decimal.NewFromInt(500), decimal.NewFromInt(48000)),
	}
	req.ApplyResult(CapacityResult{
		Decision:          StatusManualReview,
		AvailableCapacity: decimal.NewFromInt(1400),
		MonthlyPayment:    decimal.NewFromInt(2500),
		Reason:            "amount above five salaries",
		PaymentPlan:       plan,
	}, now.Add(time.Minute))

	assert.True(t, req.IsCompleted())
	assert.Equal(t, "amount above five salaries", req.Reason)
	assert.True(t, req.PaymentPlan[0].Total.Equal(decimal.NewFromInt(2500)))
	assert.Equal(t, now.Add(time.Minute), *req.ProcessedAt)
}
