package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBusinessError_UnwrapsToSentinel(t *testing.T) {
	tests := []struct {
		name     string
		err      *BusinessError
		sentinel error
		code     string
	}{
		{"validation", WrapValidation("amount", "must be greater than 0"), ErrValidation, ErrCodeValidation},
		{"product not found", WrapProductNotFound("p-1"), ErrProductNotFound, ErrCodeProductNotFound},
		{"amount out of range", WrapAmountOutOfRange("5000", "10000", "500000"), ErrAmountOutOfRange, ErrCodeAmountOutOfRange},
		{"order not found", WrapOrderNotFound("o-1"), ErrOrderNotFound, ErrCodeOrderNotFound},
		{"already processed", WrapOrderAlreadyProcessed("o-1"), ErrOrderAlreadyProcessed, ErrCodeOrderAlreadyProcessed},
		{"invalid decision", WrapInvalidDecision("MAYBE"), ErrInvalidDecision, ErrCodeInvalidDecision},
		{"configuration", WrapPendingStatusNotProvisioned("no row"), ErrPendingStatusNotProvisioned, ErrCodeConfiguration},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := fmt.Errorf("outer: %w", tt.err)
			assert.ErrorIs(t, wrapped, tt.sentinel)
			assert.Equal(t, tt.code, CodeOf(wrapped))
		})
	}
}

func TestBusinessError_Message(t *testing.T) {
	err := WrapAmountOutOfRange("5000", "10000", "500000")
	assert.Contains(t, err.Error(), "INVALID_LOAN_AMOUNT")
	assert.Contains(t, err.Error(), "[10000, 500000]")

	dbErr := WrapDatabaseError(errors.New("connection refused"))
	assert.Contains(t, dbErr.Error(), "connection refused")
	assert.Equal(t, "", CodeOf(errors.New("plain")))
}
