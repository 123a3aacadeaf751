package domain

import (
	"regexp"
	"strings"
	"time"

	customError "github.com/segyhp/loan-origination/pkg/errors"
	"github.com/segyhp/loan-origination/pkg/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Business rules for loan applications
const (
	MinDeadlineMonths = 1
	MaxDeadlineMonths = 360
	MaxAmountDecimals = 2
)

// Decision tokens accepted by UpdateOrderDecision
const (
	DecisionApproved = "APPROVED"
	DecisionRejected = "REJECTED"
)

var emailPattern = regexp.MustCompile(`^[A-Za-z0-9+_.-]+@([A-Za-z0-9.-]+\.[A-Za-z]{2,})$`)

// Order represents a loan application
type Order struct {
	ID            string          `json:"id" db:"id"`
	Amount        decimal.Decimal `json:"amount" db:"amount"`
	Deadline      int             `json:"deadline" db:"deadline"`
	EmailAddress  string          `json:"email_address" db:"email_address"`
	LoanProductID string          `json:"loan_type" db:"id_loan_type"`
	Status        Status          `json:"status" db:"id_status"`
	CreatedAt     time.Time       `json:"creation_date" db:"creation_date"`
	UpdatedAt     time.Time       `json:"update_date" db:"update_date"`
}

// NewOrder builds an order with a fresh identifier and identical
// creation/update timestamps.
func NewOrder(amount decimal.Decimal, deadline int, email, productID string, status Status, now time.Time) *Order {
	return &Order{
		ID:            uuid.NewString(),
		Amount:        amount,
		Deadline:      deadline,
		EmailAddress:  email,
		LoanProductID: productID,
		Status:        status,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// Validate checks the order's own field invariants.
func (o *Order) Validate() error {
	if o.Amount.Sign() <= 0 {
		return customError.WrapValidation("amount", "must be greater than 0")
	}
	if utils.DecimalScale(o.Amount) > MaxAmountDecimals {
		return customError.WrapValidation("amount", "must not have more than 2 decimal places")
	}

	if o.Deadline < MinDeadlineMonths {
		return customError.WrapValidation("deadline", "must be greater than 0")
	}
	if o.Deadline > MaxDeadlineMonths {
		return customError.WrapValidation("deadline", "must not exceed 360 months")
	}

	if strings.TrimSpace(o.EmailAddress) == "" {
		return customError.WrapValidation("email_address", "is required")
	}
	if !emailPattern.MatchString(o.EmailAddress) {
		return customError.WrapValidation("email_address", "has an invalid format")
	}

	if strings.TrimSpace(o.LoanProductID) == "" {
		return customError.WrapValidation("loan_type", "is required")
	}

	return nil
}

func (o *Order) IsPending() bool {
	return o.Status == StatusPending
}

// WithStatus returns a copy of the order moved to status.
func (o *Order) WithStatus(status Status, now time.Time) *Order {
	updated := *o
	updated.Status = status
	updated.UpdatedAt = now
	return &updated
}

// DecisionStatus maps a decision token to its target status.
func DecisionStatus(decision string) (Status, bool) {
	switch decision {
	case DecisionApproved:
		return StatusApproved, true
	case DecisionRejected:
		return StatusRejected, true
	default:
		return StatusUnknown, false
	}
}
