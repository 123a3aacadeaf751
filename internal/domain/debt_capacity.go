package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CapacityValidationType tags debt-capacity submissions on the queue.
const CapacityValidationType = "CAPACITY_VALIDATION_REQUEST"

// DebtCapacityRequest correlates a calculation job with an order.
// Resolution fields stay empty until an external result arrives.
type DebtCapacityRequest struct {
	ID            string          `json:"id"`
	OrderID       string          `json:"order_id"`
	UserID        string          `json:"user_id"`
	Amount        decimal.Decimal `json:"amount"`
	Deadline      int             `json:"deadline"`
	EmailAddress  string          `json:"email_address"`
	BaseSalary    decimal.Decimal `json:"base_salary"`
	InterestRate  decimal.Decimal `json:"interest_rate"`
	LoanProductID string          `json:"loan_type_id"`
	Status        Status          `json:"decision"`
	RequestedAt   time.Time       `json:"request_date"`
	ProcessedAt   *time.Time      `json:"processing_date,omitempty"`

	AvailableCapacity  *decimal.Decimal  `json:"available_capacity,omitempty"`
	MonthlyPayment     *decimal.Decimal  `json:"monthly_payment,omitempty"`
	CurrentMonthlyDebt *decimal.Decimal  `json:"current_monthly_debt,omitempty"`
	MaxDebtCapacity    *decimal.Decimal  `json:"max_debt_capacity,omitempty"`
	Reason             string            `json:"reason,omitempty"`
	PaymentPlan        []PaymentPlanItem `json:"payment_plan,omitempty"`
}

// PaymentPlanItem is one month of an amortization schedule.
type PaymentPlanItem struct {
	Month    int             `json:"month"`
	Capital  decimal.Decimal `json:"capital"`
	Interest decimal.Decimal `json:"interest"`
	Total    decimal.Decimal `json:"total"`
	Balance  decimal.Decimal `json:"balance"`
}

func NewPaymentPlanItem(month int, capital, interest, balance decimal.Decimal) PaymentPlanItem {
	return PaymentPlanItem{
		Month:    month,
		Capital:  capital,
		Interest: interest,
		Total:    capital.Add(interest),
		Balance:  balance,
	}
}

// CapacityResult is the outcome reported by the underwriting service.
type CapacityResult struct {
	Decision           Status
	AvailableCapacity  decimal.Decimal
	MonthlyPayment     decimal.Decimal
	CurrentMonthlyDebt decimal.Decimal
	MaxDebtCapacity    decimal.Decimal
	Reason             string
	PaymentPlan        []PaymentPlanItem
}

func NewDebtCapacityRequest(orderID, userID string, amount decimal.Decimal, deadline int, email string,
	baseSalary, interestRate decimal.Decimal, productID string, now time.Time) *DebtCapacityRequest {
	return &DebtCapacityRequest{
		OrderID:       orderID,
		UserID:        userID,
		Amount:        amount,
		Deadline:      deadline,
		EmailAddress:  email,
		BaseSalary:    baseSalary,
		InterestRate:  interestRate,
		LoanProductID: productID,
		Status:        StatusPending,
		RequestedAt:   now,
	}
}

func (r *DebtCapacityRequest) IsPending() bool {
	return r.Status == StatusPending
}

func (r *DebtCapacityRequest) IsCompleted() bool {
	switch r.Status {
	case StatusApproved, StatusRejected, StatusManualReview:
		return true
	}
	return false
}

// ApplyResult records an out-of-band calculation result.
func (r *DebtCapacityRequest) ApplyResult(result CapacityResult, now time.Time) {
	r.Status = result.Decision
	r.AvailableCapacity = &result.AvailableCapacity
	r.MonthlyPayment = &result.MonthlyPayment
	r.CurrentMonthlyDebt = &result.CurrentMonthlyDebt
	r.MaxDebtCapacity = &result.MaxDebtCapacity
	r.Reason = result.Reason
	r.PaymentPlan = result.PaymentPlan
	r.ProcessedAt = &now
}
