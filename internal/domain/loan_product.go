package domain

import "github.com/shopspring/decimal"

// LoanProduct is a lending offer from the catalog. Read-only here.
type LoanProduct struct {
	ID                  string          `json:"id" db:"id"`
	Name                string          `json:"name" db:"name"`
	MinimumAmount       decimal.Decimal `json:"minimum_amount" db:"minimum_amount"`
	MaximumAmount       decimal.Decimal `json:"maximum_amount" db:"maximum_amount"`
	InterestRate        decimal.Decimal `json:"interest_rate" db:"interest_rate"`
	AutomaticValidation bool            `json:"automatic_validation" db:"automatic_validation"`
}

// IsAmountValid reports whether min <= amount <= max.
func (p *LoanProduct) IsAmountValid(amount decimal.Decimal) bool {
	return amount.GreaterThanOrEqual(p.MinimumAmount) && amount.LessThanOrEqual(p.MaximumAmount)
}
