package domain

import "github.com/shopspring/decimal"

// PendingRequest is a reporting row joined across orders, products and status.
type PendingRequest struct {
	Amount        decimal.Decimal `json:"amount" db:"amount"`
	Deadline      int             `json:"deadline" db:"deadline"`
	EmailAddress  string          `json:"email_address" db:"email_address"`
	Name          string          `json:"name" db:"-"`
	LoanType      string          `json:"loan_type" db:"loan_type"`
	InterestRate  decimal.Decimal `json:"interest_rate" db:"interest_rate"`
	Status        string          `json:"status" db:"status_order"`
	BaseSalary    decimal.Decimal `json:"base_salary" db:"-"`
	MonthlyAmount decimal.Decimal `json:"monthly_amount" db:"total_monthly_debt"`
}

// WithApplicant returns a copy of the row carrying the applicant's name and salary.
func (r PendingRequest) WithApplicant(a *Applicant) *PendingRequest {
	r.Name = a.FullName()
	r.BaseSalary = a.BaseSalary
	return &r
}

// PendingFilter scopes the pending-requests report. Empty fields do not filter.
type PendingFilter struct {
	StatusID string
	Email    string
	Page     int
	Size     int
}
