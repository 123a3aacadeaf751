package domain

import "github.com/shopspring/decimal"

// DTOs for requests and responses

type CreateLoanRequest struct {
	ApplicantID   string          `json:"applicant_id"`
	Amount        decimal.Decimal `json:"amount" validate:"decimal_gt=0,decimal_max_scale=2"`
	Deadline      int             `json:"deadline" validate:"required,gte=1,lte=360"`
	EmailAddress  string          `json:"email_address" validate:"required,email"`
	LoanProductID string          `json:"loan_type_id" validate:"required"`
}

type DecisionRequest struct {
	Decision string `json:"decision" validate:"required"`
	Comments string `json:"comments,omitempty"`
}

type DebtCapacitySubmission struct {
	OrderID       string          `json:"order_id" validate:"required"`
	UserID        string          `json:"user_id" validate:"required"`
	Amount        decimal.Decimal `json:"amount" validate:"decimal_gt=0"`
	Deadline      int             `json:"deadline" validate:"required,gte=1,lte=360"`
	EmailAddress  string          `json:"email_address" validate:"required,email"`
	BaseSalary    decimal.Decimal `json:"base_salary" validate:"decimal_gt=0"`
	InterestRate  decimal.Decimal `json:"interest_rate" validate:"decimal_gte=0"`
	LoanProductID string          `json:"loan_type_id" validate:"required"`
}

type PendingRequestsResponse struct {
	Page     int               `json:"page"`
	Size     int               `json:"size"`
	Requests []*PendingRequest `json:"requests"`
}
