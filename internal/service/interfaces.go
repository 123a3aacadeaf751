package service

import (
	"context"
	"iter"

	"github.com/segyhp/loan-origination/internal/domain"

	"github.com/shopspring/decimal"
)

// OrderUseCase is the loan request workflow exposed to transports
type OrderUseCase interface {
	CreateLoanRequest(ctx context.Context, applicantID string, amount decimal.Decimal, deadline int, email, productID string) (*domain.Order, error)
	FindByID(ctx context.Context, id string) (*domain.Order, error)
	FindByEmail(ctx context.Context, email string) iter.Seq2[*domain.Order, error]
	UpdateOrderDecision(ctx context.Context, id, decision string) (*domain.Order, error)
	FindPendingRequests(ctx context.Context, filter domain.PendingFilter) ([]*domain.PendingRequest, error)
	ListLoanProducts(ctx context.Context) ([]*domain.LoanProduct, error)
}

// DebtCapacityUseCase submits capacity calculations for an order
type DebtCapacityUseCase interface {
	ProcessDebtCapacityRequest(ctx context.Context, request *domain.DebtCapacityRequest) *domain.DebtCapacityRequest
}
