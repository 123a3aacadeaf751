package mocks

import (
	"context"
	"iter"

	"github.com/segyhp/loan-origination/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) CreateLoanRequest(ctx context.Context, applicantID string, amount decimal.Decimal, deadline int, email, productID string) (*domain.Order, error) {
	args := m.Called(ctx, applicantID, amount, deadline, email, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockOrderService) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockOrderService) FindByEmail(ctx context.Context, email string) iter.Seq2[*domain.Order, error] {
	args := m.Called(ctx, email)
	return args.Get(0).(iter.Seq2[*domain.Order, error])
}

func (m *MockOrderService) UpdateOrderDecision(ctx context.Context, id, decision string) (*domain.Order, error) {
	args := m.Called(ctx, id, decision)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockOrderService) FindPendingRequests(ctx context.Context, filter domain.PendingFilter) ([]*domain.PendingRequest, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.PendingRequest), args.Error(1)
}

func (m *MockOrderService) ListLoanProducts(ctx context.Context) ([]*domain.LoanProduct, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.LoanProduct), args.Error(1)
}

type MockDebtCapacityService struct {
	mock.Mock
}

func (m *MockDebtCapacityService) ProcessDebtCapacityRequest(ctx context.Context, request *domain.DebtCapacityRequest) *domain.DebtCapacityRequest {
	args := m.Called(ctx, request)
	return args.Get(0).(*domain.DebtCapacityRequest)
}
