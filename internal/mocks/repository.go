package mocks

import (
	"context"
	"iter"

	"github.com/segyhp/loan-origination/internal/domain"
	"github.com/stretchr/testify/mock"
)

// Seq builds a restartable sequence over items, ending with err when non-nil.
func Seq[T any](items []*T, err error) iter.Seq2[*T, error] {
	return func(yield func(*T, error) bool) {
		for _, item := range items {
			if !yield(item, nil) {
				return
			}
		}
		if err != nil {
			yield(nil, err)
		}
	}
}

type MockLoanProductRepository struct {
	mock.Mock
}

func (m *MockLoanProductRepository) FindByID(ctx context.Context, id string) (*domain.LoanProduct, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LoanProduct), args.Error(1)
}

func (m *MockLoanProductRepository) ExistsByID(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockLoanProductRepository) ListAll(ctx context.Context) iter.Seq2[*domain.LoanProduct, error] {
	args := m.Called(ctx)
	return args.Get(0).(iter.Seq2[*domain.LoanProduct, error])
}

type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Save(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	args := m.Called(ctx, order)
	if rf, ok := args.Get(0).(func(context.Context, *domain.Order) *domain.Order); ok {
		return rf(ctx, order), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	args := m.Called(ctx, id)
	if rf, ok := args.Get(0).(func(context.Context, string) *domain.Order); ok {
		return rf(ctx, id), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByEmail(ctx context.Context, email string) iter.Seq2[*domain.Order, error] {
	args := m.Called(ctx, email)
	return args.Get(0).(iter.Seq2[*domain.Order, error])
}

func (m *MockOrderRepository) FindPendingStatusID(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockOrderRepository) FindPendingRequests(ctx context.Context, filter domain.PendingFilter) ([]*domain.PendingRequest, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.PendingRequest), args.Error(1)
}
