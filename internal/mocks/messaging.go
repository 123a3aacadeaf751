package mocks

import (
	"context"

	"github.com/segyhp/loan-origination/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockNotificationDispatcher struct {
	mock.Mock
}

func (m *MockNotificationDispatcher) NotifyOrderDecision(ctx context.Context, order *domain.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

type MockDebtCapacityDispatcher struct {
	mock.Mock
}

func (m *MockDebtCapacityDispatcher) Submit(ctx context.Context, request *domain.DebtCapacityRequest) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}
