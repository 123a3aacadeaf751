package messaging

import (
	"context"

	"github.com/segyhp/loan-origination/internal/domain"
)

// NotificationDispatcher announces order decisions to applicants
type NotificationDispatcher interface {
	NotifyOrderDecision(ctx context.Context, order *domain.Order) error
}

// DebtCapacityDispatcher hands debt-capacity requests to the external calculator
type DebtCapacityDispatcher interface {
	Submit(ctx context.Context, request *domain.DebtCapacityRequest) error
}

// NoopNotifier is used when decision notifications are disabled
type NoopNotifier struct{}

func (NoopNotifier) NotifyOrderDecision(context.Context, *domain.Order) error { return nil }

// NoopDebtCapacityDispatcher is used when the debt-capacity queue is disabled
type NoopDebtCapacityDispatcher struct{}

func (NoopDebtCapacityDispatcher) Submit(context.Context, *domain.DebtCapacityRequest) error {
	return nil
}
