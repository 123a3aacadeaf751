package service

import (
	"context"
	"log"

	"github.com/segyhp/loan-origination/internal/domain"
	"github.com/segyhp/loan-origination/internal/messaging"

	"github.com/google/uuid"
)

type DebtCapacityService struct {
	dispatcher messaging.DebtCapacityDispatcher
}

// NewDebtCapacityService wires the workflow. A nil dispatcher disables submission.
func NewDebtCapacityService(dispatcher messaging.DebtCapacityDispatcher) *DebtCapacityService {
	if dispatcher == nil {
		dispatcher = messaging.NoopDebtCapacityDispatcher{}
	}
	return &DebtCapacityService{dispatcher: dispatcher}
}

// ProcessDebtCapacityRequest assigns a fresh id and hands the request to the
// calculator queue. Submission is best effort and never fails the caller.
func (s *DebtCapacityService) ProcessDebtCapacityRequest(ctx context.Context, request *domain.DebtCapacityRequest) *domain.DebtCapacityRequest {
	request.ID = uuid.NewString()

	if err := s.dispatcher.Submit(ctx, request); err != nil {
		log.Printf("Debt capacity request %s for order %s was not submitted: %v", request.ID, request.OrderID, err)
	}

	return request
}
