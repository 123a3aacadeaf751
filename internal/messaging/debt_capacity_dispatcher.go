package messaging

import (
	"context"
	"log"
	"time"

	"github.com/segyhp/loan-origination/internal/domain"

	"github.com/shopspring/decimal"
)

// CapacityRequestMessage is the wire shape consumed by the debt-capacity calculator.
type CapacityRequestMessage struct {
	OrderID      string          `json:"order_id"`
	UserID       string          `json:"user_id"`
	Amount       decimal.Decimal `json:"amount"`
	Deadline     int             `json:"deadline"`
	EmailAddress string          `json:"email_address"`
	BaseSalary   decimal.Decimal `json:"base_salary"`
	InterestRate decimal.Decimal `json:"interest_rate"`
	LoanTypeID   string          `json:"loan_type_id"`
	Type         string          `json:"type"`
	Timestamp    time.Time       `json:"timestamp"`
}

type streamDebtCapacityDispatcher struct {
	publisher *StreamPublisher
	stream    string
	now       func() time.Time
}

func NewStreamDebtCapacityDispatcher(publisher *StreamPublisher, stream string) DebtCapacityDispatcher {
	return &streamDebtCapacityDispatcher{publisher: publisher, stream: stream, now: time.Now}
}

func (d *streamDebtCapacityDispatcher) Submit(ctx context.Context, request *domain.DebtCapacityRequest) error {
	message := CapacityRequestMessage{
		OrderID:      request.OrderID,
		UserID:       request.UserID,
		Amount:       request.Amount,
		Deadline:     request.Deadline,
		EmailAddress: request.EmailAddress,
		BaseSalary:   request.BaseSalary,
		InterestRate: request.InterestRate,
		LoanTypeID:   request.LoanProductID,
		Type:         domain.CapacityValidationType,
		Timestamp:    d.now(),
	}

	entryID, err := d.publisher.Publish(ctx, d.stream, message)
	if err != nil {
		log.Printf("Failed to submit debt capacity request %s for order %s: %v", request.ID, request.OrderID, err)
		return err
	}

	log.Printf("Debt capacity request %s for order %s queued as %s", request.ID, request.OrderID, entryID)
	return nil
}
