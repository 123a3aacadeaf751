package messaging

import (
	"context"
	"log"
	"time"

	"github.com/segyhp/loan-origination/internal/domain"

	"github.com/shopspring/decimal"
)

// OrderDecisionType tags decision notifications on the stream.
const OrderDecisionType = "ORDER_DECISION"

// OrderDecisionMessage is the wire shape consumed by the notification service.
type OrderDecisionMessage struct {
	OrderID      string          `json:"orderId"`
	EmailAddress string          `json:"emailAddress"`
	Decision     string          `json:"decision"`
	Amount       decimal.Decimal `json:"amount"`
	Deadline     int             `json:"deadline"`
	DecisionDate time.Time       `json:"decisionDate"`
	Type         string          `json:"type"`
}

type streamNotificationDispatcher struct {
	publisher *StreamPublisher
	stream    string
}

func NewStreamNotificationDispatcher(publisher *StreamPublisher, stream string) NotificationDispatcher {
	return &streamNotificationDispatcher{publisher: publisher, stream: stream}
}

func (d *streamNotificationDispatcher) NotifyOrderDecision(ctx context.Context, order *domain.Order) error {
	message := OrderDecisionMessage{
		OrderID:      order.ID,
		EmailAddress: order.EmailAddress,
		Decision:     order.Status.Name(),
		Amount:       order.Amount,
		Deadline:     order.Deadline,
		DecisionDate: order.UpdatedAt,
		Type:         OrderDecisionType,
	}

	entryID, err := d.publisher.Publish(ctx, d.stream, message)
	if err != nil {
		log.Printf("Failed to send decision notification for order %s: %v", order.ID, err)
		return err
	}

	log.Printf("Decision notification for order %s queued as %s", order.ID, entryID)
	return nil
}
