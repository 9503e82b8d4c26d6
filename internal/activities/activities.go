package activities

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cx-tal-miterani/airline-booking/internal/booking"
	"github.com/cx-tal-miterani/airline-booking/internal/models"
	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"
)

// Activity names used when registering and scheduling
const (
	LoadOrderName          = "LoadOrder"
	PublishOrderPlacedName = "PublishOrderPlaced"
	RecordOrderAuditName   = "RecordOrderAudit"
)

// OrderLoader reads committed orders
type OrderLoader interface {
	GetOrder(ctx context.Context, id int64) (*models.Order, error)
}

// EventPublisher publishes order events to the message bus
type EventPublisher interface {
	PublishOrderPlaced(ctx context.Context, event models.OrderPlacedEvent) error
}

// AuditRecorder stores the audit trail of orders
type AuditRecorder interface {
	RecordOrderPlaced(ctx context.Context, event models.OrderPlacedEvent) error
}

// LoadOrderInput is the input of LoadOrder
type LoadOrderInput struct {
	OrderID int64  `json:"order_id"`
	EventID string `json:"event_id"`
}

// Activities holds dependencies for the order activities
type Activities struct {
	orders    OrderLoader
	publisher EventPublisher
	auditor   AuditRecorder
	now       func() time.Time
}

// NewActivities creates a new Activities instance
func NewActivities(orders OrderLoader, publisher EventPublisher, auditor AuditRecorder) *Activities {
	return &Activities{
		orders:    orders,
		publisher: publisher,
		auditor:   auditor,
		now:       time.Now,
	}
}

// LoadOrder reads the order and turns it into an OrderPlaced event. A missing
// order fails without retries.
func (a *Activities) LoadOrder(ctx context.Context, input LoadOrderInput) (*models.OrderPlacedEvent, error) {
	logger := activity.GetLogger(ctx)
	logger.Info("Loading order", "orderID", input.OrderID)

	order, err := a.orders.GetOrder(ctx, input.OrderID)
	if err != nil {
		if errors.Is(err, booking.ErrNotFound) {
			return nil, temporal.NewNonRetryableApplicationError(
				fmt.Sprintf("order %d not found", input.OrderID), "OrderNotFound", err)
		}
		return nil, fmt.Errorf("load order %d: %w", input.OrderID, err)
	}

	event := models.NewOrderPlacedEvent(input.EventID, *order, a.now())
	return &event, nil
}

// PublishOrderPlaced sends the event to kafka
func (a *Activities) PublishOrderPlaced(ctx context.Context, event models.OrderPlacedEvent) error {
	logger := activity.GetLogger(ctx)
	logger.Info("Publishing order placed event", "orderID", event.OrderID, "eventID", event.EventID)

	if err := a.publisher.PublishOrderPlaced(ctx, event); err != nil {
		return fmt.Errorf("publish order %d: %w", event.OrderID, err)
	}
	return nil
}

// RecordOrderAudit writes the audit entry for the order
func (a *Activities) RecordOrderAudit(ctx context.Context, event models.OrderPlacedEvent) error {
	logger := activity.GetLogger(ctx)
	logger.Info("Recording order audit", "orderID", event.OrderID)

	if err := a.auditor.RecordOrderPlaced(ctx, event); err != nil {
		return fmt.Errorf("audit order %d: %w", event.OrderID, err)
	}
	return nil
}
