package workflows

import (
	"errors"
	"time"

	"github.com/cx-tal-miterani/airline-booking/internal/activities"
	"github.com/cx-tal-miterani/airline-booking/internal/models"
	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"
)

const (
	// ActivityTimeout bounds a single attempt of every order activity
	ActivityTimeout = 30 * time.Second
	// MaxActivityAttempts is how often publish and audit are tried
	MaxActivityAttempts = 5
)

// OrderPlacedInput is the input for the order placed workflow
type OrderPlacedInput struct {
	OrderID int64  `json:"order_id"`
	EventID string `json:"event_id"`
}

// OrderPlacedResult is the result of the order placed workflow
type OrderPlacedResult struct {
	Published     bool   `json:"published"`
	Audited       bool   `json:"audited"`
	FailureReason string `json:"failure_reason,omitempty"`
}

// OrderPlacedWorkflow fans a committed order out to the event stream and the
// audit trail. Both run in parallel; a failure of one does not stop the other.
func OrderPlacedWorkflow(ctx workflow.Context, input OrderPlacedInput) (*OrderPlacedResult, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("Order placed workflow started", "orderId", input.OrderID)

	ctx = workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
		StartToCloseTimeout: ActivityTimeout,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    time.Minute,
			MaximumAttempts:    MaxActivityAttempts,
		},
	})

	var event models.OrderPlacedEvent
	err := workflow.ExecuteActivity(ctx, activities.LoadOrderName, activities.LoadOrderInput{
		OrderID: input.OrderID,
		EventID: input.EventID,
	}).Get(ctx, &event)
	if err != nil {
		logger.Error("Failed to load order", "error", err)
		return &OrderPlacedResult{FailureReason: err.Error()}, err
	}

	publish := workflow.ExecuteActivity(ctx, activities.PublishOrderPlacedName, event)
	audit := workflow.ExecuteActivity(ctx, activities.RecordOrderAuditName, event)

	result := &OrderPlacedResult{}
	publishErr := publish.Get(ctx, nil)
	if publishErr != nil {
		logger.Error("Failed to publish order placed event", "error", publishErr)
	} else {
		result.Published = true
	}

	auditErr := audit.Get(ctx, nil)
	if auditErr != nil {
		logger.Error("Failed to record order audit", "error", auditErr)
	} else {
		result.Audited = true
	}

	if err := errors.Join(publishErr, auditErr); err != nil {
		result.FailureReason = err.Error()
		return result, err
	}

	logger.Info("Order placed workflow completed", "orderId", input.OrderID)
	return result, nil
}
