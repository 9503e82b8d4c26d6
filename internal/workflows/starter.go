package workflows

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.temporal.io/api/enums/v1"
	"go.temporal.io/sdk/client"
)

// OrderPlacedWorkflowID is the workflow id used for an order. One order
// never starts the workflow twice.
func OrderPlacedWorkflowID(orderID int64) string {
	return fmt.Sprintf("order-placed-%d", orderID)
}

// Starter starts order workflows on a task queue
type Starter struct {
	client    client.Client
	taskQueue string
}

// NewStarter creates a workflow starter
func NewStarter(c client.Client, taskQueue string) *Starter {
	return &Starter{client: c, taskQueue: taskQueue}
}

// StartOrderPlaced starts the OrderPlaced workflow for a committed order and
// returns the run id
func (s *Starter) StartOrderPlaced(ctx context.Context, orderID int64) (string, error) {
	opts := client.StartWorkflowOptions{
		ID:                    OrderPlacedWorkflowID(orderID),
		TaskQueue:             s.taskQueue,
		WorkflowIDReusePolicy: enums.WORKFLOW_ID_REUSE_POLICY_REJECT_DUPLICATE,
	}

	run, err := s.client.ExecuteWorkflow(ctx, opts, OrderPlacedWorkflow, OrderPlacedInput{
		OrderID: orderID,
		EventID: uuid.NewString(),
	})
	if err != nil {
		return "", fmt.Errorf("failed to start workflow for order %d: %w", orderID, err)
	}
	return run.GetRunID(), nil
}
