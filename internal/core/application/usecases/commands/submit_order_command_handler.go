package commands

import (
	"context"
	"time"

	"warehouse/internal/core/domain/model/fleet"
	"warehouse/internal/core/domain/model/order"
)

// SubmitOrderCommandHandler accepts validated orders into the fleet state's
// pending queue, where the matching loop picks them up on its next pass.
//
// Example:
//
//	handler := NewSubmitOrderCommandHandler(state)
//	cmd, _ := NewSubmitOrderCommand("", "item_A", 10, "P1")
//
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("order submission failed: %w", err)
//	}
type SubmitOrderCommandHandler struct {
	state *fleet.State
}

// NewSubmitOrderCommandHandler creates a handler for order submission.
func NewSubmitOrderCommandHandler(state *fleet.State) SubmitOrderCommandHandler {
	return SubmitOrderCommandHandler{
		state: state,
	}
}

// Handle processes the order submission command.
// Creates the order aggregate stamped with the arrival time and appends it
// to the tail of the pending queue.
func (h *SubmitOrderCommandHandler) Handle(_ context.Context, cmd SubmitOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	o, err := order.NewOrder(cmd.OrderID(), cmd.Item(), cmd.Quantity(), cmd.Station(), time.Now())
	if err != nil {
		return err
	}

	return h.state.EnqueueOrder(o)
}
