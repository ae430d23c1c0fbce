package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"warehouse/internal/core/domain/model/fleet"
	"warehouse/internal/core/ports"
	"warehouse/internal/wire"
)

// ProcessOrdersCommandHandler runs the matching pass and turns its effects
// into bus traffic: RESTOCK intents for shelves whose mirrored stock cannot
// cover an order, then the EXECUTE_TASK dispatch itself. Every published
// intent is archived.
//
// Example:
//
//	handler := NewProcessOrdersCommandHandler(state, selector, bus, archive, "site-a")
//	cmd := NewProcessOrdersCommand()
//
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("order processing failed: %w", err)
//	}
type ProcessOrdersCommandHandler struct {
	state    *fleet.State
	selector fleet.RobotSelector
	bus      ports.MessageBus
	archive  ports.DispatchArchive
	group    string
}

// NewProcessOrdersCommandHandler creates a handler for the matching pass.
func NewProcessOrdersCommandHandler(
	state *fleet.State,
	selector fleet.RobotSelector,
	bus ports.MessageBus,
	archive ports.DispatchArchive,
	group string,
) ProcessOrdersCommandHandler {
	return ProcessOrdersCommandHandler{
		state:    state,
		selector: selector,
		bus:      bus,
		archive:  archive,
		group:    group,
	}
}

// Handle processes the matching command.
// The matching itself commits atomically inside the fleet state; publishing
// happens afterwards, RESTOCK intents strictly before the task dispatch so
// the shelf engine tops up before the robot arrives. A publish failure does
// not stop the remaining dispatches; all failures are joined and returned.
func (h *ProcessOrdersCommandHandler) Handle(ctx context.Context, cmd ProcessOrdersCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	dispatches := h.state.MatchOrders(h.selector)

	var errsJoined error
	for _, d := range dispatches {
		if err := h.publishDispatch(ctx, d); err != nil {
			errsJoined = errors.Join(errsJoined, fmt.Errorf("dispatch for order %s: %w", d.Order.ID(), err))
		}
	}

	return errsJoined
}

func (h *ProcessOrdersCommandHandler) publishDispatch(ctx context.Context, d fleet.Dispatch) error {
	topic := wire.DispatchTopic(h.group)

	for range d.Restocks {
		restock := wire.DispatchMessage{
			Command:       wire.CommandRestock,
			TargetShelfID: d.Shelf.String(),
			Quantity:      d.RestockQuantity,
		}
		if err := h.publishAndArchive(ctx, topic, restock, d.Order.ID()); err != nil {
			return err
		}
	}

	task := wire.DispatchMessage{
		RobotID:         d.Robot.String(),
		Command:         wire.CommandExecuteTask,
		TargetShelfID:   d.Shelf.String(),
		TargetStationID: d.Station.String(),
		Quantity:        d.Quantity,
	}
	return h.publishAndArchive(ctx, topic, task, d.Order.ID())
}

func (h *ProcessOrdersCommandHandler) publishAndArchive(
	ctx context.Context, topic string, msg wire.DispatchMessage, orderID string,
) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	if err := h.bus.PublishAcked(ctx, topic, payload); err != nil {
		return err
	}

	return h.archive.Append(ctx, ports.DispatchRecord{
		OccurredAt: time.Now(),
		OrderID:    orderID,
		RobotID:    msg.RobotID,
		Command:    msg.Command,
		ShelfID:    msg.TargetShelfID,
		StationID:  msg.TargetStationID,
		Quantity:   msg.Quantity,
	})
}
