package commands

import (
	"context"
	"encoding/json"
	"time"

	"warehouse/internal/core/domain/model/fleet"
	"warehouse/internal/core/ports"
	"warehouse/internal/wire"
)

// UpdateRobotStatusCommandHandler reconciles robot status reports against
// the world state, and executes the compensation saga when a report reveals
// a stalled assignment: publishing the stock refund and archiving the
// recovery, while the state itself has already requeued the order and
// released the station.
type UpdateRobotStatusCommandHandler struct {
	state   *fleet.State
	bus     ports.MessageBus
	archive ports.DispatchArchive
	group   string
}

// NewUpdateRobotStatusCommandHandler creates a handler for robot status
// reconciliation.
func NewUpdateRobotStatusCommandHandler(
	state *fleet.State,
	bus ports.MessageBus,
	archive ports.DispatchArchive,
	group string,
) UpdateRobotStatusCommandHandler {
	return UpdateRobotStatusCommandHandler{
		state:   state,
		bus:     bus,
		archive: archive,
		group:   group,
	}
}

// Handle processes one status report.
// Most reports are a plain mirror refresh. When the state signals a stall
// recovery with a refund due, the handler publishes exactly one RESTOCK
// intent returning the reserved quantity to the shelf.
func (h *UpdateRobotStatusCommandHandler) Handle(ctx context.Context, cmd UpdateRobotStatusCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	recovery := h.state.ApplyRobotStatus(cmd.RobotID(), cmd.Status(), cmd.Location(), cmd.Battery())
	if recovery == nil {
		return nil
	}

	return h.compensate(ctx, recovery)
}

func (h *UpdateRobotStatusCommandHandler) compensate(ctx context.Context, recovery *fleet.StallRecovery) error {
	orderID := ""
	if recovery.RequeuedOrder != nil {
		orderID = recovery.RequeuedOrder.ID()
	}

	// The archive names what actually went out: RESTOCK only when a refund
	// was published, a plain compensation record otherwise.
	recorded := wire.CommandStallCompensation
	if recovery.RefundQuantity > 0 {
		recorded = wire.CommandRestock
		refund := wire.DispatchMessage{
			Command:       wire.CommandRestock,
			TargetShelfID: recovery.RefundShelf.String(),
			Quantity:      recovery.RefundQuantity,
		}
		payload, err := json.Marshal(refund)
		if err != nil {
			return err
		}
		if err := h.bus.PublishAcked(ctx, wire.DispatchTopic(h.group), payload); err != nil {
			return err
		}
	}

	return h.archive.Append(ctx, ports.DispatchRecord{
		OccurredAt: time.Now(),
		OrderID:    orderID,
		RobotID:    recovery.Robot.String(),
		Command:    recorded,
		ShelfID:    recovery.RefundShelf.String(),
		StationID:  recovery.ReleasedStation.String(),
		Quantity:   recovery.RefundQuantity,
	})
}
