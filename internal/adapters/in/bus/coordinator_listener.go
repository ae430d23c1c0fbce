// Package bus binds internal topic subscriptions to the coordinator's
// command handlers. It is the message-driven counterpart of the HTTP
// adapter: normalized status reports arrive here and become state updates.
package bus

import (
	"context"
	"encoding/json"
	"log/slog"

	"warehouse/internal/core/application/usecases/commands"
	"warehouse/internal/core/ports"
	"warehouse/internal/pkg/errs"
	"warehouse/internal/wire"
)

// CoordinatorListener feeds normalized robot and shelf status reports into
// the coordinator.
type CoordinatorListener struct {
	bus               ports.MessageBus
	updateRobotStatus commands.UpdateRobotStatusCommandHandler
	updateShelfStatus commands.UpdateShelfStatusCommandHandler
	group             string
	logger            *slog.Logger
}

// NewCoordinatorListener creates a listener for one deployment group.
func NewCoordinatorListener(
	bus ports.MessageBus,
	updateRobotStatus commands.UpdateRobotStatusCommandHandler,
	updateShelfStatus commands.UpdateShelfStatusCommandHandler,
	group string,
	logger *slog.Logger,
) (*CoordinatorListener, error) {
	if bus == nil {
		return nil, errs.NewValueIsRequiredError("bus")
	}
	if group == "" {
		return nil, errs.NewValueIsRequiredError("group")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &CoordinatorListener{
		bus:               bus,
		updateRobotStatus: updateRobotStatus,
		updateShelfStatus: updateShelfStatus,
		group:             group,
		logger:            logger.With("component", "coordinator_listener"),
	}, nil
}

// Start subscribes to the internal status hierarchies.
func (l *CoordinatorListener) Start(ctx context.Context) error {
	if err := l.bus.Subscribe(ctx, wire.InternalRobotStatusFilter(l.group), l.handleRobotStatus); err != nil {
		return err
	}
	return l.bus.Subscribe(ctx, wire.InternalShelfStatusFilter(l.group), l.handleShelfStatus)
}

func (l *CoordinatorListener) handleRobotStatus(topic string, payload []byte) {
	var status wire.RobotStatus
	if err := json.Unmarshal(payload, &status); err != nil {
		l.logger.Warn("dropping malformed robot status", "topic", topic, "error", err)
		return
	}

	cmd, err := commands.NewUpdateRobotStatusCommand(status.RobotID, status.Status, status.LocationID, status.Battery)
	if err != nil {
		l.logger.Warn("dropping invalid robot status", "topic", topic, "error", err)
		return
	}

	if err := l.updateRobotStatus.Handle(context.Background(), cmd); err != nil {
		l.logger.Error("failed to process robot status", "robot_id", status.RobotID, "error", err)
	}
}

func (l *CoordinatorListener) handleShelfStatus(topic string, payload []byte) {
	var status wire.ShelfStatus
	if err := json.Unmarshal(payload, &status); err != nil {
		l.logger.Warn("dropping malformed shelf status", "topic", topic, "error", err)
		return
	}

	cmd, err := commands.NewUpdateShelfStatusCommand(status.AssetID, status.ItemID, status.Stock, status.Unit)
	if err != nil {
		l.logger.Warn("dropping invalid shelf status", "topic", topic, "error", err)
		return
	}

	if err := l.updateShelfStatus.Handle(context.Background(), cmd); err != nil {
		l.logger.Error("failed to process shelf status", "asset_id", status.AssetID, "error", err)
	}
}
