package commands

import (
	"context"

	"warehouse/internal/core/domain/model/fleet"
)

// UpdateShelfStatusCommandHandler refreshes the coordinator's shelf mirror
// with an authoritative report, replacing any optimistic stock adjustment
// the matching pass made since the previous report.
type UpdateShelfStatusCommandHandler struct {
	state *fleet.State
}

// NewUpdateShelfStatusCommandHandler creates a handler for shelf status
// reports.
func NewUpdateShelfStatusCommandHandler(state *fleet.State) UpdateShelfStatusCommandHandler {
	return UpdateShelfStatusCommandHandler{
		state: state,
	}
}

// Handle processes one shelf status report.
func (h *UpdateShelfStatusCommandHandler) Handle(_ context.Context, cmd UpdateShelfStatusCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	h.state.ApplyShelfStatus(cmd.ShelfID(), cmd.Item(), cmd.Stock(), cmd.Unit())
	return nil
}
