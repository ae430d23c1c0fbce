package queries

import (
	"context"

	"warehouse/internal/core/domain/model/fleet"
)

// GetFleetSnapshotQueryHandler serves the fleet read model straight from the
// in-memory world state. No persistence is involved; the snapshot is as
// fresh as the last processed status report.
type GetFleetSnapshotQueryHandler struct {
	state *fleet.State
}

// NewGetFleetSnapshotQueryHandler creates a handler for fleet snapshot
// queries.
func NewGetFleetSnapshotQueryHandler(state *fleet.State) GetFleetSnapshotQueryHandler {
	return GetFleetSnapshotQueryHandler{state: state}
}

// Handle executes the query, converting the world state snapshot into the
// read model. Robots are sorted by identifier, shelves by first report.
func (h GetFleetSnapshotQueryHandler) Handle(
	_ context.Context,
	query GetFleetSnapshotQuery,
) (GetFleetSnapshotQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetFleetSnapshotQueryResponse{}, err
	}

	snap := h.state.Snapshot()

	response := GetFleetSnapshotQueryResponse{
		PendingOrders:  snap.PendingOrders,
		NextOrderID:    snap.NextOrderID,
		LockedStations: snap.LockedStations,
		RobotsBusy:     snap.RobotsBusy,
		Robots:         make([]RobotView, 0, len(snap.Robots)),
		Shelves:        make([]ShelfView, 0, len(snap.Shelves)),
	}
	if response.LockedStations == nil {
		response.LockedStations = []string{}
	}

	for _, m := range snap.Robots {
		response.Robots = append(response.Robots, RobotView{
			ID:       m.ID.String(),
			Location: m.Location,
			Battery:  m.Battery,
			Status:   m.Status,
			Internal: m.Internal.String(),
		})
	}

	for _, m := range snap.Shelves {
		response.Shelves = append(response.Shelves, ShelfView{
			ID:    m.ID.String(),
			Item:  m.Item.String(),
			Stock: m.Stock,
			Unit:  m.Unit,
		})
	}

	return response, nil
}
