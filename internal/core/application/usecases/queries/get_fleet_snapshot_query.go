// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return optimized read models for specific use cases.
package queries

import (
	"errors"

	"warehouse/internal/pkg/guard"
)

var ErrGetFleetSnapshotQueryIsNotConstructed = errors.New(
	"GetFleetSnapshotQuery must be created via NewGetFleetSnapshotQuery constructor",
)

// GetFleetSnapshotQuery retrieves the coordinator's current view of the
// fleet: pending orders, locked stations, robot mirrors, shelf mirrors.
//
// Example:
//
//	query := NewGetFleetSnapshotQuery()
//	handler := NewGetFleetSnapshotQueryHandler(state)
//
//	snapshot, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to retrieve fleet snapshot: %w", err)
//	}
//	fmt.Printf("%d orders pending, %d robots busy\n",
//	    snapshot.PendingOrders, snapshot.RobotsBusy)
type GetFleetSnapshotQuery struct {
	guard guard.ConstructorGuard
}

// NewGetFleetSnapshotQuery creates a query for the current fleet view.
// This is a parameterless query.
func NewGetFleetSnapshotQuery() GetFleetSnapshotQuery {
	return GetFleetSnapshotQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetFleetSnapshotQueryIsNotConstructed if validation fails.
func (q GetFleetSnapshotQuery) Validate() error {
	return q.guard.Validate(ErrGetFleetSnapshotQueryIsNotConstructed)
}

// RobotView is the read model of one robot mirror.
type RobotView struct {
	ID       string `json:"robot_id"`
	Location string `json:"location"`
	Battery  int    `json:"battery"`
	Status   string `json:"status"`
	Internal string `json:"internal_state"`
}

// ShelfView is the read model of one shelf mirror.
type ShelfView struct {
	ID    string  `json:"shelf_id"`
	Item  string  `json:"item_id"`
	Stock float64 `json:"stock"`
	Unit  string  `json:"unit"`
}

// GetFleetSnapshotQueryResponse is the point-in-time fleet read model.
type GetFleetSnapshotQueryResponse struct {
	PendingOrders  int         `json:"pending_orders"`
	NextOrderID    string      `json:"next_order_id,omitempty"`
	LockedStations []string    `json:"locked_stations"`
	RobotsBusy     int         `json:"robots_busy"`
	Robots         []RobotView `json:"robots"`
	Shelves        []ShelfView `json:"shelves"`
}
