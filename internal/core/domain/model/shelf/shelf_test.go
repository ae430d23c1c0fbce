package shelf_test

import (
	"testing"

	"warehouse/internal/core/domain/model/shelf"
	"warehouse/internal/wire"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestShelf(t *testing.T) *shelf.Shelf {
	t.Helper()
	s, err := shelf.NewShelf("S1", shelf.ZoneStorageA, 100)
	require.NoError(t, err)
	return s
}

func executeTask(robotID string, qty int) wire.DispatchMessage {
	return wire.DispatchMessage{
		RobotID:         robotID,
		Command:         wire.CommandExecuteTask,
		TargetShelfID:   "S1",
		TargetStationID: "P1",
		Quantity:        qty,
	}
}

func TestNewShelf(t *testing.T) {
	t.Run("derives_item_and_unit", func(t *testing.T) {
		s, err := shelf.NewShelf("S2", shelf.ZoneStorageA, 50)
		require.NoError(t, err)
		assert.Equal(t, "item_B", s.Item().String())
		assert.Equal(t, 50, s.Stock())

		status := s.Status()
		assert.Equal(t, "S2", status.AssetID)
		assert.Equal(t, "SHELF", status.Type)
		assert.Equal(t, shelf.UnitPieces, status.Unit)
	})

	t.Run("storage_b_reports_kilograms", func(t *testing.T) {
		s, err := shelf.NewShelf("S6", shelf.ZoneStorageB, 100)
		require.NoError(t, err)
		assert.Equal(t, "item_F", s.Item().String())
		assert.Equal(t, shelf.UnitKilograms, s.Status().Unit)
	})

	t.Run("invalid_construction", func(t *testing.T) {
		_, err := shelf.NewShelf("", shelf.ZoneStorageA, 100)
		require.Error(t, err)

		_, err = shelf.NewShelf("S1", "", 100)
		require.Error(t, err)

		_, err = shelf.NewShelf("S1", shelf.ZoneStorageA, 0)
		require.Error(t, err)
	})
}

func TestShelf_ApplyDispatch(t *testing.T) {
	t.Run("restock_is_immediate", func(t *testing.T) {
		s := newTestShelf(t)

		changed := s.ApplyDispatch(wire.DispatchMessage{
			Command:       wire.CommandRestock,
			TargetShelfID: "S1",
			Quantity:      40,
		})

		assert.True(t, changed)
		assert.Equal(t, 140, s.Stock())
	})

	t.Run("task_dispatch_reserves_without_deduction", func(t *testing.T) {
		s := newTestShelf(t)

		changed := s.ApplyDispatch(executeTask("AMR-1", 10))

		assert.False(t, changed)
		assert.Equal(t, 100, s.Stock())
		assert.Equal(t, 1, s.ReservationCount())
		assert.Equal(t, 1, s.PendingCount())
	})

	t.Run("other_shelf_is_ignored", func(t *testing.T) {
		s := newTestShelf(t)

		changed := s.ApplyDispatch(wire.DispatchMessage{
			Command:       wire.CommandRestock,
			TargetShelfID: "S9",
			Quantity:      40,
		})

		assert.False(t, changed)
		assert.Equal(t, 100, s.Stock())
	})
}

func TestShelf_ApplyRobotStatus(t *testing.T) {
	t.Run("picking_deducts_fifo", func(t *testing.T) {
		s := newTestShelf(t)
		s.ApplyDispatch(executeTask("AMR-1", 10))

		changed := s.ApplyRobotStatus("AMR-1", "PICKING", "SHELF-S1")

		assert.True(t, changed)
		assert.Equal(t, 90, s.Stock())
		assert.Equal(t, 0, s.ReservationCount())
		assert.Equal(t, 0, s.PendingCount())
	})

	t.Run("repeated_picking_deducts_once", func(t *testing.T) {
		s := newTestShelf(t)
		s.ApplyDispatch(executeTask("AMR-1", 10))

		require.True(t, s.ApplyRobotStatus("AMR-1", "PICKING", "SHELF-S1"))
		// The robot dwells and repeats the same report.
		assert.False(t, s.ApplyRobotStatus("AMR-1", "PICKING", "SHELF-S1"))
		assert.False(t, s.ApplyRobotStatus("AMR-1", "PICKING", "SHELF-S1"))

		assert.Equal(t, 90, s.Stock())
	})

	t.Run("revisit_deducts_again_after_departure", func(t *testing.T) {
		s := newTestShelf(t)
		s.ApplyDispatch(executeTask("AMR-1", 10))
		require.True(t, s.ApplyRobotStatus("AMR-1", "PICKING", "SHELF-S1"))

		// Leaving the shelf clears the dedupe guard.
		s.ApplyRobotStatus("AMR-1", "MOVING_TO_DROP", "TRANSIT")

		s.ApplyDispatch(executeTask("AMR-1", 5))
		assert.True(t, s.ApplyRobotStatus("AMR-1", "PICKING", "SHELF-S1"))
		assert.Equal(t, 85, s.Stock())
	})

	t.Run("picking_elsewhere_is_ignored", func(t *testing.T) {
		s := newTestShelf(t)
		s.ApplyDispatch(executeTask("AMR-1", 10))

		assert.False(t, s.ApplyRobotStatus("AMR-1", "PICKING", "SHELF-S2"))
		assert.Equal(t, 100, s.Stock())
		assert.Equal(t, 1, s.ReservationCount())
	})

	t.Run("stock_never_negative", func(t *testing.T) {
		s, err := shelf.NewShelf("S1", shelf.ZoneStorageA, 100)
		require.NoError(t, err)
		s.ApplyDispatch(executeTask("AMR-1", 500))

		require.True(t, s.ApplyRobotStatus("AMR-1", "PICKING", "SHELF-S1"))
		assert.Equal(t, 0, s.Stock())
	})

	t.Run("stall_cancels_pending_reservation", func(t *testing.T) {
		s := newTestShelf(t)
		s.ApplyDispatch(executeTask("AMR-1", 10))

		s.ApplyRobotStatus("AMR-1", "STALLED", "TRANSIT")

		assert.Equal(t, 0, s.ReservationCount())
		assert.Equal(t, 0, s.PendingCount())
		assert.Equal(t, 100, s.Stock())
	})

	t.Run("stall_of_unknown_robot_is_ignored", func(t *testing.T) {
		s := newTestShelf(t)
		s.ApplyDispatch(executeTask("AMR-1", 10))

		s.ApplyRobotStatus("AMR-9", "STALLED", "TRANSIT")

		assert.Equal(t, 1, s.ReservationCount())
	})
}

// TestStallCancelsOldestReservation_EvenWhenNotTheStalledRobots pins the
// positional cancellation hazard: the reservation queue is FIFO by dispatch
// order, not keyed by robot, so a stall drops the oldest entry even when the
// stalled robot's own reservation sits further back.
func TestStallCancelsOldestReservation_EvenWhenNotTheStalledRobots(t *testing.T) {
	s := newTestShelf(t)
	s.ApplyDispatch(executeTask("AMR-1", 10)) // oldest reservation: 10
	s.ApplyDispatch(executeTask("AMR-2", 3))  // newer reservation: 3

	// AMR-2 stalls; positionally, AMR-1's quantity of 10 is cancelled.
	s.ApplyRobotStatus("AMR-2", "STALLED", "TRANSIT")
	require.Equal(t, 1, s.ReservationCount())

	// AMR-1 then picks and is debited the surviving quantity of 3.
	require.True(t, s.ApplyRobotStatus("AMR-1", "PICKING", "SHELF-S1"))
	assert.Equal(t, 97, s.Stock())
}

func TestShelf_Replenishment(t *testing.T) {
	s := newTestShelf(t)
	require.False(t, s.LowStock())

	s.ApplyDispatch(executeTask("AMR-1", 80))
	require.True(t, s.ApplyRobotStatus("AMR-1", "PICKING", "SHELF-S1"))
	require.Equal(t, 20, s.Stock())

	assert.True(t, s.LowStock())
	s.Refill()
	assert.Equal(t, 100, s.Stock())
	assert.False(t, s.LowStock())
}

func TestShelf_Validate(t *testing.T) {
	var zero shelf.Shelf
	require.ErrorIs(t, zero.Validate(), shelf.ErrShelfIsNotConstructed)

	s := newTestShelf(t)
	require.NoError(t, s.Validate())
}
