package commands_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"warehouse/internal/core/application/usecases/commands"
	"warehouse/internal/core/domain/model/fleet"
	"warehouse/internal/core/domain/model/robot"
	"warehouse/internal/core/ports"
	"warehouse/internal/wire"
)

func TestNewUpdateRobotStatusCommand(t *testing.T) {
	t.Run("accepts_report", func(t *testing.T) {
		cmd, err := commands.NewUpdateRobotStatusCommand("AMR-001", "IDLE", "DOCK", 87)

		require.NoError(t, err)
		assert.Equal(t, "IDLE", cmd.Status())
		assert.Equal(t, "DOCK", cmd.Location())
		assert.Equal(t, 87, cmd.Battery())
	})

	t.Run("rejects_missing_robot_id", func(t *testing.T) {
		_, err := commands.NewUpdateRobotStatusCommand("", "IDLE", "DOCK", 87)
		assert.Error(t, err)
	})

	t.Run("rejects_missing_status", func(t *testing.T) {
		_, err := commands.NewUpdateRobotStatusCommand("AMR-001", "", "DOCK", 87)
		assert.ErrorIs(t, err, commands.ErrStatusIsRequired)
	})
}

func TestUpdateRobotStatusCommandHandler_Handle(t *testing.T) {
	report := func(t *testing.T, handler commands.UpdateRobotStatusCommandHandler, status, location string) {
		t.Helper()
		cmd, err := commands.NewUpdateRobotStatusCommand("AMR-001", status, location, 90)
		require.NoError(t, err)
		require.NoError(t, handler.Handle(context.Background(), cmd))
	}

	// dispatchOne drives the state into one committed assignment for AMR-001.
	dispatchOne := func(t *testing.T, state *fleet.State) {
		t.Helper()
		state.ApplyRobotStatus("AMR-001", robot.Idle.String(), robot.LocationDock, 100)
		state.ApplyShelfStatus("shelf-1", "item_A", 50, "units")
		submitHandler := commands.NewSubmitOrderCommandHandler(state)
		cmd, err := commands.NewSubmitOrderCommand("ord-1", "item_A", 10, "P1")
		require.NoError(t, err)
		require.NoError(t, submitHandler.Handle(context.Background(), cmd))
		require.Len(t, state.MatchOrders(firstSelector{}), 1)
	}

	t.Run("plain_report_only_refreshes_mirror", func(t *testing.T) {
		state := newTestState(t)
		bus := &MockMessageBus{}
		archive := &MockDispatchArchive{}
		handler := commands.NewUpdateRobotStatusCommandHandler(state, bus, archive, "site-a")

		report(t, handler, robot.Idle.String(), robot.LocationDock)

		bus.AssertNotCalled(t, "PublishAcked", mock.Anything, mock.Anything, mock.Anything)
		archive.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
		m, ok := state.RobotMirror("AMR-001")
		require.True(t, ok)
		assert.Equal(t, 90, m.Battery)
	})

	t.Run("stall_while_working_publishes_exactly_one_refund", func(t *testing.T) {
		state := newTestState(t)
		dispatchOne(t, state)

		bus := &MockMessageBus{}
		archive := &MockDispatchArchive{}
		bus.On("PublishAcked", mock.Anything, wire.DispatchTopic("site-a"), mock.Anything).Return(nil)
		archive.On("Append", mock.Anything, mock.MatchedBy(func(r ports.DispatchRecord) bool {
			return r.Command == wire.CommandRestock && r.Quantity == 10
		})).Return(nil)
		handler := commands.NewUpdateRobotStatusCommandHandler(state, bus, archive, "site-a")

		report(t, handler, robot.Picking.String(), "SHELF-S1")
		report(t, handler, robot.StatusStalled, "SHELF-S1")

		messages := decodeDispatches(t, bus)
		require.Len(t, messages, 1)
		assert.Equal(t, wire.CommandRestock, messages[0].Command)
		assert.Equal(t, "shelf-1", messages[0].TargetShelfID)
		assert.Equal(t, 10, messages[0].Quantity)

		archive.AssertNumberOfCalls(t, "Append", 1)
		assert.Equal(t, 1, state.PendingOrders(), "failed order requeued")
	})

	t.Run("stall_before_work_confirmed_archives_without_refund", func(t *testing.T) {
		state := newTestState(t)
		dispatchOne(t, state)

		bus := &MockMessageBus{}
		archive := &MockDispatchArchive{}
		archive.On("Append", mock.Anything, mock.MatchedBy(func(r ports.DispatchRecord) bool {
			return r.Command == wire.CommandStallCompensation &&
				r.Quantity == 0 && r.RobotID == "AMR-001"
		})).Return(nil)
		handler := commands.NewUpdateRobotStatusCommandHandler(state, bus, archive, "site-a")

		report(t, handler, robot.StatusStalled, robot.LocationDock)

		bus.AssertNotCalled(t, "PublishAcked", mock.Anything, mock.Anything, mock.Anything)
		archive.AssertNumberOfCalls(t, "Append", 1)
	})

	t.Run("refund_publish_failure_is_returned", func(t *testing.T) {
		state := newTestState(t)
		dispatchOne(t, state)

		bus := &MockMessageBus{}
		archive := &MockDispatchArchive{}
		bus.On("PublishAcked", mock.Anything, mock.Anything, mock.Anything).Return(assert.AnError)
		handler := commands.NewUpdateRobotStatusCommandHandler(state, bus, archive, "site-a")

		cmd, err := commands.NewUpdateRobotStatusCommand("AMR-001", robot.Picking.String(), "SHELF-S1", 90)
		require.NoError(t, err)
		require.NoError(t, handler.Handle(context.Background(), cmd))

		cmd, err = commands.NewUpdateRobotStatusCommand("AMR-001", robot.StatusStalled, "SHELF-S1", 90)
		require.NoError(t, err)
		assert.ErrorIs(t, handler.Handle(context.Background(), cmd), assert.AnError)
	})
}
