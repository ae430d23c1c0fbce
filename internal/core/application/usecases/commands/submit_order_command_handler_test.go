package commands_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"warehouse/internal/core/application/usecases/commands"
	"warehouse/internal/core/domain/model/fleet"
)

func newTestState(t *testing.T) *fleet.State {
	t.Helper()
	state, err := fleet.NewState(100)
	require.NoError(t, err)
	return state
}

func TestSubmitOrderCommandHandler_Handle(t *testing.T) {
	t.Run("enqueues_order", func(t *testing.T) {
		state := newTestState(t)
		handler := commands.NewSubmitOrderCommandHandler(state)
		cmd, err := commands.NewSubmitOrderCommand("ord-1", "item_A", 10, "P1")
		require.NoError(t, err)

		require.NoError(t, handler.Handle(context.Background(), cmd))

		assert.Equal(t, 1, state.PendingOrders())
	})

	t.Run("rejects_unconstructed_command", func(t *testing.T) {
		state := newTestState(t)
		handler := commands.NewSubmitOrderCommandHandler(state)

		err := handler.Handle(context.Background(), commands.SubmitOrderCommand{})

		assert.ErrorIs(t, err, commands.ErrSubmitOrderCommandIsNotConstructed)
		assert.Equal(t, 0, state.PendingOrders())
	})
}
