package order_test

import (
	"testing"
	"time"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/order"
	"warehouse/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOrder(t *testing.T) {
	arrival := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("valid_order", func(t *testing.T) {
		o, err := order.NewOrder("ord-1", "item_B", 10, "P1", arrival)
		require.NoError(t, err)

		assert.Equal(t, "ord-1", o.ID())
		assert.Equal(t, kernel.ItemID("item_B"), o.Item())
		assert.Equal(t, 10, o.Quantity())
		assert.Equal(t, kernel.StationID("P1"), o.Station())
		assert.Equal(t, arrival, o.Arrival())
		require.NoError(t, o.Validate())
	})

	t.Run("missing_id", func(t *testing.T) {
		_, err := order.NewOrder("", "item_B", 10, "P1", arrival)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("missing_item", func(t *testing.T) {
		_, err := order.NewOrder("ord-1", "", 10, "P1", arrival)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("non_positive_quantity", func(t *testing.T) {
		_, err := order.NewOrder("ord-1", "item_B", 0, "P1", arrival)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

		_, err = order.NewOrder("ord-1", "item_B", -5, "P1", arrival)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("missing_station", func(t *testing.T) {
		_, err := order.NewOrder("ord-1", "item_B", 10, "", arrival)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("aggregated_errors", func(t *testing.T) {
		_, err := order.NewOrder("", "", 0, "", arrival)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})
}

func TestOrder_Validate(t *testing.T) {
	t.Run("zero_value_is_rejected", func(t *testing.T) {
		var o order.Order
		require.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)
	})

	t.Run("nil_is_rejected", func(t *testing.T) {
		var o *order.Order
		require.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)
	})
}

func TestOrder_IsEqual(t *testing.T) {
	arrival := time.Now()
	a, err := order.NewOrder("ord-1", "item_A", 1, "P1", arrival)
	require.NoError(t, err)
	b, err := order.NewOrder("ord-1", "item_F", 3, "P2", arrival)
	require.NoError(t, err)
	c, err := order.NewOrder("ord-2", "item_A", 1, "P1", arrival)
	require.NoError(t, err)

	assert.True(t, a.IsEqual(b))
	assert.False(t, a.IsEqual(c))
	assert.False(t, a.IsEqual(nil))
}
