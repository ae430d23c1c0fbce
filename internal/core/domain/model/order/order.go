package order

import (
	"errors"
	"time"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/errs"
)

// Domain errors for order operations.
var (
	// ErrOrderIDIsRequired is returned when attempting to create an order without an identifier.
	ErrOrderIDIsRequired = errs.NewValueIsRequiredError("orderID")
	// ErrItemIsRequired is returned when attempting to create an order without an item.
	ErrItemIsRequired = errs.NewValueIsRequiredError("item")
	// ErrStationIsRequired is returned when attempting to create an order without a target station.
	ErrStationIsRequired = errs.NewValueIsRequiredError("packStation")
	// ErrOrderIsNotConstructed is returned when using an Order that bypassed NewOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// Order represents a pick-and-deliver request in the system.
// It is an aggregate root holding the item to pick, the quantity, and the
// packing station the goods must be delivered to.
//
// Business rules:
//   - Order must have a non-empty identifier (intake generates one when the
//     client omits it)
//   - Quantity must be positive
//   - Item and station identifiers must be valid wire identifiers
//   - Arrival records when intake accepted the order; the pending queue is
//     FIFO by arrival except for priority requeues after a stall
type Order struct {
	// id uniquely identifies the order across the system
	id string
	// item is the stock-keeping item requested
	item kernel.ItemID
	// quantity is the number of units requested (positive)
	quantity int
	// station is the packing station the order must be delivered to
	station kernel.StationID
	// arrival is when intake accepted the order
	arrival time.Time
	// isConstructed ensures the order was created via NewOrder
	isConstructed bool
}

// NewOrder creates a new Order with the given parameters.
// This is the only way to create a valid Order instance.
//
// All identifiers must already be validated wire identifiers; quantity must
// be positive. Returns aggregated validation errors when multiple parameters
// are invalid.
func NewOrder(id string, item kernel.ItemID, quantity int, station kernel.StationID, arrival time.Time) (*Order, error) {
	o := &Order{
		arrival:       arrival,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setItem(item),
		o.setQuantity(quantity),
		o.setStation(station),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the Order instance was properly constructed through NewOrder.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// ID returns the order's unique identifier.
func (o *Order) ID() string {
	return o.id
}

// Item returns the requested item.
func (o *Order) Item() kernel.ItemID {
	return o.item
}

// Quantity returns the requested number of units.
func (o *Order) Quantity() int {
	return o.quantity
}

// Station returns the target packing station.
func (o *Order) Station() kernel.StationID {
	return o.station
}

// Arrival returns when intake accepted the order.
func (o *Order) Arrival() time.Time {
	return o.arrival
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id == other.id
}

func (o *Order) setID(id string) error {
	if id == "" {
		return ErrOrderIDIsRequired
	}
	o.id = id
	return nil
}

func (o *Order) setItem(item kernel.ItemID) error {
	if item == "" {
		return ErrItemIsRequired
	}
	o.item = item
	return nil
}

func (o *Order) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsOutOfRangeError("quantity", quantity, 1, int(^uint(0)>>1))
	}
	o.quantity = quantity
	return nil
}

func (o *Order) setStation(station kernel.StationID) error {
	if station == "" {
		return ErrStationIsRequired
	}
	o.station = station
	return nil
}
