package commands

import (
	"errors"
	"strings"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/guard"
)

var (
	ErrSubmitOrderCommandIsNotConstructed = errors.New(
		"SubmitOrderCommand must be created via NewSubmitOrderCommand constructor",
	)
	ErrItemIsRequired    = errors.New("item is required")
	ErrQuantityIsInvalid = errors.New("quantity must be greater than 0")
	ErrStationIsInvalid  = errors.New("pack station must reference a numbered station")
)

// SubmitOrderCommand represents a request to accept one customer order into
// the pending queue. Input arrives from untrusted intake surfaces (UDP
// datagrams, HTTP), so the constructor performs full sanitation.
//
// Example:
//
//	cmd, err := NewSubmitOrderCommand("ord-123", "item_A", 10, "P1")
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewSubmitOrderCommandHandler(state)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to submit order: %w", err)
//	}
type SubmitOrderCommand struct { //nolint:recvcheck //using for validation
	orderID  string
	item     kernel.ItemID
	quantity int
	station  kernel.StationID

	guard guard.ConstructorGuard
}

// NewSubmitOrderCommand creates a command to accept a new order.
// A missing order identifier is tolerated and replaced with a generated UUID;
// every other field must be present and well-formed. The pack station accepts
// either a bare number ("1") or a prefixed label ("P1").
func NewSubmitOrderCommand(orderID, item string, quantity int, packStation string) (SubmitOrderCommand, error) {
	orderCommand := SubmitOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderCommand.setOrderID(orderID),
		orderCommand.setItem(item),
		orderCommand.setQuantity(quantity),
		orderCommand.setStation(packStation),
	); err != nil {
		return SubmitOrderCommand{}, err
	}

	return orderCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrSubmitOrderCommandIsNotConstructed if validation fails.
func (c SubmitOrderCommand) Validate() error {
	return c.guard.Validate(ErrSubmitOrderCommandIsNotConstructed)
}

// OrderID returns the order identifier, generated when the intake omitted it.
func (c SubmitOrderCommand) OrderID() string {
	return c.orderID
}

// Item returns the requested item.
func (c SubmitOrderCommand) Item() kernel.ItemID {
	return c.item
}

// Quantity returns the requested quantity in units.
func (c SubmitOrderCommand) Quantity() int {
	return c.quantity
}

// Station returns the normalized pack station identifier.
func (c SubmitOrderCommand) Station() kernel.StationID {
	return c.station
}

func (c *SubmitOrderCommand) setOrderID(orderID string) error {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		orderID = kernel.NewUUID().String()
	}

	c.orderID = orderID
	return nil
}

func (c *SubmitOrderCommand) setItem(item string) error {
	itemID, err := kernel.NewItemID(strings.TrimSpace(item))
	if err != nil {
		return ErrItemIsRequired
	}

	c.item = itemID
	return nil
}

func (c *SubmitOrderCommand) setQuantity(quantity int) error {
	if quantity <= 0 {
		return ErrQuantityIsInvalid
	}

	c.quantity = quantity
	return nil
}

func (c *SubmitOrderCommand) setStation(packStation string) error {
	number := kernel.ExtractNumber(packStation)
	if number <= 0 {
		return ErrStationIsInvalid
	}

	c.station = kernel.StationIDFromNumber(number)
	return nil
}
