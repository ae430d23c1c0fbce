package commands

import (
	"errors"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/guard"
)

var (
	ErrUpdateShelfStatusCommandIsNotConstructed = errors.New(
		"UpdateShelfStatusCommand must be created via NewUpdateShelfStatusCommand constructor",
	)
	ErrStockIsInvalid = errors.New("stock must not be negative")
)

// UpdateShelfStatusCommand carries one normalized shelf status report into
// the coordinator's read mirror.
type UpdateShelfStatusCommand struct { //nolint:recvcheck //using for validation
	shelfID kernel.ShelfID
	item    kernel.ItemID
	stock   float64
	unit    string

	guard guard.ConstructorGuard
}

// NewUpdateShelfStatusCommand creates a command from one shelf report.
func NewUpdateShelfStatusCommand(shelfID, item string, stock float64, unit string) (UpdateShelfStatusCommand, error) {
	command := UpdateShelfStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setShelfID(shelfID),
		command.setItem(item),
		command.setStock(stock),
		command.setUnit(unit),
	); err != nil {
		return UpdateShelfStatusCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrUpdateShelfStatusCommandIsNotConstructed if validation fails.
func (c UpdateShelfStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateShelfStatusCommandIsNotConstructed)
}

// ShelfID returns the reporting shelf's identifier.
func (c UpdateShelfStatusCommand) ShelfID() kernel.ShelfID {
	return c.shelfID
}

// Item returns the item the shelf carries.
func (c UpdateShelfStatusCommand) Item() kernel.ItemID {
	return c.item
}

// Stock returns the reported stock level.
func (c UpdateShelfStatusCommand) Stock() float64 {
	return c.stock
}

// Unit returns the unit of the reported stock level.
func (c UpdateShelfStatusCommand) Unit() string {
	return c.unit
}

func (c *UpdateShelfStatusCommand) setShelfID(shelfID string) error {
	id, err := kernel.NewShelfID(shelfID)
	if err != nil {
		return err
	}

	c.shelfID = id
	return nil
}

func (c *UpdateShelfStatusCommand) setItem(item string) error {
	id, err := kernel.NewItemID(item)
	if err != nil {
		return err
	}

	c.item = id
	return nil
}

func (c *UpdateShelfStatusCommand) setStock(stock float64) error {
	if stock < 0 {
		return ErrStockIsInvalid
	}

	c.stock = stock
	return nil
}

func (c *UpdateShelfStatusCommand) setUnit(unit string) error {
	c.unit = unit
	return nil
}
