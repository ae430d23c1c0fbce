package commands

import (
	"errors"

	"warehouse/internal/pkg/guard"
)

var ErrProcessOrdersCommandIsNotConstructed = errors.New(
	"ProcessOrdersCommand must be created via NewProcessOrdersCommand constructor",
)

// ProcessOrdersCommand triggers one matching pass over the pending order
// queue. This batch operation assigns free robots to matchable orders and
// publishes the resulting dispatch intents.
//
// Example:
//
//	cmd := NewProcessOrdersCommand()
//	handler := NewProcessOrdersCommandHandler(state, selector, bus, archive, "site-a")
//
//	// Run periodically from the coordinator job
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    log.Printf("matching pass failed: %v", err)
//	}
type ProcessOrdersCommand struct {
	guard guard.ConstructorGuard
}

// NewProcessOrdersCommand creates a command to trigger one matching pass.
// This is a parameterless command that processes the whole pending queue.
func NewProcessOrdersCommand() ProcessOrdersCommand {
	command := ProcessOrdersCommand{
		guard: guard.NewConstructorGuard(),
	}

	return command
}

// Validate ensures the command was created through the constructor.
// Returns ErrProcessOrdersCommandIsNotConstructed if validation fails.
func (c *ProcessOrdersCommand) Validate() error {
	return c.guard.Validate(ErrProcessOrdersCommandIsNotConstructed)
}
