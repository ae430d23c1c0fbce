package commands

import (
	"errors"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/guard"
)

var (
	ErrUpdateRobotStatusCommandIsNotConstructed = errors.New(
		"UpdateRobotStatusCommand must be created via NewUpdateRobotStatusCommand constructor",
	)
	ErrStatusIsRequired = errors.New("status is required")
)

// UpdateRobotStatusCommand carries one normalized robot status report into
// the coordinator's world state.
type UpdateRobotStatusCommand struct { //nolint:recvcheck //using for validation
	robotID  kernel.RobotID
	status   string
	location string
	battery  int

	guard guard.ConstructorGuard
}

// NewUpdateRobotStatusCommand creates a command from one status report.
// The location may be empty (a degraded report still updates the mirror);
// the robot identifier and status may not.
func NewUpdateRobotStatusCommand(robotID, status, location string, battery int) (UpdateRobotStatusCommand, error) {
	command := UpdateRobotStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setRobotID(robotID),
		command.setStatus(status),
		command.setLocationAndBattery(location, battery),
	); err != nil {
		return UpdateRobotStatusCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrUpdateRobotStatusCommandIsNotConstructed if validation fails.
func (c UpdateRobotStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateRobotStatusCommandIsNotConstructed)
}

// RobotID returns the reporting robot's identifier.
func (c UpdateRobotStatusCommand) RobotID() kernel.RobotID {
	return c.robotID
}

// Status returns the reported status name.
func (c UpdateRobotStatusCommand) Status() string {
	return c.status
}

// Location returns the reported location label.
func (c UpdateRobotStatusCommand) Location() string {
	return c.location
}

// Battery returns the reported battery percentage.
func (c UpdateRobotStatusCommand) Battery() int {
	return c.battery
}

func (c *UpdateRobotStatusCommand) setRobotID(robotID string) error {
	id, err := kernel.NewRobotID(robotID)
	if err != nil {
		return err
	}

	c.robotID = id
	return nil
}

func (c *UpdateRobotStatusCommand) setStatus(status string) error {
	if status == "" {
		return ErrStatusIsRequired
	}

	c.status = status
	return nil
}

func (c *UpdateRobotStatusCommand) setLocationAndBattery(location string, battery int) error {
	c.location = location
	c.battery = battery
	return nil
}
