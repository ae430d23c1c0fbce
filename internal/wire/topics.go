package wire

import "fmt"

// Topic patterns, keyed by the deployment group identifier.
//
// Raw telemetry flows on the warehouse/{g}/... hierarchy; the gateway
// republishes normalized payloads on the {g}/internal/... hierarchy consumed
// by the coordinator.

// RobotStatusTopic is where a robot publishes its raw status every tick.
func RobotStatusTopic(group, robotID string) string {
	return fmt.Sprintf("warehouse/%s/amr/%s/status", group, robotID)
}

// RobotCommandTopic carries the 3-byte binary commands for one robot.
func RobotCommandTopic(group, robotID string) string {
	return fmt.Sprintf("warehouse/%s/amr/%s/command", group, robotID)
}

// ShelfStatusTopic is where a shelf sensor publishes its raw status.
func ShelfStatusTopic(group, zone, shelfID string) string {
	return fmt.Sprintf("warehouse/%s/locations/%s/%s/status", group, zone, shelfID)
}

// InternalRobotStatusTopic carries gateway-normalized robot status.
func InternalRobotStatusTopic(group, robotID string) string {
	return fmt.Sprintf("%s/internal/amr/%s/status", group, robotID)
}

// InternalRobotStatusFilter subscribes to normalized status of every robot.
func InternalRobotStatusFilter(group string) string {
	return fmt.Sprintf("%s/internal/amr/+/status", group)
}

// InternalShelfStatusTopic carries gateway-normalized shelf status.
func InternalShelfStatusTopic(group, shelfID string) string {
	return fmt.Sprintf("%s/internal/static/%s/status", group, shelfID)
}

// InternalShelfStatusFilter subscribes to normalized status of every shelf.
func InternalShelfStatusFilter(group string) string {
	return fmt.Sprintf("%s/internal/static/+/status", group)
}

// DispatchTopic carries dispatch and restock intents between the coordinator,
// the shelves, and the gateway.
func DispatchTopic(group string) string {
	return fmt.Sprintf("%s/internal/tasks/dispatch", group)
}

// RawTelemetryFilter subscribes the gateway to the entire raw hierarchy of a
// group.
func RawTelemetryFilter(group string) string {
	return fmt.Sprintf("warehouse/%s/#", group)
}
