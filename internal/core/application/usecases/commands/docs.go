// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: construction-time validation of
// input, then a handler that mutates the fleet state and emits bus messages
// and archive records for the resulting effects.
package commands
