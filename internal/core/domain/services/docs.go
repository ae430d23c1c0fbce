// Package services provides domain services that orchestrate business operations
// across multiple domain entities in the fleet coordination system. It implements
// logic that doesn't naturally belong to a single aggregate root.
//
// The package includes:
//   - RandomRobotSelector: a domain service choosing which free robot receives a task
//
// Domain services coordinate between aggregates, implementing business logic that
// spans multiple bounded contexts following Domain-Driven Design principles.
package services
