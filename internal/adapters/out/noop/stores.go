// Package noop provides no-op implementations of the archival store ports
// for hermetic runs without a database. The simulation's behavior does not
// depend on archiving; these keep the wiring uniform.
package noop

import (
	"context"

	"warehouse/internal/core/ports"
)

// DispatchArchive discards every record.
type DispatchArchive struct{}

// Append discards the record.
func (DispatchArchive) Append(context.Context, ports.DispatchRecord) error { return nil }

// Recent always returns an empty log.
func (DispatchArchive) Recent(context.Context, int) ([]ports.DispatchRecord, error) {
	return []ports.DispatchRecord{}, nil
}

// TelemetryStore discards every sample.
type TelemetryStore struct{}

// Append discards the sample.
func (TelemetryStore) Append(context.Context, ports.TelemetryRecord) error { return nil }
