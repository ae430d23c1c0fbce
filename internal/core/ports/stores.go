package ports

import (
	"context"
	"time"
)

// DispatchRecord is one archived coordination event: a task dispatch, a
// restock intent, or a stall compensation.
type DispatchRecord struct {
	OccurredAt time.Time
	OrderID    string
	RobotID    string
	Command    string
	ShelfID    string
	StationID  string
	Quantity   int
}

// DispatchArchive persists coordination events for offline analysis.
// The archive is write-mostly; reads serve the operator API.
type DispatchArchive interface {
	// Append stores one record.
	Append(ctx context.Context, record DispatchRecord) error

	// Recent returns up to limit records, newest first.
	Recent(ctx context.Context, limit int) ([]DispatchRecord, error)
}

// TelemetryRecord is one normalized status sample relayed by the gateway.
type TelemetryRecord struct {
	ObservedAt time.Time
	AssetID    string
	AssetType  string
	Location   string
	Battery    int
	Status     string
	ItemID     string
	Stock      float64
	Unit       string
}

// TelemetryStore archives normalized telemetry samples.
type TelemetryStore interface {
	// Append stores one sample.
	Append(ctx context.Context, record TelemetryRecord) error
}
