// Package dispatchlog persists coordination events with GORM. The archive is
// append-only: every dispatch, restock intent, and stall compensation the
// coordinator emits lands here for offline analysis.
package dispatchlog

import (
	"time"

	"warehouse/internal/core/ports"
)

// DispatchEventDTO represents the database structure for one coordination
// event.
type DispatchEventDTO struct {
	ID         uint      `gorm:"primaryKey;autoIncrement"`
	OccurredAt time.Time `gorm:"type:timestamptz;not null;index"`
	OrderID    string    `gorm:"type:varchar(64);not null;index"`
	RobotID    string    `gorm:"type:varchar(64)"`
	Command    string    `gorm:"type:varchar(32);not null"`
	ShelfID    string    `gorm:"type:varchar(64)"`
	StationID  string    `gorm:"type:varchar(64)"`
	Quantity   int       `gorm:"type:int;not null"`
}

// TableName specifies the database table name for dispatch events.
// Overrides GORM's default naming convention.
func (DispatchEventDTO) TableName() string {
	return "dispatch_events"
}

func fromRecord(record ports.DispatchRecord) DispatchEventDTO {
	return DispatchEventDTO{
		OccurredAt: record.OccurredAt,
		OrderID:    record.OrderID,
		RobotID:    record.RobotID,
		Command:    record.Command,
		ShelfID:    record.ShelfID,
		StationID:  record.StationID,
		Quantity:   record.Quantity,
	}
}

func toRecord(dto DispatchEventDTO) ports.DispatchRecord {
	return ports.DispatchRecord{
		OccurredAt: dto.OccurredAt,
		OrderID:    dto.OrderID,
		RobotID:    dto.RobotID,
		Command:    dto.Command,
		ShelfID:    dto.ShelfID,
		StationID:  dto.StationID,
		Quantity:   dto.Quantity,
	}
}
