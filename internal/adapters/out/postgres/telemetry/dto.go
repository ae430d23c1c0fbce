// Package telemetry archives the normalized status samples the gateway
// relays from robots and shelf sensors. Samples are write-only from the
// application's point of view; analysis happens out of band.
package telemetry

import (
	"time"

	"warehouse/internal/core/ports"
)

// SampleDTO represents the database structure for one telemetry sample.
type SampleDTO struct {
	ID         uint      `gorm:"primaryKey;autoIncrement"`
	ObservedAt time.Time `gorm:"type:timestamptz;not null;index"`
	AssetID    string    `gorm:"type:varchar(64);not null;index"`
	AssetType  string    `gorm:"type:varchar(16);not null"`
	Location   string    `gorm:"type:varchar(64)"`
	Battery    int       `gorm:"type:int"`
	Status     string    `gorm:"type:varchar(32)"`
	ItemID     string    `gorm:"type:varchar(64)"`
	Stock      float64   `gorm:"type:double precision"`
	Unit       string    `gorm:"type:varchar(16)"`
}

// TableName specifies the database table name for telemetry samples.
// Overrides GORM's default naming convention.
func (SampleDTO) TableName() string {
	return "telemetry_samples"
}

func fromRecord(record ports.TelemetryRecord) SampleDTO {
	return SampleDTO{
		ObservedAt: record.ObservedAt,
		AssetID:    record.AssetID,
		AssetType:  record.AssetType,
		Location:   record.Location,
		Battery:    record.Battery,
		Status:     record.Status,
		ItemID:     record.ItemID,
		Stock:      record.Stock,
		Unit:       record.Unit,
	}
}
