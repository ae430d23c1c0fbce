package telemetry

import (
	"context"

	"gorm.io/gorm"

	"warehouse/internal/core/ports"
)

// GormTelemetryStore implements ports.TelemetryStore using GORM.
type GormTelemetryStore struct {
	db *gorm.DB
}

// NewGormTelemetryStore creates a new GORM telemetry store.
func NewGormTelemetryStore(db *gorm.DB) *GormTelemetryStore {
	return &GormTelemetryStore{db: db}
}

// Append stores one sample.
func (s *GormTelemetryStore) Append(ctx context.Context, record ports.TelemetryRecord) error {
	dto := fromRecord(record)
	return s.db.WithContext(ctx).Create(&dto).Error
}
