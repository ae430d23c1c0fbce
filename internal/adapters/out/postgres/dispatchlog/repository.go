package dispatchlog

import (
	"context"

	"gorm.io/gorm"

	"warehouse/internal/core/ports"
)

// GormDispatchArchive implements ports.DispatchArchive using GORM.
type GormDispatchArchive struct {
	db *gorm.DB
}

// NewGormDispatchArchive creates a new GORM dispatch archive.
func NewGormDispatchArchive(db *gorm.DB) *GormDispatchArchive {
	return &GormDispatchArchive{db: db}
}

// Append stores one coordination event.
func (r *GormDispatchArchive) Append(ctx context.Context, record ports.DispatchRecord) error {
	dto := fromRecord(record)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Recent returns up to limit events, newest first.
func (r *GormDispatchArchive) Recent(ctx context.Context, limit int) ([]ports.DispatchRecord, error) {
	var dtos []DispatchEventDTO
	err := r.db.WithContext(ctx).
		Order("occurred_at DESC, id DESC").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	records := make([]ports.DispatchRecord, 0, len(dtos))
	for _, dto := range dtos {
		records = append(records, toRecord(dto))
	}
	return records, nil
}
