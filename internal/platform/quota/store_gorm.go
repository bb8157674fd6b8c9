package quota

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UsageModel is the GORM model for the describer_usage table.
type UsageModel struct {
	Day       string    `gorm:"primaryKey;size:10"`
	Requests  int64     `gorm:"not null;default:0"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM.
func (UsageModel) TableName() string {
	return "describer_usage"
}

// GormUsageStore implements UsageStore on a SQL database through GORM.
type GormUsageStore struct {
	db *gorm.DB
}

var _ UsageStore = (*GormUsageStore)(nil)

// NewGormUsageStore creates a new GormUsageStore instance.
func NewGormUsageStore(db *gorm.DB) *GormUsageStore {
	return &GormUsageStore{db: db}
}

// Increment adds one request to the day's row (creating it when absent) and returns the new total.
// Rows are kept as history, so ttl is ignored.
func (s *GormUsageStore) Increment(ctx context.Context, day string, _ time.Duration) (int64, error) {
	var out UsageModel
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		row := UsageModel{Day: day, Requests: 1, UpdatedAt: now}
		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "day"}},
			DoUpdates: clause.Assignments(map[string]any{
				"requests":   gorm.Expr("describer_usage.requests + 1"),
				"updated_at": now,
			}),
		}).Create(&row).Error; err != nil {
			return err
		}
		return tx.First(&out, "day = ?", day).Error
	})
	if err != nil {
		return 0, fmt.Errorf("failed to increment usage: %w", err)
	}
	return out.Requests, nil
}
