package storage

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/plugin/opentelemetry/tracing"

	"github.com/lcalzada-xor/airsentry/internal/core/domain"
)

// SnapshotModel is the GORM model for one scan cycle.
type SnapshotModel struct {
	ID           uint               `gorm:"primaryKey"`
	Timestamp    time.Time          `gorm:"index"`
	Observations []ObservationModel `gorm:"foreignKey:SnapshotID;constraint:OnDelete:CASCADE"`
}

// ObservationModel is the GORM model for one access point sighting.
type ObservationModel struct {
	ID           uint   `gorm:"primaryKey"`
	SnapshotID   uint   `gorm:"index"`
	SSID         string
	BSSID        string `gorm:"index"`
	Security     string
	RSSI         int
	Frequency    int
	Capabilities string
	WPS          bool
}

// SQLiteHistoryStore implements ports.HistoryStore using GORM and SQLite.
// It owns retention: snapshots beyond the configured limit are trimmed on
// every write.
type SQLiteHistoryStore struct {
	db        *gorm.DB
	retention int
}

// NewSQLiteHistoryStore initializes the database and migrates the schema.
// retention is the maximum number of snapshots kept; 0 keeps everything.
func NewSQLiteHistoryStore(path string, retention int) (*SQLiteHistoryStore, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Use(tracing.NewPlugin(tracing.WithoutMetrics())); err != nil {
		slog.Warn("gorm tracing plugin not installed", "error", err)
	}

	if err := db.AutoMigrate(&SnapshotModel{}, &ObservationModel{}); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	return &SQLiteHistoryStore{db: db, retention: retention}, nil
}

// RecordSnapshot persists one cycle's snapshot and trims old history.
func (s *SQLiteHistoryStore) RecordSnapshot(ctx context.Context, snap domain.ScanSnapshot) error {
	model := toSnapshotModel(snap)
	if err := s.db.WithContext(ctx).Create(&model).Error; err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	return s.trim(ctx)
}

// History returns up to maxRecords snapshots, oldest to newest.
func (s *SQLiteHistoryStore) History(ctx context.Context, maxRecords int) (domain.HistoryWindow, error) {
	var models []SnapshotModel
	query := s.db.WithContext(ctx).
		Preload("Observations").
		Order("timestamp desc")
	if maxRecords > 0 {
		query = query.Limit(maxRecords)
	}
	if err := query.Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}

	// Query is newest-first for the limit; callers get oldest-first.
	window := make(domain.HistoryWindow, 0, len(models))
	for i := len(models) - 1; i >= 0; i-- {
		window = append(window, toSnapshot(models[i]))
	}
	return window, nil
}

// trim deletes snapshots beyond the retention limit, oldest first.
func (s *SQLiteHistoryStore) trim(ctx context.Context) error {
	if s.retention <= 0 {
		return nil
	}

	var ids []uint
	err := s.db.WithContext(ctx).
		Model(&SnapshotModel{}).
		Order("timestamp desc").
		Pluck("id", &ids).Error
	if err != nil {
		return fmt.Errorf("failed to list snapshots: %w", err)
	}
	if len(ids) <= s.retention {
		return nil
	}
	stale := ids[s.retention:]

	if err := s.db.WithContext(ctx).Where("snapshot_id IN ?", stale).Delete(&ObservationModel{}).Error; err != nil {
		return fmt.Errorf("failed to trim observations: %w", err)
	}
	if err := s.db.WithContext(ctx).Where("id IN ?", stale).Delete(&SnapshotModel{}).Error; err != nil {
		return fmt.Errorf("failed to trim snapshots: %w", err)
	}
	return nil
}
