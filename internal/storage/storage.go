// Package storage persists full-state snapshots to a local database. The
// layout is deliberately a key-value blob store: one row per key, the value
// being the JSON the mobile client has always used. There is no schema
// versioning of the payloads; a format change would need explicit migration
// code.
package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/frahmantamala/spendwise-server/internal"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"
)

// Snapshot is one persisted key. Value is JSON text so the same schema works
// on sqlite and postgres.
type Snapshot struct {
	Key       string    `gorm:"primaryKey;column:key"`
	Value     string    `gorm:"column:value;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (Snapshot) TableName() string {
	return "snapshots"
}

// Open connects to the configured database. The sqlite driver auto-migrates
// the snapshots table so a fresh local install needs no setup; postgres
// deployments run `spendwise-server migrate` instead.
func Open(cfg internal.DatabaseConfig) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	}

	var (
		db  *gorm.DB
		err error
	)
	switch cfg.Driver {
	case "postgres":
		db, err = gorm.Open(postgres.Open(cfg.Source), gormCfg)
	default:
		db, err = gorm.Open(sqlite.Open(cfg.Source), gormCfg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if cfg.Driver != "postgres" {
		if err := db.AutoMigrate(&Snapshot{}); err != nil {
			return nil, fmt.Errorf("failed to migrate snapshots table: %w", err)
		}
	}

	return db, nil
}

// SnapshotRepository reads and writes snapshots through GORM.
type SnapshotRepository struct {
	db *gorm.DB
}

func NewSnapshotRepository(db *gorm.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// Get returns the value stored under key, or (nil, nil) when the key has
// never been written. The first run of a fresh install hits that path.
func (r *SnapshotRepository) Get(ctx context.Context, key string) ([]byte, error) {
	var snap Snapshot
	err := r.db.WithContext(ctx).Where("key = ?", key).First(&snap).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read snapshot %s: %w", key, err)
	}
	return []byte(snap.Value), nil
}

// Put stores value under key, replacing whatever was there.
func (r *SnapshotRepository) Put(ctx context.Context, key string, value []byte) error {
	snap := Snapshot{
		Key:       key,
		Value:     string(value),
		UpdatedAt: time.Now(),
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&snap).Error
	if err != nil {
		return fmt.Errorf("failed to write snapshot %s: %w", key, err)
	}
	return nil
}
