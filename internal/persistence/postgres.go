package persistence

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/acework2u/ai-smart-plants/internal/config"
)

// Snapshot is one named store blob, upserted in place on every save.
type Snapshot struct {
	gorm.Model
	Name string `gorm:"uniqueIndex"`
	Data []byte
}

// PostgresStore persists snapshots in a single Postgres table.
type PostgresStore struct {
	db *gorm.DB
}

// NewPostgresStore connects and migrates the snapshot schema.
func NewPostgresStore(cfg config.DBConfig) (*PostgresStore, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(&Snapshot{}); err != nil {
		return nil, fmt.Errorf("failed to auto-migrate database: %w", err)
	}

	return &PostgresStore{db: db}, nil
}

// SaveSnapshot upserts the blob by snapshot name.
func (s *PostgresStore) SaveSnapshot(ctx context.Context, name string, blob []byte) error {
	snapshot := Snapshot{Name: name, Data: blob}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
		}).
		Create(&snapshot).Error
	if err != nil {
		return fmt.Errorf("failed to save snapshot %q: %w", name, err)
	}
	return nil
}

// LoadSnapshot returns the blob stored under name, if any.
func (s *PostgresStore) LoadSnapshot(ctx context.Context, name string) ([]byte, bool, error) {
	var snapshot Snapshot
	err := s.db.WithContext(ctx).Where("name = ?", name).First(&snapshot).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to load snapshot %q: %w", name, err)
	}
	return snapshot.Data, true, nil
}
