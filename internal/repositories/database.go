package repositories

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"stash/internal/config"
)

// Open connects to the datastore selected by the config's database kind and
// returns the shared connection pool.
func Open(cfg config.Config) (*gorm.DB, error) {
	switch cfg.Database {
	case "sqlite":
		db, err := gorm.Open(sqlite.Open(cfg.DatabasePath), &gorm.Config{})
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite database at %s: %w", cfg.DatabasePath, err)
		}
		return db, nil
	case "postgres":
		dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
			cfg.DatabaseHost, cfg.DatabasePort, cfg.DatabaseUser, cfg.DatabasePass, cfg.DatabaseName)
		db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
		if err != nil {
			return nil, fmt.Errorf("failed to connect to postgres at %s:%d: %w", cfg.DatabaseHost, cfg.DatabasePort, err)
		}
		return db, nil
	default:
		return nil, fmt.Errorf("'%s' is not a valid database type (valid options: sqlite, postgres)", cfg.Database)
	}
}

// PartitionPrefix returns the partition name prefix for the current run.
// Test runs write to isolated test_ partitions.
func PartitionPrefix(cfg config.Config) string {
	if cfg.Testing {
		return "test_"
	}
	return ""
}

// Migrate creates every partition: one per category, plus api_keys and logs.
func Migrate(db *gorm.DB, prefix string) error {
	if err := MigratePartitions(db, prefix); err != nil {
		return err
	}
	if err := MigrateApiKeys(db, prefix); err != nil {
		return fmt.Errorf("failed to migrate api_keys: %w", err)
	}
	if err := MigrateLogs(db, prefix); err != nil {
		return fmt.Errorf("failed to migrate access_logs: %w", err)
	}
	return nil
}
