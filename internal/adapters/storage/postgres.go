package storage

import (
	"fmt"
	"log/slog"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Options tunes the database connection pool.
type Options struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// Open connects to PostgreSQL and configures the pool. TranslateError is
// enabled so driver-specific failures surface as gorm sentinel errors
// (gorm.ErrDuplicatedKey for unique-index violations), which the
// repositories map onto the domain error taxonomy.
func Open(dsn string, opts Options, logger *slog.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connecting to postgres: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("acquiring sql.DB: %w", err)
	}
	if opts.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(opts.MaxOpenConns)
	}
	if opts.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(opts.MaxIdleConns)
	}
	if opts.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(opts.ConnMaxLifetime)
	}

	if logger != nil {
		logger.Info("connected to postgres",
			slog.Int("max_open_conns", opts.MaxOpenConns),
			slog.Int("max_idle_conns", opts.MaxIdleConns),
		)
	}
	return db, nil
}

// Migrate creates or updates the schema for all persistence models.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&userRow{},
		&listRow{},
		&todoRow{},
	); err != nil {
		return fmt.Errorf("migrating schema: %w", err)
	}
	return nil
}
