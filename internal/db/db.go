package db

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/Yasser-Essafi/SRM/internal/config"
)

// New opens the postgres connection, applies the pool settings and runs the
// idempotent migrations.
func New(cfg *config.Config, log zerolog.Logger) (*gorm.DB, error) {
	gormLogLevel := gormlogger.Silent
	if cfg.Environment == "development" {
		gormLogLevel = gormlogger.Warn
	}

	database, err := gorm.Open(postgres.Open(cfg.Store.DSN), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormLogLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	sqlDB, err := database.DB()
	if err != nil {
		return nil, fmt.Errorf("access sql pool: %w", err)
	}
	if cfg.Store.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.Store.MaxOpenConns)
	}
	if cfg.Store.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.Store.MaxIdleConns)
	}
	if cfg.Store.ConnMaxLifetime != "" {
		lifetime, err := time.ParseDuration(cfg.Store.ConnMaxLifetime)
		if err != nil {
			return nil, fmt.Errorf("parse DB_CONN_MAX_LIFETIME: %w", err)
		}
		sqlDB.SetConnMaxLifetime(lifetime)
	}

	if err := runMigrations(database); err != nil {
		return nil, err
	}
	log.Info().Msg("database migrations applied")

	return database, nil
}
