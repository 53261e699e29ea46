// Package store opens and manages the GORM database handle shared by the
// user store and the quotes repository.
package store

import (
	"context"
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/skillsenselab/quotes/internal/logger"
)

// Config holds database configuration.
type Config struct {
	// DSN is the sqlite data source name (file path or ":memory:").
	DSN string `yaml:"dsn" mapstructure:"dsn"`
	// MaxOpenConns caps open connections (default: 10).
	MaxOpenConns int `yaml:"max_open_conns" mapstructure:"max_open_conns"`
	// MaxIdleConns caps idle connections (default: 5).
	MaxIdleConns int `yaml:"max_idle_conns" mapstructure:"max_idle_conns"`
	// LogLevel is the GORM log level (silent, error, warn, info).
	LogLevel string `yaml:"log_level" mapstructure:"log_level"`
}

// ApplyDefaults sets sensible defaults for zero-valued fields.
func (c *Config) ApplyDefaults() {
	if c.DSN == "" {
		c.DSN = "quotes.db"
	}
	if c.MaxOpenConns == 0 {
		c.MaxOpenConns = 10
	}
	if c.MaxIdleConns == 0 {
		c.MaxIdleConns = 5
	}
	if c.LogLevel == "" {
		c.LogLevel = "warn"
	}
}

// DB wraps the GORM handle.
type DB struct {
	Gorm *gorm.DB
	log  *logger.Logger
}

// Open connects to the database and verifies the connection with a ping.
func Open(ctx context.Context, cfg Config, log *logger.Logger) (*DB, error) {
	cfg.ApplyDefaults()
	log = log.WithComponent("store")

	db, err := gorm.Open(sqlite.Open(cfg.DSN), &gorm.Config{
		Logger: gormlogger.Default.LogMode(parseLogLevel(cfg.LogLevel)),
	})
	if err != nil {
		return nil, fmt.Errorf("store: open: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("store: underlying sql.DB: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("store: ping: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Hour)

	log.Info("Database connection established", map[string]interface{}{"dsn": cfg.DSN})
	return &DB{Gorm: db, log: log}, nil
}

// AutoMigrate runs GORM auto-migration for the given models.
func (d *DB) AutoMigrate(models ...any) error {
	if err := d.Gorm.AutoMigrate(models...); err != nil {
		return fmt.Errorf("store: migrate: %w", err)
	}
	return nil
}

// Close closes the underlying connection pool.
func (d *DB) Close() error {
	sqlDB, err := d.Gorm.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func parseLogLevel(level string) gormlogger.LogLevel {
	switch level {
	case "silent":
		return gormlogger.Silent
	case "info":
		return gormlogger.Info
	case "error":
		return gormlogger.Error
	default:
		return gormlogger.Warn
	}
}
