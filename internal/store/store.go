// Package store persists institutions, holdings and trade disclosures through
// gorm. SQLite (WAL, foreign keys on) is the default engine; PostgreSQL is
// supported through the same code paths.
package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/jaideeprtx/nj-trades/internal/config"
	"github.com/jaideeprtx/nj-trades/pkg/models"
)

// ErrNotFound is returned when a lookup by external identifier matches nothing.
var ErrNotFound = errors.New("not found")

// Store is the single owner of persistence.
type Store struct {
	db  *gorm.DB
	log *zap.Logger
	now func() time.Time
}

// Open connects to the configured database, migrates the schema and creates
// the natural-key indexes used for deduplication.
func Open(cfg config.DatabaseConfig, log *zap.Logger) (*Store, error) {
	dialector, err := dialectorFor(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:  logger.Default.LogMode(logger.Silent),
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
		sqlDB.SetMaxIdleConns(cfg.MaxOpenConns)
	}
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	if err := db.AutoMigrate(&models.Institution{}, &models.Holding{}, &models.CongressTrade{}, &models.InsiderTrade{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	if err := createNaturalKeys(db); err != nil {
		return nil, err
	}

	log.Info("database ready", zap.String("driver", cfg.Driver), zap.String("path", cfg.Path))
	return &Store{db: db, log: log, now: time.Now}, nil
}

func dialectorFor(cfg config.DatabaseConfig) (gorm.Dialector, error) {
	switch cfg.Driver {
	case "sqlite", "":
		if dir := filepath.Dir(cfg.Path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create database directory: %w", err)
			}
		}
		dsn := cfg.Path + "?_journal_mode=WAL&_foreign_keys=on&_busy_timeout=5000"
		return sqlite.Open(dsn), nil
	case "postgres":
		return postgres.Open(cfg.DSN), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// createNaturalKeys adds the unique indexes over the full inserted column
// tuple of each trade table. Nullable columns are coalesced so that a missing
// ticker or price still takes part in the key.
func createNaturalKeys(db *gorm.DB) error {
	stmts := []string{
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_congress_natural_key ON congress_trades (
			member, chamber, party, state, COALESCE(ticker, ''), asset_description,
			transaction_type, amount_range, transaction_date, disclosure_date)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_insider_natural_key ON insider_trades (
			ticker, company_name, insider_name, insider_title, transaction_type, shares,
			COALESCE(price_per_share, -1), COALESCE(total_value, -1),
			transaction_date, filing_date, filing_url)`,
	}
	for _, stmt := range stmts {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("failed to create natural key index: %w", err)
		}
	}
	return nil
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Ping verifies the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
