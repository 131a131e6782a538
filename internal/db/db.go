package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"kloth-be/internal/config"
	"kloth-be/internal/logger"

	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

const (
	driverName  = "postgres"
	pingTimeout = 5 * time.Second
)

var ErrMissingURL = errors.New("database url is empty")

// NewDatabase opens the catalog database and verifies it answers a ping.
func NewDatabase(ctx context.Context, cfg *config.Config) (*sql.DB, error) {
	return newDatabaseWithDriver(ctx, cfg, driverName)
}

func newDatabaseWithDriver(ctx context.Context, cfg *config.Config, driver string) (*sql.DB, error) {
	if cfg.DBURL == "" {
		return nil, ErrMissingURL
	}

	db, err := sql.Open(driver, cfg.DBURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to DB: %w", err)
	}

	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(5)
	db.SetConnMaxIdleTime(5 * time.Minute)

	if err := Ping(ctx, db); err != nil {
		return db, fmt.Errorf("failed to ping DB: %w", err)
	}

	return db, nil
}

// InitDB connects once at process start. A failed connection is logged and
// not retried; the returned handle stays usable so the process keeps serving
// and queries succeed once the database becomes reachable.
func InitDB(ctx context.Context, cfg *config.Config) *sql.DB {
	return initWithDriver(ctx, cfg, driverName)
}

func initWithDriver(ctx context.Context, cfg *config.Config, driver string) *sql.DB {
	log := logger.FromCtx(ctx)

	db, err := newDatabaseWithDriver(ctx, cfg, driver)
	if err != nil {
		log.Error("Error in database connection", zap.Error(err))
		if db == nil {
			// sql.Open only fails for an unknown driver; keep a lazy handle anyway.
			db, _ = sql.Open(driverName, cfg.DBURL)
		}
		return db
	}

	log.Info("Database connection established")
	return db
}

// Ping checks reachability with a bounded timeout.
func Ping(ctx context.Context, db *sql.DB) error {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	return db.PingContext(ctx)
}
