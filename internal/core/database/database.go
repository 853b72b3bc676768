package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"shipment-tracker/internal/core/config"
	"shipment-tracker/internal/core/logger"

	"github.com/lib/pq"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

const (
	// DriverSQLite selects the embedded modernc.org/sqlite driver.
	DriverSQLite = "sqlite"
	// DriverPostgres selects the lib/pq driver.
	DriverPostgres = "postgres"
)

// ErrUnsupportedDriver is returned by Open for drivers other than sqlite and postgres.
var ErrUnsupportedDriver = errors.New("unsupported database driver")

var sqlitePragmas = []string{
	"PRAGMA journal_mode=WAL",
	"PRAGMA foreign_keys = ON",
	"PRAGMA busy_timeout = 5000",
}

// DB wraps a *sql.DB with the dialect details repositories need.
type DB struct {
	*sql.DB
	driver string
}

// Open connects to the configured database and verifies the connection.
func Open(ctx context.Context, cfg config.DatabaseConfig) (*DB, error) {
	driver := strings.ToLower(cfg.Driver)
	if driver != DriverSQLite && driver != DriverPostgres {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedDriver, cfg.Driver)
	}

	db, err := sql.Open(driver, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("open %s db: %w", driver, err)
	}

	if driver == DriverSQLite {
		// A single connection keeps in-memory databases shared and serializes writers.
		db.SetMaxOpenConns(1)
		for _, pragma := range sqlitePragmas {
			if _, execErr := db.ExecContext(ctx, pragma); execErr != nil {
				_ = db.Close()
				return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
			}
		}
	} else {
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(30 * time.Minute)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s db: %w", driver, err)
	}

	logger.Get().Info("Database connected", zap.String("driver", driver))

	return &DB{DB: db, driver: driver}, nil
}

// Driver returns the driver name the database was opened with.
func (d *DB) Driver() string {
	return d.driver
}

// Rebind rewrites ? placeholders into the driver's positional syntax.
func (d *DB) Rebind(query string) string {
	if d.driver != DriverPostgres {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// IsUniqueViolation reports whether err comes from a unique constraint.
func (d *DB) IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
