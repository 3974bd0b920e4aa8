// Package state provides the persistence layer for builder customization
// state: a keyed-blob store per template instance, backed by SQLite (or a
// libsql remote) with an in-memory implementation for tests and fallback.
package state

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/AtRiskMedia/microsite-go/internal/infrastructure/observability/logging"
	_ "github.com/mattn/go-sqlite3"
	_ "github.com/tursodatabase/libsql-client-go/libsql"
)

// NewConnection establishes a database connection for the specified driver.
// Supported drivers: sqlite3 (local file) and libsql (remote Turso).
func NewConnection(driverName, dataSourceName string, logger *logging.ChanneledLogger) (*sql.DB, error) {
	start := time.Now()

	db, err := sql.Open(driverName, dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", driverName, err)
	}

	if err = db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	if logger != nil {
		logger.Storage().Info("Database connection established",
			"driverName", driverName, "duration", time.Since(start))
	}
	return db, nil
}
