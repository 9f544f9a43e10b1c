package sqlstore

import (
	"context"
	"fmt"
	"strings"

	"lifeos/internal/config"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// SQLiteDriverName is the database/sql name registered by the sqlite driver
const SQLiteDriverName = "sqlite3"

// Open connects to the configured database and verifies the connection
func Open(ctx context.Context, cfg config.DatabaseConfig) (*sqlx.DB, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		db, err := sqlx.ConnectContext(ctx, "postgres", cfg.URL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
		return db, nil
	case config.DriverSQLite, "":
		db, err := sqlx.Open(SQLiteDriverName, sqliteDSN(cfg.URL))
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite database: %w", err)
		}
		// sqlite serializes writers; one connection also keeps :memory: databases alive
		db.SetMaxOpenConns(1)
		if err := db.PingContext(ctx); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to ping sqlite database: %w", err)
		}
		return db, nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

func sqliteDSN(url string) string {
	if url == ":memory:" || strings.HasPrefix(url, "file:") {
		return url
	}
	return "file:" + url + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(wal)"
}
