package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"ordersnf/internal/storage/sqldb"
	sqliteddl "ordersnf/internal/storage/sqlite/ddl"
)

// Repository is a SQLite-backed implementation of storage.Repository.
// Inserts that may collide use INSERT OR IGNORE; generated ids come from
// LastInsertId.
type Repository struct {
	*sqldb.Store
	cfg Config
}

// Flavor is the SQL flavour the shared engine uses for SQLite.
var Flavor = sqldb.Flavor{
	Name:         "sqlite",
	Dialect:      sqliteddl.Dialect{},
	Placeholder:  sqldb.QuestionMark,
	IgnoreInsert: "INSERT OR IGNORE",
}

// NewRepository opens a SQLite connection using the provided DSN and returns
// a Repository plus a Close function for cleanup.
//
// With cfg.Fresh set, the database file is deleted first; a missing file is
// not an error.
func NewRepository(ctx context.Context, cfg Config) (*Repository, func(), error) {
	if strings.TrimSpace(cfg.DSN) == "" {
		return nil, nil, fmt.Errorf("sqlite: DSN must not be empty")
	}

	if path, ok := filePath(cfg.DSN); ok && cfg.Fresh {
		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, nil, fmt.Errorf("sqlite: remove %s: %w", path, err)
		}
	}

	db, err := sql.Open("sqlite", cfg.DSN)
	if err != nil {
		return nil, nil, fmt.Errorf("sqlite: open: %w", err)
	}
	// One connection keeps :memory: databases and the foreign_keys pragma
	// bound to the same session.
	db.SetMaxOpenConns(1)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("sqlite: ping: %w", err)
	}

	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON;"); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("sqlite: enable foreign keys: %w", err)
	}

	closeFn := func() { db.Close() }
	return &Repository{Store: sqldb.NewStore(db, Flavor), cfg: cfg}, closeFn, nil
}
