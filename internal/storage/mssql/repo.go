// Package mssql implements a Microsoft SQL Server repository on the shared
// database/sql engine. SQL Server has no INSERT IGNORE, so inserts that may
// collide are attempted and unique-key violations (2627, 2601) swallowed;
// generated ids come back through OUTPUT INSERTED.
package mssql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	mssql "github.com/microsoft/go-mssqldb"
	"github.com/microsoft/go-mssqldb/msdsn"

	mssqlddl "ordersnf/internal/storage/mssql/ddl"
	"ordersnf/internal/storage/sqldb"
)

// Config holds MSSQL repository configuration.
type Config struct {
	DSN string
}

// Repository is an MSSQL-backed implementation of storage.Repository.
type Repository struct {
	*sqldb.Store
	cfg Config
}

const (
	errUniqueConstraint = 2627
	errUniqueIndex      = 2601
)

// Flavor is the SQL flavour the shared engine uses for SQL Server.
var Flavor = sqldb.Flavor{
	Name:              "mssql",
	Dialect:           mssqlddl.Dialect{},
	Placeholder:       func(n int) string { return fmt.Sprintf("@p%d", n) },
	IsUniqueViolation: isUniqueViolation,
	OutputInserted:    true,
}

// NewRepository constructs a Repository and returns a Close function for cleanup.
func NewRepository(ctx context.Context, cfg Config) (*Repository, func(), error) {
	// Validate DSN early to fail fast on obvious mistakes.
	if _, err := msdsn.Parse(cfg.DSN); err != nil {
		return nil, nil, fmt.Errorf("mssql: dsn: %w", err)
	}
	db, err := sql.Open("sqlserver", cfg.DSN)
	if err != nil {
		return nil, nil, fmt.Errorf("mssql: open: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("mssql: ping: %w", err)
	}
	close := func() { _ = db.Close() }
	return &Repository{Store: sqldb.NewStore(db, Flavor), cfg: cfg}, close, nil
}

func isUniqueViolation(err error) bool {
	var me mssql.Error
	if !errors.As(err, &me) {
		return false
	}
	return me.Number == errUniqueConstraint || me.Number == errUniqueIndex
}
