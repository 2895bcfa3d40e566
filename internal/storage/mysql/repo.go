// Package mysql implements a MySQL repository on the shared database/sql
// engine. Inserts that may collide use INSERT IGNORE; generated ids come from
// LastInsertId.
package mysql

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/go-sql-driver/mysql"

	mysqlddl "ordersnf/internal/storage/mysql/ddl"
	"ordersnf/internal/storage/sqldb"
)

// Config holds MySQL repository configuration.
type Config struct {
	// DSN in go-sql-driver format, e.g. "user:pass@tcp(localhost:3306)/orders".
	DSN string
}

// Repository is a MySQL-backed implementation of storage.Repository.
type Repository struct {
	*sqldb.Store
	cfg Config
}

// Flavor is the SQL flavour the shared engine uses for MySQL.
var Flavor = sqldb.Flavor{
	Name:         "mysql",
	Dialect:      mysqlddl.Dialect{},
	Placeholder:  sqldb.QuestionMark,
	IgnoreInsert: "INSERT IGNORE",
}

// NewRepository parses the DSN, forces a utf8mb4 session so Cyrillic text
// round-trips, and returns a Repository plus a Close function.
func NewRepository(ctx context.Context, cfg Config) (*Repository, func(), error) {
	mc, err := driverConfig(cfg.DSN)
	if err != nil {
		return nil, nil, err
	}
	connector, err := mysql.NewConnector(mc)
	if err != nil {
		return nil, nil, fmt.Errorf("mysql: connector: %w", err)
	}
	db := sql.OpenDB(connector)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("mysql: ping: %w", err)
	}
	close := func() { _ = db.Close() }
	return &Repository{Store: sqldb.NewStore(db, Flavor), cfg: cfg}, close, nil
}

func driverConfig(dsn string) (*mysql.Config, error) {
	mc, err := mysql.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("mysql: dsn: %w", err)
	}
	if mc.Params == nil {
		mc.Params = map[string]string{}
	}
	if _, ok := mc.Params["charset"]; !ok {
		mc.Params["charset"] = "utf8mb4"
	}
	return mc, nil
}
