// Package all wires all built-in storage backends into the storage factory.
//
// This package exists purely for side effects: importing it (even as a blank
// import) runs the init functions of each backend, which register their
// factories and DDL bootstrappers with the storage package:
//
//   - "sqlite"   (ordersnf/internal/storage/sqlite)
//   - "postgres" (ordersnf/internal/storage/postgres)
//   - "mssql"    (ordersnf/internal/storage/mssql)
//   - "mysql"    (ordersnf/internal/storage/mysql)
//
// Typical usage (in cmd/importer/main.go):
//
//	import _ "ordersnf/internal/storage/all"
//
//	repo, err := storage.New(ctx, storage.Config{Kind: cfg.DBDriver, DSN: cfg.DSN, Fresh: true})
//	if err != nil {
//	    // handle error
//	}
//	defer repo.Close()
//	if err := storage.ResetSchema(ctx, cfg.DBDriver, repo, schema.Tables()); err != nil {
//	    // handle DDL error
//	}
package all

import (
	_ "ordersnf/internal/storage/mssql"
	_ "ordersnf/internal/storage/mysql"
	_ "ordersnf/internal/storage/postgres"
	_ "ordersnf/internal/storage/sqlite"
)
