package storage

import (
	"context"
	"fmt"
	"sync"

	"ordersnf/internal/ddl"
)

// DDLBootstrapper is a backend-specific function that drops the given tables
// if present and creates them again, using the backend's dialect.
//
// Backends register their implementation for a storage kind at init time.
type DDLBootstrapper func(ctx context.Context, repo Repository, tables []ddl.TableDef) error

var (
	ddlMu  sync.RWMutex
	ddlFns = map[string]DDLBootstrapper{}
)

// RegisterDDL registers (or replaces) a DDLBootstrapper for the given storage
// kind.
func RegisterDDL(kind string, fn DDLBootstrapper) {
	ddlMu.Lock()
	defer ddlMu.Unlock()
	ddlFns[kind] = fn
}

// ResetSchema locates the DDLBootstrapper for kind and invokes it. Tables are
// given in creation order.
func ResetSchema(ctx context.Context, kind string, repo Repository, tables []ddl.TableDef) error {
	ddlMu.RLock()
	fn, ok := ddlFns[kind]
	ddlMu.RUnlock()
	if !ok {
		return fmt.Errorf("storage: no DDL bootstrapper registered for kind=%q", kind)
	}
	return fn(ctx, repo, tables)
}

// ApplyRecreate executes the statements produced by ddl.RecreateStatements for
// tables through repo.Exec. Backend bootstrappers are thin wrappers around it.
func ApplyRecreate(ctx context.Context, repo Repository, tables []ddl.TableDef, d ddl.Dialect) error {
	stmts, err := ddl.RecreateStatements(tables, d)
	if err != nil {
		return err
	}
	for _, s := range stmts {
		if err := repo.Exec(ctx, s); err != nil {
			return fmt.Errorf("storage: apply ddl: %w", err)
		}
	}
	return nil
}
