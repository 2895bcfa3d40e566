// Package storage defines the backend-neutral repository used by the importer
// and the table browser, plus a registry of backend factories. Backends live
// in subpackages and register themselves in init; import
// ordersnf/internal/storage/all to enable every built-in backend.
package storage

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ErrUnknownKind is returned by New when no backend is registered for a kind.
var ErrUnknownKind = errors.New("storage: unknown kind")

// Repository is the set of operations the importer and browser need from a
// store. Every method runs a single statement; there is no cross-call
// transaction.
type Repository interface {
	// Exec runs a statement that returns no rows (DDL).
	Exec(ctx context.Context, sql string) error

	// InsertIgnore inserts one row unless it collides with a primary or
	// unique key. It reports whether a row was written.
	InsertIgnore(ctx context.Context, table string, cols []string, vals []any) (bool, error)

	// InsertReturningID inserts one row and returns the value the store
	// generated for idCol.
	InsertReturningID(ctx context.Context, table, idCol string, cols []string, vals []any) (int64, error)

	// LookupID returns idCol of the row whose keyCols equal vals exactly.
	// found is false when no such row exists.
	LookupID(ctx context.Context, table, idCol string, keyCols []string, vals []any) (id int64, found bool, err error)

	// Count returns the number of rows in table.
	Count(ctx context.Context, table string) (int64, error)

	// Select returns every row of table projected onto cols, ordered by
	// orderBy ascending.
	Select(ctx context.Context, table string, cols []string, orderBy string) ([][]any, error)

	Close()
}

// Config selects and configures a backend.
type Config struct {
	// Kind is the registered backend name, e.g. "sqlite" or "postgres".
	Kind string
	// DSN is passed to the backend driver.
	DSN string
	// Fresh asks file-based backends to start from an empty store. Server
	// backends ignore it; their schema is recreated by ResetSchema.
	Fresh bool
}

// Factory opens a Repository for cfg.
type Factory func(ctx context.Context, cfg Config) (Repository, error)

var (
	mu        sync.RWMutex
	factories = map[string]Factory{}
)

// Register registers (or replaces) the factory for kind. Backends call it
// from init.
func Register(kind string, f Factory) {
	mu.Lock()
	defer mu.Unlock()
	factories[kind] = f
}

// New opens a Repository using the factory registered for cfg.Kind.
func New(ctx context.Context, cfg Config) (Repository, error) {
	mu.RLock()
	f, ok := factories[cfg.Kind]
	mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w %q (registered: %v)", ErrUnknownKind, cfg.Kind, ListKinds())
	}
	return f(ctx, cfg)
}

// ListKinds returns the registered backend names in sorted order.
func ListKinds() []string {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]string, 0, len(factories))
	for k := range factories {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
