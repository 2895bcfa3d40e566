// Package postgres wires the Postgres backend into the storage factory by
// registering a constructor and a DDL bootstrapper at init time. Callers obtain
// a Repository via storage.New without importing this package directly.
package postgres

import (
	"context"
	"fmt"

	"ordersnf/internal/ddl"
	"ordersnf/internal/storage"
	pgddl "ordersnf/internal/storage/postgres/ddl"
)

// newRepository is a test hook that points to NewRepository by default.
// Tests may replace this variable to avoid real DB connections.
var newRepository = NewRepository

// wrappedRepo implements storage.Repository by delegating to the concrete
// *postgres.Repository while providing a Close method that calls the close
// function returned by NewRepository.
type wrappedRepo struct {
	*Repository
	closeFn func()
}

// Ensure wrappedRepo satisfies storage.Repository at compile time.
var _ storage.Repository = (*wrappedRepo)(nil)

// Close implements storage.Repository.Close.
func (w *wrappedRepo) Close() {
	if w.closeFn != nil {
		w.closeFn()
	}
}

func init() {
	storage.Register("postgres", func(ctx context.Context, cfg storage.Config) (storage.Repository, error) {
		r, closeFn, err := newRepository(ctx, Config{DSN: cfg.DSN})
		if err != nil {
			return nil, err
		}
		return &wrappedRepo{Repository: r, closeFn: closeFn}, nil
	})

	storage.RegisterDDL("postgres",
		func(ctx context.Context, repo storage.Repository, tables []ddl.TableDef) error {
			if err := pgddl.EnsureSchema(ctx, repo, tables); err != nil {
				return fmt.Errorf("postgres: apply DDL: %w", err)
			}
			return nil
		})
}
