package ddl

import (
	"context"

	gddl "ordersnf/internal/ddl"
	"ordersnf/internal/storage"
)

// EnsureSchema drops and recreates tables through repo.Exec.
func EnsureSchema(ctx context.Context, repo storage.Repository, tables []gddl.TableDef) error {
	return storage.ApplyRecreate(ctx, repo, tables, Dialect{})
}
