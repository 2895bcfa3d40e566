// Package postgres implements a Postgres repository using pgx v5 directly
// (no database/sql). Inserts that may collide use ON CONFLICT DO NOTHING and
// generated ids come back through RETURNING.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Config holds Postgres repository configuration.
type Config struct {
	DSN string // connection string for pgxpool
}

// Repository is a Postgres-backed implementation of storage.Repository.
type Repository struct {
	pool *pgxpool.Pool
	cfg  Config
}

// NewRepository constructs a Repository and returns a Close function for cleanup.
func NewRepository(ctx context.Context, cfg Config) (*Repository, func(), error) {
	pool, err := pgxpool.New(ctx, cfg.DSN)
	if err != nil {
		return nil, nil, fmt.Errorf("postgres: pgxpool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("postgres: ping: %w", wrapPgErr(err))
	}
	close := func() { pool.Close() }
	return &Repository{pool: pool, cfg: cfg}, close, nil
}

// Exec executes a SQL statement against the pool.
func (r *Repository) Exec(ctx context.Context, sql string) error {
	if strings.TrimSpace(sql) == "" {
		return nil
	}
	if _, err := r.pool.Exec(ctx, sql); err != nil {
		return fmt.Errorf("postgres: exec: %w", wrapPgErr(err))
	}
	return nil
}

// InsertIgnore inserts one row with ON CONFLICT DO NOTHING and reports
// whether it was written.
func (r *Repository) InsertIgnore(ctx context.Context, table string, cols []string, vals []any) (bool, error) {
	if err := checkArity(cols, vals); err != nil {
		return false, fmt.Errorf("postgres: insert %s: %w", table, err)
	}
	q := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) ON CONFLICT DO NOTHING",
		pgIdent(table), strings.Join(mapIdent(cols), ", "), placeholders(len(cols)))
	tag, err := r.pool.Exec(ctx, q, vals...)
	if err != nil {
		return false, fmt.Errorf("postgres: insert %s: %w", table, wrapPgErr(err))
	}
	return tag.RowsAffected() > 0, nil
}

// InsertReturningID inserts one row and returns idCol via RETURNING.
func (r *Repository) InsertReturningID(ctx context.Context, table, idCol string, cols []string, vals []any) (int64, error) {
	if err := checkArity(cols, vals); err != nil {
		return 0, fmt.Errorf("postgres: insert %s: %w", table, err)
	}
	q := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING %s",
		pgIdent(table), strings.Join(mapIdent(cols), ", "), placeholders(len(cols)), pgIdent(idCol))
	var id int64
	if err := r.pool.QueryRow(ctx, q, vals...).Scan(&id); err != nil {
		return 0, fmt.Errorf("postgres: insert %s: %w", table, wrapPgErr(err))
	}
	return id, nil
}

// LookupID returns idCol of the row matching keyCols = vals.
func (r *Repository) LookupID(ctx context.Context, table, idCol string, keyCols []string, vals []any) (int64, bool, error) {
	if err := checkArity(keyCols, vals); err != nil {
		return 0, false, fmt.Errorf("postgres: lookup %s: %w", table, err)
	}
	conds := make([]string, len(keyCols))
	for i, c := range keyCols {
		conds[i] = fmt.Sprintf("%s = $%d", pgIdent(c), i+1)
	}
	q := fmt.Sprintf("SELECT %s FROM %s WHERE %s",
		pgIdent(idCol), pgIdent(table), strings.Join(conds, " AND "))

	var id int64
	err := r.pool.QueryRow(ctx, q, vals...).Scan(&id)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return 0, false, nil
	case err != nil:
		return 0, false, fmt.Errorf("postgres: lookup %s: %w", table, wrapPgErr(err))
	}
	return id, true, nil
}

// Count returns the number of rows in table.
func (r *Repository) Count(ctx context.Context, table string) (int64, error) {
	var n int64
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM "+pgIdent(table)).Scan(&n); err != nil {
		return 0, fmt.Errorf("postgres: count %s: %w", table, wrapPgErr(err))
	}
	return n, nil
}

// Select returns all rows of table projected onto cols.
func (r *Repository) Select(ctx context.Context, table string, cols []string, orderBy string) ([][]any, error) {
	if len(cols) == 0 {
		return nil, fmt.Errorf("postgres: select %s: columns must not be empty", table)
	}
	q := fmt.Sprintf("SELECT %s FROM %s", strings.Join(mapIdent(cols), ", "), pgIdent(table))
	if orderBy != "" {
		q += " ORDER BY " + pgIdent(orderBy)
	}
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("postgres: select %s: %w", table, wrapPgErr(err))
	}
	defer rows.Close()

	var out [][]any
	for rows.Next() {
		vals, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("postgres: scan %s: %w", table, err)
		}
		out = append(out, vals)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: select %s: %w", table, wrapPgErr(err))
	}
	return out, nil
}

// wrapPgErr surfaces the server-side detail and SQLSTATE when present.
func wrapPgErr(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Detail != "" {
		return fmt.Errorf("%w (%s: %s)", err, pgErr.SQLState(), pgErr.Detail)
	}
	return err
}

// pgIdent quotes a Postgres identifier, escaping embedded double quotes.
func pgIdent(id string) string { return `"` + strings.ReplaceAll(id, `"`, `""`) + `"` }

// mapIdent maps a list of column names to their quoted forms.
func mapIdent(cols []string) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = pgIdent(c)
	}
	return out
}

func placeholders(n int) string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("$%d", i+1)
	}
	return strings.Join(out, ", ")
}

func checkArity(cols []string, vals []any) error {
	if len(cols) == 0 {
		return errors.New("columns must not be empty")
	}
	if len(cols) != len(vals) {
		return fmt.Errorf("values length %d != columns length %d", len(vals), len(cols))
	}
	return nil
}
