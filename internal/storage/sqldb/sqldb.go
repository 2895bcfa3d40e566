// Package sqldb implements the storage.Repository operations on top of
// database/sql. The sqlite, mysql and mssql backends share it and differ only
// in their Flavor: identifier quoting, placeholders and how a row is inserted
// without failing on a key collision.
package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"ordersnf/internal/ddl"
)

// Flavor captures the SQL differences between database/sql backends.
type Flavor struct {
	// Name prefixes error messages, e.g. "sqlite".
	Name string

	// Dialect quotes identifiers.
	Dialect ddl.Dialect

	// Placeholder renders the n-th (1-based) bind parameter.
	Placeholder func(n int) string

	// IgnoreInsert is the verb of an insert that silently skips key
	// collisions, e.g. "INSERT OR IGNORE". Empty means plain INSERT with
	// IsUniqueViolation deciding which errors to swallow.
	IgnoreInsert string

	// IsUniqueViolation reports whether err is a primary/unique key collision.
	IsUniqueViolation func(err error) bool

	// OutputInserted selects INSERT ... OUTPUT INSERTED.<id> instead of
	// sql.Result.LastInsertId.
	OutputInserted bool
}

// QuestionMark is the Placeholder for drivers using "?".
func QuestionMark(int) string { return "?" }

// Store runs Repository operations against a *sql.DB.
type Store struct {
	db *sql.DB
	f  Flavor
}

// NewStore wraps db. The caller owns db and closes it.
func NewStore(db *sql.DB, f Flavor) *Store {
	if f.Placeholder == nil {
		f.Placeholder = QuestionMark
	}
	return &Store{db: db, f: f}
}

// DB exposes the underlying handle.
func (s *Store) DB() *sql.DB { return s.db }

// Exec executes an arbitrary SQL statement (typically DDL).
func (s *Store) Exec(ctx context.Context, sqlText string) error {
	if strings.TrimSpace(sqlText) == "" {
		return nil
	}
	if _, err := s.db.ExecContext(ctx, sqlText); err != nil {
		return fmt.Errorf("%s: exec: %w", s.f.Name, err)
	}
	return nil
}

// InsertIgnore inserts one row and reports whether it was written. A key
// collision is not an error.
func (s *Store) InsertIgnore(ctx context.Context, table string, cols []string, vals []any) (bool, error) {
	if err := checkArity(cols, vals); err != nil {
		return false, fmt.Errorf("%s: insert %s: %w", s.f.Name, table, err)
	}
	verb := s.f.IgnoreInsert
	if verb == "" {
		verb = "INSERT"
	}
	q := fmt.Sprintf("%s INTO %s (%s) VALUES (%s)",
		verb, s.quote(table), s.quoteList(cols), s.placeholders(len(cols)))

	res, err := s.db.ExecContext(ctx, q, vals...)
	if err != nil {
		if s.f.IgnoreInsert == "" && s.f.IsUniqueViolation != nil && s.f.IsUniqueViolation(err) {
			return false, nil
		}
		return false, fmt.Errorf("%s: insert %s: %w", s.f.Name, table, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%s: rows affected: %w", s.f.Name, err)
	}
	return n > 0, nil
}

// InsertReturningID inserts one row and returns the generated idCol value.
func (s *Store) InsertReturningID(ctx context.Context, table, idCol string, cols []string, vals []any) (int64, error) {
	if err := checkArity(cols, vals); err != nil {
		return 0, fmt.Errorf("%s: insert %s: %w", s.f.Name, table, err)
	}

	if s.f.OutputInserted {
		q := fmt.Sprintf("INSERT INTO %s (%s) OUTPUT INSERTED.%s VALUES (%s)",
			s.quote(table), s.quoteList(cols), s.quote(idCol), s.placeholders(len(cols)))
		var id int64
		if err := s.db.QueryRowContext(ctx, q, vals...).Scan(&id); err != nil {
			return 0, fmt.Errorf("%s: insert %s: %w", s.f.Name, table, err)
		}
		return id, nil
	}

	q := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		s.quote(table), s.quoteList(cols), s.placeholders(len(cols)))
	res, err := s.db.ExecContext(ctx, q, vals...)
	if err != nil {
		return 0, fmt.Errorf("%s: insert %s: %w", s.f.Name, table, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("%s: last insert id: %w", s.f.Name, err)
	}
	return id, nil
}

// LookupID returns idCol of the row matching keyCols = vals.
func (s *Store) LookupID(ctx context.Context, table, idCol string, keyCols []string, vals []any) (int64, bool, error) {
	if err := checkArity(keyCols, vals); err != nil {
		return 0, false, fmt.Errorf("%s: lookup %s: %w", s.f.Name, table, err)
	}
	conds := make([]string, len(keyCols))
	for i, c := range keyCols {
		conds[i] = fmt.Sprintf("%s = %s", s.quote(c), s.f.Placeholder(i+1))
	}
	q := fmt.Sprintf("SELECT %s FROM %s WHERE %s",
		s.quote(idCol), s.quote(table), strings.Join(conds, " AND "))

	var id int64
	err := s.db.QueryRowContext(ctx, q, vals...).Scan(&id)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return 0, false, nil
	case err != nil:
		return 0, false, fmt.Errorf("%s: lookup %s: %w", s.f.Name, table, err)
	}
	return id, true, nil
}

// Count returns the number of rows in table.
func (s *Store) Count(ctx context.Context, table string) (int64, error) {
	var n int64
	q := "SELECT COUNT(*) FROM " + s.quote(table)
	if err := s.db.QueryRowContext(ctx, q).Scan(&n); err != nil {
		return 0, fmt.Errorf("%s: count %s: %w", s.f.Name, table, err)
	}
	return n, nil
}

// Select returns all rows of table projected onto cols.
func (s *Store) Select(ctx context.Context, table string, cols []string, orderBy string) ([][]any, error) {
	if len(cols) == 0 {
		return nil, fmt.Errorf("%s: select %s: columns must not be empty", s.f.Name, table)
	}
	q := fmt.Sprintf("SELECT %s FROM %s", s.quoteList(cols), s.quote(table))
	if orderBy != "" {
		q += " ORDER BY " + s.quote(orderBy)
	}

	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("%s: select %s: %w", s.f.Name, table, err)
	}
	defer rows.Close()

	var out [][]any
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("%s: scan %s: %w", s.f.Name, table, err)
		}
		for i, v := range vals {
			if b, ok := v.([]byte); ok {
				vals[i] = string(b)
			}
		}
		out = append(out, vals)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: select %s: %w", s.f.Name, table, err)
	}
	return out, nil
}

func (s *Store) quote(id string) string { return s.f.Dialect.QuoteIdent(id) }

func (s *Store) quoteList(cols []string) string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = s.quote(c)
	}
	return strings.Join(out, ", ")
}

func (s *Store) placeholders(n int) string {
	out := make([]string, n)
	for i := range out {
		out[i] = s.f.Placeholder(i + 1)
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
