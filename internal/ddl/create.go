// Package ddl defines a small, backend-neutral model for SQL DDL and renders
// CREATE TABLE / DROP TABLE statements from it through a Dialect.
//
// Backend packages (internal/storage/<backend>/ddl) supply the Dialect: how
// identifiers are quoted, how logical kinds map to column types and how an
// auto-incremented primary key is spelled.
package ddl

import (
	"fmt"
	"strings"
)

// Dialect adapts the generic model to one SQL flavour.
type Dialect interface {
	// Name identifies the dialect in error messages.
	Name() string
	// QuoteIdent quotes a single identifier.
	QuoteIdent(id string) string
	// ColumnType maps a column to a concrete SQL type. keyed is true when the
	// column is part of a UNIQUE constraint, which some engines restrict to
	// bounded types.
	ColumnType(c ColumnDef, keyed bool) string
	// AutoIncrementPK returns the full type clause for an auto-incremented
	// primary key column, e.g. "INTEGER PRIMARY KEY AUTOINCREMENT".
	AutoIncrementPK(c ColumnDef) string
}

// BuildCreateTableSQL renders a CREATE TABLE statement for t.
//
// The statement has the form:
//
//	CREATE TABLE <name> (
//	  <col> <type> [NOT NULL],
//	  ...,
//	  [PRIMARY KEY (<pk>)],
//	  [UNIQUE (<natural key>)],
//	  [FOREIGN KEY (<col>) REFERENCES <table> (<col>)]...
//	);
//
// An auto-incremented primary key is declared inline, so no separate PRIMARY
// KEY clause is emitted for it.
func BuildCreateTableSQL(t TableDef, d Dialect) (string, error) {
	name := strings.TrimSpace(t.Name)
	if name == "" {
		return "", fmt.Errorf("%s ddl: table name must not be empty", d.Name())
	}
	if len(t.Columns) == 0 {
		return "", fmt.Errorf("%s ddl: at least one column is required", d.Name())
	}

	known := make(map[string]bool, len(t.Columns))
	cols := make([]string, 0, len(t.Columns)+3)
	var pk string
	var fks []string

	for _, c := range t.Columns {
		cn := strings.TrimSpace(c.Name)
		if cn == "" {
			return "", fmt.Errorf("%s ddl: column with empty name in table %s", d.Name(), name)
		}
		if known[cn] {
			return "", fmt.Errorf("%s ddl: duplicate column %s in table %s", d.Name(), cn, name)
		}
		known[cn] = true

		var sb strings.Builder
		sb.WriteString(d.QuoteIdent(cn))
		sb.WriteByte(' ')

		switch {
		case c.AutoIncrement:
			if !c.PrimaryKey {
				return "", fmt.Errorf("%s ddl: auto-increment column %s must be the primary key", d.Name(), cn)
			}
			sb.WriteString(d.AutoIncrementPK(c))
		default:
			sb.WriteString(d.ColumnType(c, t.IsUnique(cn)))
			if !c.Nullable || c.PrimaryKey {
				sb.WriteString(" NOT NULL")
			}
			if c.PrimaryKey {
				if pk != "" {
					return "", fmt.Errorf("%s ddl: table %s has more than one primary key column", d.Name(), name)
				}
				pk = cn
			}
		}
		cols = append(cols, sb.String())

		if c.References != nil {
			fks = append(fks, fmt.Sprintf("FOREIGN KEY (%s) REFERENCES %s (%s)",
				d.QuoteIdent(cn), d.QuoteIdent(c.References.Table), d.QuoteIdent(c.References.Column)))
		}
	}

	if pk != "" {
		cols = append(cols, fmt.Sprintf("PRIMARY KEY (%s)", d.QuoteIdent(pk)))
	}
	if len(t.Unique) > 0 {
		uq := make([]string, 0, len(t.Unique))
		for _, u := range t.Unique {
			if !known[u] {
				return "", fmt.Errorf("%s ddl: unique column %s not in table %s", d.Name(), u, name)
			}
			uq = append(uq, d.QuoteIdent(u))
		}
		cols = append(cols, fmt.Sprintf("UNIQUE (%s)", strings.Join(uq, ", ")))
	}
	cols = append(cols, fks...)

	return fmt.Sprintf("CREATE TABLE %s (\n  %s\n);", d.QuoteIdent(name), strings.Join(cols, ",\n  ")), nil
}

// BuildDropTableSQL renders DROP TABLE IF EXISTS for name.
func BuildDropTableSQL(name string, d Dialect) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("%s ddl: table name must not be empty", d.Name())
	}
	return fmt.Sprintf("DROP TABLE IF EXISTS %s;", d.QuoteIdent(name)), nil
}

// RecreateStatements returns DROP statements for tables in reverse order
// followed by CREATE statements in the given order, so that a table is never
// dropped while another still references it.
func RecreateStatements(tables []TableDef, d Dialect) ([]string, error) {
	out := make([]string, 0, 2*len(tables))
	for i := len(tables) - 1; i >= 0; i-- {
		s, err := BuildDropTableSQL(tables[i].Name, d)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	for _, t := range tables {
		s, err := BuildCreateTableSQL(t, d)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}
