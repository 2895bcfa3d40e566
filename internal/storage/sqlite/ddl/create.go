package ddl

import (
	"strings"

	gddl "ordersnf/internal/ddl"
)

// Dialect renders the generic table model as SQLite DDL:
//   - double-quoted identifiers
//   - INTEGER PRIMARY KEY AUTOINCREMENT for surrogate keys, so ids are never
//     reused after a delete
type Dialect struct{}

var _ gddl.Dialect = Dialect{}

func (Dialect) Name() string { return "sqlite" }

func (Dialect) QuoteIdent(id string) string { return quoteIdent(id) }

func (Dialect) ColumnType(c gddl.ColumnDef, _ bool) string { return MapType(c.Kind) }

func (Dialect) AutoIncrementPK(gddl.ColumnDef) string { return "INTEGER PRIMARY KEY AUTOINCREMENT" }

// BuildCreateTableSQL returns a SQLite CREATE TABLE statement for t.
func BuildCreateTableSQL(t gddl.TableDef) (string, error) {
	return gddl.BuildCreateTableSQL(t, Dialect{})
}

func quoteIdent(id string) string {
	return `"` + strings.ReplaceAll(id, `"`, `""`) + `"`
}
