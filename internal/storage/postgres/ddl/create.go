package ddl

import (
	"strings"

	gddl "ordersnf/internal/ddl"
)

// Dialect renders the generic table model as Postgres DDL. Surrogate keys use
// identity columns.
type Dialect struct{}

var _ gddl.Dialect = Dialect{}

func (Dialect) Name() string { return "postgres" }

func (Dialect) QuoteIdent(id string) string { return pgIdent(id) }

func (Dialect) ColumnType(c gddl.ColumnDef, _ bool) string { return MapType(c.Kind) }

func (Dialect) AutoIncrementPK(gddl.ColumnDef) string {
	return "BIGINT GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY"
}

// BuildCreateTableSQL returns a Postgres CREATE TABLE statement for t.
func BuildCreateTableSQL(t gddl.TableDef) (string, error) {
	return gddl.BuildCreateTableSQL(t, Dialect{})
}

// pgIdent quotes a Postgres identifier, escaping embedded double quotes.
func pgIdent(id string) string {
	return `"` + strings.ReplaceAll(id, `"`, `""`) + `"`
}
