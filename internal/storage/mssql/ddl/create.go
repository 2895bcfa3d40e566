package ddl

import (
	"strings"

	gddl "ordersnf/internal/ddl"
)

// Dialect renders the generic table model as T-SQL: [bracketed] identifiers
// and IDENTITY surrogate keys.
type Dialect struct{}

var _ gddl.Dialect = Dialect{}

func (Dialect) Name() string { return "mssql" }

func (Dialect) QuoteIdent(id string) string { return quoteIdent(id) }

func (Dialect) ColumnType(c gddl.ColumnDef, keyed bool) string { return MapType(c.Kind, keyed) }

func (Dialect) AutoIncrementPK(gddl.ColumnDef) string { return "BIGINT IDENTITY(1,1) PRIMARY KEY" }

// BuildCreateTableSQL returns a SQL Server CREATE TABLE statement for t.
func BuildCreateTableSQL(t gddl.TableDef) (string, error) {
	return gddl.BuildCreateTableSQL(t, Dialect{})
}

// quoteIdent safely quotes a SQL Server identifier using [brackets], escaping ].
func quoteIdent(id string) string {
	return `[` + strings.ReplaceAll(id, `]`, `]]`) + `]`
}
