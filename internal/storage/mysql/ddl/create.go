package ddl

import (
	"strings"

	gddl "ordersnf/internal/ddl"
)

// Dialect renders the generic table model as MySQL DDL: `backtick`
// identifiers and AUTO_INCREMENT surrogate keys.
type Dialect struct{}

var _ gddl.Dialect = Dialect{}

func (Dialect) Name() string { return "mysql" }

func (Dialect) QuoteIdent(id string) string { return quoteIdent(id) }

func (Dialect) ColumnType(c gddl.ColumnDef, keyed bool) string { return MapType(c.Kind, keyed) }

func (Dialect) AutoIncrementPK(gddl.ColumnDef) string {
	return "BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY"
}

// BuildCreateTableSQL returns a MySQL CREATE TABLE statement for t.
func BuildCreateTableSQL(t gddl.TableDef) (string, error) {
	return gddl.BuildCreateTableSQL(t, Dialect{})
}

func quoteIdent(id string) string {
	return "`" + strings.ReplaceAll(id, "`", "``") + "`"
}
