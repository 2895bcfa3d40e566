package ddl

// Kind is the logical type of a column. Backends map it to a concrete SQL
// type through their Dialect.
type Kind string

const (
	KindText    Kind = "text"
	KindInteger Kind = "integer"
	KindReal    Kind = "real"
)

// ForeignKey points a column at the primary key of another table.
type ForeignKey struct {
	Table  string
	Column string
}

// ColumnDef describes a single column in a table definition.
//
// Fields:
//   - Name: logical column name (unquoted; quoting happens at render time)
//   - Kind: logical type, mapped per dialect
//   - Nullable: whether NULL is allowed
//   - PrimaryKey: whether the column is the table's primary key
//   - AutoIncrement: the store assigns the value on insert (primary key only)
//   - References: optional foreign key target
type ColumnDef struct {
	Name          string
	Kind          Kind
	Nullable      bool
	PrimaryKey    bool
	AutoIncrement bool
	References    *ForeignKey
}

// TableDef holds a table name, a human-facing display name, an ordered list of
// columns and an optional natural key rendered as a UNIQUE constraint.
type TableDef struct {
	Name    string
	Display string
	Columns []ColumnDef
	Unique  []string
}

// PrimaryKey returns the name of the primary key column, or "" if none.
func (t TableDef) PrimaryKey() string {
	for _, c := range t.Columns {
		if c.PrimaryKey {
			return c.Name
		}
	}
	return ""
}

// ColumnNames returns every column name in declaration order.
func (t TableDef) ColumnNames() []string {
	out := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		out[i] = c.Name
	}
	return out
}

// InsertColumns returns the columns a caller supplies on insert, i.e. all
// columns except an auto-incremented primary key.
func (t TableDef) InsertColumns() []string {
	out := make([]string, 0, len(t.Columns))
	for _, c := range t.Columns {
		if c.AutoIncrement {
			continue
		}
		out = append(out, c.Name)
	}
	return out
}

// IsUnique reports whether col participates in the table's natural key.
func (t TableDef) IsUnique(col string) bool {
	for _, u := range t.Unique {
		if u == col {
			return true
		}
	}
	return false
}
