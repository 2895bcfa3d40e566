// Package records holds the in-memory table produced by the source readers and
// consumed by the transformers, the CSV export and the importer.
package records

// Record is one source row. Line is the 1-based line (or sheet row) the values
// came from; the header occupies line 1.
type Record struct {
	Line   int
	Fields map[string]string
}

// Get returns the value for field, or "" when the field is absent.
func (r Record) Get(field string) string {
	return r.Fields[field]
}

// Table is an ordered set of columns plus the rows read for them.
type Table struct {
	Columns []string
	Rows    []Record
}

// Len reports the number of rows.
func (t *Table) Len() int { return len(t.Rows) }

// HasColumn reports whether name is one of the table's columns.
func (t *Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// RenameColumns rewrites column names using m (old -> new). Unmapped columns
// keep their name. Row fields are re-keyed accordingly.
func (t *Table) RenameColumns(m map[string]string) {
	if len(m) == 0 {
		return
	}
	for i, c := range t.Columns {
		if to, ok := m[c]; ok {
			t.Columns[i] = to
		}
	}
	for i, r := range t.Rows {
		fields := make(map[string]string, len(r.Fields))
		for k, v := range r.Fields {
			if to, ok := m[k]; ok {
				k = to
			}
			fields[k] = v
		}
		t.Rows[i].Fields = fields
	}
}

// Values returns the row's values aligned to t.Columns.
func (t *Table) Values(r Record) []string {
	out := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		out[i] = r.Fields[c]
	}
	return out
}
