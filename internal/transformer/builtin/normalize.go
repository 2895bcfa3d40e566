// Package builtin contains the table transforms used by the order import:
// text canonicalization (Normalize), first-wins de-duplication (DeDup) and
// order-date reformatting (DateFormat), plus the numeric cleanup helpers the
// importer uses for prices and counts.
package builtin

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"ordersnf/internal/records"
)

// ModelFields are the model attributes stored in canonical form. Together they
// form the model's natural key.
var ModelFields = []string{"model_name", "category", "brand", "size", "color"}

// quoteUnifier maps every quotation-mark variant seen in the sheets to '"'.
var quoteUnifier = strings.NewReplacer(
	"“", `"`, "”", `"`,
	"‘", `"`, "’", `"`,
	"«", `"`, "»", `"`,
	"`", `"`, "'", `"`,
)

// Canonical maps a raw cell value to its canonical text: nil becomes "", the
// text is trimmed and lowercased, quote variants become '"', and runs of
// whitespace collapse to a single space. Canonical(Canonical(v)) == Canonical(v).
func Canonical(v any) string {
	var s string
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		s = t
	case fmt.Stringer:
		s = t.String()
	default:
		s = fmt.Sprint(t)
	}
	s = cases.Lower(language.Und).String(strings.TrimSpace(s))
	s = quoteUnifier.Replace(s)
	return strings.Join(strings.Fields(s), " ")
}

// Normalize rewrites the configured fields of every row with Canonical.
// Fields missing from the table are ignored.
type Normalize struct {
	Fields []string
}

// Apply implements transformer.Transformer.
func (n Normalize) Apply(t *records.Table) error {
	for _, f := range n.Fields {
		if !t.HasColumn(f) {
			continue
		}
		for _, r := range t.Rows {
			r.Fields[f] = Canonical(r.Fields[f])
		}
	}
	return nil
}
