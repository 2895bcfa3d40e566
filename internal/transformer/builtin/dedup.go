package builtin

import (
	"strconv"
	"strings"

	"github.com/zeebo/xxh3"

	"ordersnf/internal/records"
)

// DeDup collapses rows that share the same values in Keys; the earliest row
// wins. Rows lacking one of the key fields pass through untouched. Dropped is
// set to the number of rows removed by the last Apply.
type DeDup struct {
	Keys []string

	Dropped int
}

// Apply implements transformer.Transformer.
func (d *DeDup) Apply(t *records.Table) error {
	d.Dropped = 0
	if len(t.Rows) == 0 || len(d.Keys) == 0 {
		return nil
	}
	seen := make(map[xxh3.Uint128]struct{}, len(t.Rows))
	out := make([]records.Record, 0, len(t.Rows))
	for _, r := range t.Rows {
		k, ok := KeyOf(r, d.Keys)
		if !ok {
			out = append(out, r)
			continue
		}
		if _, dup := seen[k]; dup {
			d.Dropped++
			continue
		}
		seen[k] = struct{}{}
		out = append(out, r)
	}
	t.Rows = out
	return nil
}

// KeyOf hashes the values of fields into a single tuple key. The boolean is
// false when r lacks one of the fields.
func KeyOf(r records.Record, fields []string) (xxh3.Uint128, bool) {
	vals := make([]string, len(fields))
	for i, f := range fields {
		v, ok := r.Fields[f]
		if !ok {
			return xxh3.Uint128{}, false
		}
		vals[i] = v
	}
	return HashTuple(vals...), true
}

// HashTuple hashes values as one key. Each value is length-prefixed, so
// values containing the separator cannot shift into a neighbour.
func HashTuple(values ...string) xxh3.Uint128 {
	var b strings.Builder
	for _, v := range values {
		b.WriteString(strconv.Itoa(len(v)))
		b.WriteByte(':')
		b.WriteString(v)
	}
	return xxh3.HashString128(b.String())
}
