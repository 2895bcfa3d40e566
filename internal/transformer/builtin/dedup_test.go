package builtin

import (
	"reflect"
	"testing"

	"ordersnf/internal/records"
)

func mk(line int, orderID, color string) records.Record {
	return records.Record{Line: line, Fields: map[string]string{"order_id": orderID, "color": color}}
}

func lines(t *records.Table) []int {
	out := make([]int, 0, len(t.Rows))
	for _, r := range t.Rows {
		out = append(out, r.Line)
	}
	return out
}

func TestDeDupKeepFirst(t *testing.T) {
	t.Parallel()

	tbl := &records.Table{
		Columns: []string{"order_id", "color"},
		Rows:    []records.Record{mk(2, "1", "a"), mk(3, "1", "b"), mk(4, "2", "c"), mk(5, "1", "d")},
	}
	d := &DeDup{Keys: []string{"order_id"}}
	if err := d.Apply(tbl); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if got, want := lines(tbl), []int{2, 4}; !reflect.DeepEqual(got, want) {
		t.Fatalf("keep-first lines=%v want %v", got, want)
	}
	if d.Dropped != 2 {
		t.Fatalf("Dropped=%d want 2", d.Dropped)
	}
}

func TestDeDupMissingKeyPassesThrough(t *testing.T) {
	t.Parallel()

	tbl := &records.Table{
		Rows: []records.Record{
			{Line: 2, Fields: map[string]string{"color": "x"}},
			{Line: 3, Fields: map[string]string{"color": "x"}},
			mk(4, "7", "y"),
		},
	}
	d := &DeDup{Keys: []string{"order_id"}}
	if err := d.Apply(tbl); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if got, want := lines(tbl), []int{2, 3, 4}; !reflect.DeepEqual(got, want) {
		t.Fatalf("lines=%v want %v", got, want)
	}
}

func TestKeyOf_TupleBoundaries(t *testing.T) {
	t.Parallel()

	a := records.Record{Fields: map[string]string{"x": "ab", "y": "c"}}
	b := records.Record{Fields: map[string]string{"x": "a", "y": "bc"}}
	ka, _ := KeyOf(a, []string{"x", "y"})
	kb, _ := KeyOf(b, []string{"x", "y"})
	if ka == kb {
		t.Fatalf("distinct tuples must not share a key")
	}
	c := records.Record{Fields: map[string]string{"x": "a\x1fb", "y": "c"}}
	d := records.Record{Fields: map[string]string{"x": "a", "y": "b\x1fc"}}
	kc, _ := KeyOf(c, []string{"x", "y"})
	kd, _ := KeyOf(d, []string{"x", "y"})
	if kc == kd {
		t.Fatalf("values containing a separator byte must not share a key")
	}
	if HashTuple("", "a") == HashTuple("a", "") {
		t.Fatalf("empty fields must keep their position")
	}
	if _, ok := KeyOf(a, []string{"z"}); ok {
		t.Fatalf("missing field must report !ok")
	}
}
