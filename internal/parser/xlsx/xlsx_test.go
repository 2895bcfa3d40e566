package xlsx

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"
)

// newWorkbook builds an in-memory workbook with the given rows on Sheet1.
func newWorkbook(tb testing.TB, rows [][]any) *bytes.Buffer {
	tb.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			tb.Fatalf("cell name: %v", err)
		}
		r := row
		if err := f.SetSheetRow("Sheet1", cell, &r); err != nil {
			tb.Fatalf("SetSheetRow: %v", err)
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		tb.Fatalf("WriteToBuffer: %v", err)
	}
	return buf
}

func TestParse_RawValuesAndPadding(t *testing.T) {
	t.Parallel()

	buf := newWorkbook(t, [][]any{
		{"Номер заказа", "Цвет", "Цена за пару"},
		{1001, "Red ", 99.5},
		{1002, "blue"},
	})

	tbl, err := Parse(buf, Options{})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(tbl.Columns) != 3 || tbl.Columns[0] != "Номер заказа" {
		t.Fatalf("columns=%q", tbl.Columns)
	}
	if tbl.Len() != 2 {
		t.Fatalf("rows=%d want 2", tbl.Len())
	}
	if got := tbl.Rows[0].Get("Номер заказа"); got != "1001" {
		t.Fatalf("order id=%q want 1001", got)
	}
	if got := tbl.Rows[0].Get("Цена за пару"); got != "99.5" {
		t.Fatalf("price=%q want 99.5", got)
	}
	if got := tbl.Rows[0].Get("Цвет"); got != "Red " {
		t.Fatalf("color=%q want untouched", got)
	}
	if got, ok := tbl.Rows[1].Fields["Цена за пару"]; !ok || got != "" {
		t.Fatalf("short row should be padded, got %q ok=%v", got, ok)
	}
	if tbl.Rows[1].Line != 3 {
		t.Fatalf("line=%d want 3", tbl.Rows[1].Line)
	}
}

func TestParse_UnknownSheet(t *testing.T) {
	t.Parallel()

	buf := newWorkbook(t, [][]any{{"a"}, {"1"}})
	if _, err := Parse(buf, Options{Sheet: "Orders"}); err == nil {
		t.Fatalf("expected error for missing sheet")
	}
}

func TestParse_NotAWorkbook(t *testing.T) {
	t.Parallel()

	if _, err := Parse(bytes.NewBufferString("a,b\n1,2\n"), Options{}); err == nil {
		t.Fatalf("expected error for non-xlsx input")
	}
}
