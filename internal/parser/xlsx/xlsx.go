// Package xlsx reads the order workbook into an in-memory records.Table.
//
// Cells are read with their raw stored values: numbers come back unformatted
// and dates come back as Excel serial day numbers, which the date coercion
// step understands. This keeps the output independent of cell styles.
package xlsx

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"ordersnf/internal/records"
)

// Options selects what to read from the workbook.
type Options struct {
	// Sheet is the worksheet name. Empty means the first sheet.
	Sheet string
}

// Parse reads the header row and all data rows of the selected sheet.
// Trailing empty cells that the workbook omits are padded with "", and fully
// blank rows are dropped.
func Parse(r io.Reader, opt Options) (*records.Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("xlsx: open workbook: %w", err)
	}
	defer f.Close()

	sheet := opt.Sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("xlsx: workbook has no sheets")
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("xlsx: read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("xlsx: sheet %q is empty", sheet)
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = strings.TrimSpace(h)
	}

	t := &records.Table{Columns: headers}
	for i, row := range rows[1:] {
		if blank(row) {
			continue
		}
		fields := make(map[string]string, len(headers))
		for j, col := range headers {
			if j < len(row) {
				fields[col] = row[j]
			} else {
				fields[col] = ""
			}
		}
		// Sheet rows are 1-based and the header is row 1.
		t.Rows = append(t.Rows, records.Record{Line: i + 2, Fields: fields})
	}
	return t, nil
}

func blank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
