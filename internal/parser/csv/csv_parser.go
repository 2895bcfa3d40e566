// Package csv reads a delimited text export of the order sheet into an
// in-memory records.Table. Header cells are kept as written (minus a UTF-8
// BOM); mapping them to canonical names is the loader's job.
package csv

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"strings"

	"ordersnf/internal/records"
)

// Options configures the CSV parser. Zero values are usable.
type Options struct {
	// Comma is the field delimiter. When zero, ',' is used. Values are kept
	// as written.
	Comma rune
}

// Parser parses CSV input according to Options. It is not concurrency-safe.
type Parser struct{ opt Options }

// NewParser constructs a Parser with the provided Options.
func NewParser(opt Options) *Parser { return &Parser{opt: opt} }

// skipLogLimit caps how many malformed rows are logged individually.
const skipLogLimit = 400

// Parse reads the header row and every data row from r. Rows shorter than the
// header are padded with empty values; rows wider than the header are skipped
// and counted. Fully blank rows are dropped silently.
func (p *Parser) Parse(r io.Reader) (*records.Table, int, error) {
	cr := csv.NewReader(r)
	if p.opt.Comma != 0 {
		cr.Comma = p.opt.Comma
	}
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	h, err := cr.Read()
	if err == io.EOF {
		return nil, 0, fmt.Errorf("csv: empty input")
	}
	if err != nil {
		return nil, 0, fmt.Errorf("csv: read header: %w", err)
	}
	headers := StripHeaderBOM(append([]string(nil), h...))
	for i := range headers {
		headers[i] = strings.TrimSpace(headers[i])
	}

	t := &records.Table{Columns: headers}
	skipped := 0
	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, skipped, fmt.Errorf("csv: line %d: %w", line, err)
		}
		if len(row) > len(headers) {
			if skipped < skipLogLimit {
				log.Printf("csv: skipping line %d: %d fields, header has %d", line, len(row), len(headers))
			}
			skipped++
			continue
		}
		if blank(row) {
			continue
		}

		fields := make(map[string]string, len(headers))
		for i, col := range headers {
			var val string
			if i < len(row) {
				val = row[i]
			}
			fields[col] = val
		}
		t.Rows = append(t.Rows, records.Record{Line: line, Fields: fields})
	}
	return t, skipped, nil
}

func blank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
