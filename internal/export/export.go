// Package export writes the flat, denormalized CSV copy of the cleaned
// records: UTF-8 with a byte-order mark, comma-delimited, canonical column
// names in the header, one row per record.
package export

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	pcsv "ordersnf/internal/parser/csv"
	"ordersnf/internal/records"
)

// Write renders t to w.
func Write(w io.Writer, t *records.Table) error {
	bw := bufio.NewWriterSize(w, 256*1024)
	if _, err := bw.WriteString(pcsv.UTF8BOM); err != nil {
		return fmt.Errorf("export: write bom: %w", err)
	}
	cw := csv.NewWriter(bw)
	if err := cw.Write(t.Columns); err != nil {
		return fmt.Errorf("export: write header: %w", err)
	}
	for _, r := range t.Rows {
		if err := cw.Write(t.Values(r)); err != nil {
			return fmt.Errorf("export: write row %d: %w", r.Line, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("export: flush: %w", err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("export: flush: %w", err)
	}
	return nil
}

// WriteFile writes t to path, creating missing parent directories and
// replacing any existing file.
func WriteFile(path string, t *records.Table) (err error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("export: create dir %s: %w", dir, err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export: create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("export: close %s: %w", path, cerr)
		}
	}()
	return Write(f, t)
}
