// Package parser turns a source file into an in-memory records.Table,
// choosing the reader from the file extension.
package parser

import (
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"strings"

	pcsv "ordersnf/internal/parser/csv"
	"ordersnf/internal/parser/fileio"
	"ordersnf/internal/parser/xlsx"
	"ordersnf/internal/records"
)

// ErrUnsupportedFormat is returned for file extensions no reader handles.
var ErrUnsupportedFormat = errors.New("unsupported source format")

// Options carries reader settings; each reader uses the fields relevant to it.
type Options struct {
	Sheet string // xlsx worksheet; empty means the first one
	Comma rune   // csv delimiter; zero means ','
}

// ReadFile reads the whole source at path. A missing or unreadable file is an
// error; the caller treats it as fatal.
func ReadFile(path string, opt Options) (*records.Table, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".xlsx", ".xlsm", ".csv", ".txt":
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	f, err := fileio.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if ext == ".xlsx" || ext == ".xlsm" {
		return xlsx.Parse(f, xlsx.Options{Sheet: opt.Sheet})
	}

	t, skipped, err := pcsv.NewParser(pcsv.Options{Comma: opt.Comma}).Parse(f)
	if err != nil {
		return nil, err
	}
	if skipped > 0 {
		log.Printf("parser: %s: skipped %d malformed lines", filepath.Base(path), skipped)
	}
	return t, nil
}
