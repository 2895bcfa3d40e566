// Package skiplog writes the CSV trail of orders the importer skipped.
//
// Each row carries the run id, a machine-readable reason, the source row,
// the order id as read and a human-readable detail:
//
//	run_id,reason,row,order_id,detail
package skiplog

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// Skip reasons.
const (
	ReasonClientNotFound    = "client_not_found"
	ReasonSellerNotFound    = "seller_not_found"
	ReasonWarehouseNotFound = "warehouse_not_found"
	ReasonBadOrderID        = "bad_order_id"
)

// Header is the first row of every skip file.
var Header = []string{"run_id", "reason", "row", "order_id", "detail"}

// Log records skipped orders. A nil *Log only counts nothing and writes
// nothing, so callers need not check whether a skip file was requested.
type Log struct {
	runID   string
	f       *os.File
	w       *csv.Writer
	reasons map[string]int
}

// Create opens path for writing, creating missing parent directories, and
// writes the header row.
func Create(path, runID string) (*Log, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("skiplog: create dir %s: %w", filepath.Dir(path), err)
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("skiplog: open %s: %w", path, err)
	}
	w := csv.NewWriter(f)
	if err := w.Write(Header); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("skiplog: write header: %w", err)
	}
	return &Log{runID: runID, f: f, w: w, reasons: make(map[string]int)}, nil
}

// Add appends one skipped order.
func (l *Log) Add(reason string, row int, orderID, detail string) error {
	if l == nil {
		return nil
	}
	l.reasons[reason]++
	if err := l.w.Write([]string{l.runID, reason, strconv.Itoa(row), orderID, detail}); err != nil {
		return fmt.Errorf("skiplog: write: %w", err)
	}
	return nil
}

// Counts returns the number of skips per reason so far.
func (l *Log) Counts() map[string]int {
	out := make(map[string]int)
	if l == nil {
		return out
	}
	for k, v := range l.reasons {
		out[k] = v
	}
	return out
}

// Close flushes buffered rows and closes the file.
func (l *Log) Close() error {
	if l == nil {
		return nil
	}
	l.w.Flush()
	werr := l.w.Error()
	cerr := l.f.Close()
	if werr != nil {
		return fmt.Errorf("skiplog: flush: %w", werr)
	}
	if cerr != nil {
		return fmt.Errorf("skiplog: close: %w", cerr)
	}
	return nil
}
