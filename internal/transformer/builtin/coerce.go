package builtin

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"ordersnf/internal/records"
)

// DateLayout is the textual form order dates are stored and exported in.
const DateLayout = "2006-01-02"

// dateLayouts are tried in order after the Excel serial-number check.
// Slashed dates are read month first.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006-01-02 15:04",
	"02.01.2006",
	"02.01.2006 15:04:05",
	"02.01.2006 15:04",
	"2.1.2006",
	"02.01.06",
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
	"01/02/2006 15:04:05",
	"1/2/06",
	"2006.01.02",
	"20060102",
	"2 Jan 2006",
	"02-Jan-2006",
	"Jan 2, 2006",
}

// Excel's serial day range: 1 is 1900-01-01, 2958465 is 9999-12-31.
const (
	minExcelSerial = 1
	maxExcelSerial = 2958465
)

// ParseDate parses a cell value holding a calendar date: an Excel serial day
// number (as raw workbook cells store dates) or one of dateLayouts.
func ParseDate(s string) (time.Time, error) {
	st := strings.TrimSpace(s)
	if st == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	if isSerial(st) {
		if f, err := strconv.ParseFloat(st, 64); err == nil && f >= minExcelSerial && f <= maxExcelSerial {
			return excelize.ExcelDateToTime(f, false)
		}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, st); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", st)
}

// isSerial reports whether s looks like a plain day number, e.g. "45306" or
// "45306.5".
func isSerial(s string) bool {
	dots := 0
	for i, r := range s {
		switch {
		case r >= '0' && r <= '9':
		case r == '.' && i > 0 && i < len(s)-1:
			dots++
		default:
			return false
		}
	}
	return dots <= 1
}

// DateFormat rewrites Field in every row as a date in Layout (DateLayout when
// empty). Empty cells stay empty; any other value that does not parse aborts
// the transform.
type DateFormat struct {
	Field  string
	Layout string
}

// Apply implements transformer.Transformer.
func (d DateFormat) Apply(t *records.Table) error {
	if !t.HasColumn(d.Field) {
		return nil
	}
	layout := d.Layout
	if layout == "" {
		layout = DateLayout
	}
	for _, r := range t.Rows {
		v := strings.TrimSpace(r.Fields[d.Field])
		if v == "" {
			r.Fields[d.Field] = ""
			continue
		}
		ts, err := ParseDate(v)
		if err != nil {
			return fmt.Errorf("%s at line %d: %w", d.Field, r.Line, err)
		}
		r.Fields[d.Field] = ts.Format(layout)
	}
	return nil
}

// numberCleaner drops the grouping spaces spreadsheets put into numbers.
var numberCleaner = strings.NewReplacer(" ", "", "\u00a0", "", "\u2009", "", "\u202f", "")

func parseDecimal(s string) (decimal.Decimal, bool) {
	st := numberCleaner.Replace(strings.TrimSpace(s))
	if st == "" {
		return decimal.Decimal{}, false
	}
	switch {
	case strings.Contains(st, ",") && strings.Contains(st, "."):
		st = strings.ReplaceAll(st, ",", "")
	case commaGrouped(st):
		st = strings.ReplaceAll(st, ",", "")
	case strings.Contains(st, ","):
		st = strings.ReplaceAll(st, ",", ".")
	}
	d, err := decimal.NewFromString(st)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return d, true
}

// commaGrouped reports whether s is written with comma thousands separators
// ("1,000", "-12,345,678"): one to three leading digits, then groups of exactly
// three.
func commaGrouped(s string) bool {
	s = strings.TrimLeft(s, "+-")
	groups := strings.Split(s, ",")
	if len(groups) < 2 || len(groups[0]) == 0 || len(groups[0]) > 3 {
		return false
	}
	for i, g := range groups {
		if i > 0 && len(g) != 3 {
			return false
		}
		for _, c := range g {
			if c < '0' || c > '9' {
				return false
			}
		}
	}
	return true
}

// ParseInt reads a whole number from a cell, accepting grouping spaces and a
// zero fractional part ("42.0"). The boolean is false for empty or
// non-integral values.
func ParseInt(s string) (int64, bool) {
	if i, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64); err == nil {
		return i, true
	}
	d, ok := parseDecimal(s)
	if !ok || !d.IsInteger() {
		return 0, false
	}
	return d.IntPart(), true
}

// ParseFloat reads a decimal number from a cell, accepting grouping spaces and
// a decimal comma. A comma followed by exactly three digits is read as
// grouping. The boolean is false for empty or malformed values.
func ParseFloat(s string) (float64, bool) {
	d, ok := parseDecimal(s)
	if !ok {
		return 0, false
	}
	return d.InexactFloat64(), true
}
