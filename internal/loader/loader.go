// Package loader is the record loader of the order import. It reads the
// source sheet into memory, renames localized headers to canonical field
// names, keeps the first row of every order id and rewrites order dates as
// YYYY-MM-DD.
package loader

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"ordersnf/internal/parser"
	"ordersnf/internal/records"
	"ordersnf/internal/transformer"
	"ordersnf/internal/transformer/builtin"
)

// ErrMissingColumn is returned when a required column is absent after renaming.
var ErrMissingColumn = errors.New("missing required column")

// Options configures Load and Prepare.
type Options struct {
	// HeaderMap maps source labels to canonical names. Nil means DefaultHeaderMap.
	HeaderMap map[string]string

	// Parser is passed through to the source reader.
	Parser parser.Options
}

// Stats describes what Prepare did to the table.
type Stats struct {
	Read       int // data rows read from the source
	Duplicates int // rows dropped because their order id was already seen
	Kept       int // rows handed to the next stage
	Unmapped   []string
}

// Load reads the source at path and prepares it. Any error is fatal for the run.
func Load(path string, opt Options) (*records.Table, Stats, error) {
	t, err := parser.ReadFile(path, opt.Parser)
	if err != nil {
		return nil, Stats{}, fmt.Errorf("loader: %w", err)
	}
	st, err := Prepare(t, opt)
	if err != nil {
		return nil, st, err
	}
	return t, st, nil
}

// Prepare renames, checks, de-duplicates and date-formats t in place.
func Prepare(t *records.Table, opt Options) (Stats, error) {
	st := Stats{Read: t.Len()}

	hm := opt.HeaderMap
	if hm == nil {
		hm = DefaultHeaderMap
	}
	mapping := NewHeaderMapping(hm)
	renames := mapping.Renames(t.Columns)
	for _, c := range t.Columns {
		if _, ok := renames[c]; !ok {
			st.Unmapped = append(st.Unmapped, c)
		}
	}
	t.RenameColumns(renames)
	if len(st.Unmapped) > 0 {
		log.Printf("loader: keeping unmapped columns as-is: %s", strings.Join(st.Unmapped, ", "))
	}

	var missing []string
	for _, c := range RequiredColumns {
		if !t.HasColumn(c) {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return st, fmt.Errorf("loader: %w: %s", ErrMissingColumn, strings.Join(missing, ", "))
	}

	dedup := &builtin.DeDup{Keys: []string{"order_id"}}
	chain := transformer.Chain{
		dedup,
		builtin.DateFormat{Field: "order_date", Layout: builtin.DateLayout},
	}
	if err := chain.Apply(t); err != nil {
		return st, fmt.Errorf("loader: %w", err)
	}

	st.Duplicates = dedup.Dropped
	st.Kept = t.Len()
	log.Printf("loader: rows=%d duplicates=%d kept=%d", st.Read, st.Duplicates, st.Kept)
	return st, nil
}
