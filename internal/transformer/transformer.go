// Package transformer defines the in-memory table transform contract and an
// ordered chain of transforms. Concrete transforms live in builtin.
package transformer

import (
	"fmt"

	"ordersnf/internal/records"
)

// Transformer rewrites a table in place. A non-nil error aborts the chain.
type Transformer interface {
	Apply(t *records.Table) error
}

// Chain is an ordered list of transformers.
type Chain []Transformer

// Apply runs every transformer in order and stops at the first error.
func (c Chain) Apply(t *records.Table) error {
	for i, tr := range c {
		if err := tr.Apply(t); err != nil {
			return fmt.Errorf("transform #%d: %w", i, err)
		}
	}
	return nil
}
