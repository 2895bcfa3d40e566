// Package ddl contains SQLite-specific helpers for generating DDL.
//
// SQLite uses type affinities, so the mapping is small: integers to INTEGER,
// reals to REAL and everything else to TEXT.
package ddl

import gddl "ordersnf/internal/ddl"

// MapType maps a logical column kind into a SQLite column type.
func MapType(kind gddl.Kind) string {
	switch kind {
	case gddl.KindInteger:
		return "INTEGER"
	case gddl.KindReal:
		return "REAL"
	default:
		return "TEXT"
	}
}
