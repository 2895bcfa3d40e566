// Package ddl contains Postgres-specific helpers for generating DDL.
package ddl

import gddl "ordersnf/internal/ddl"

// MapType maps a logical column kind into a Postgres SQL type.
//
//	integer -> BIGINT
//	real    -> DOUBLE PRECISION
//	text    -> TEXT
func MapType(kind gddl.Kind) string {
	switch kind {
	case gddl.KindInteger:
		return "BIGINT"
	case gddl.KindReal:
		return "DOUBLE PRECISION"
	default:
		return "TEXT"
	}
}
