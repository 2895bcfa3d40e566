// Package ddl contains MSSQL-specific helpers for generating DDL.
package ddl

import gddl "ordersnf/internal/ddl"

// keyedTextType bounds text columns that take part in a UNIQUE constraint;
// SQL Server rejects NVARCHAR(MAX) in index keys and caps nonclustered keys
// at 1700 bytes, which five NVARCHAR(150) columns fit. BIN2 compares code
// points, so keys stay case and accent sensitive.
const keyedTextType = "NVARCHAR(150) COLLATE Latin1_General_100_BIN2"

// MapType maps a logical column kind into a SQL Server column type.
// Unknown kinds fall back to NVARCHAR(MAX).
func MapType(kind gddl.Kind, keyed bool) string {
	switch kind {
	case gddl.KindInteger:
		return "BIGINT"
	case gddl.KindReal:
		return "FLOAT"
	default:
		if keyed {
			return keyedTextType
		}
		return "NVARCHAR(MAX)"
	}
}
