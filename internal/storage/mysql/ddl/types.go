// Package ddl contains MySQL-specific helpers for generating DDL.
package ddl

import gddl "ordersnf/internal/ddl"

// keyedTextType bounds text columns inside a UNIQUE key; InnoDB cannot index
// TEXT without a prefix length. Five utf8mb4 VARCHAR(150) columns stay under
// the 3072-byte key limit. The binary collation keeps keys case and accent
// sensitive.
const keyedTextType = "VARCHAR(150) CHARACTER SET utf8mb4 COLLATE utf8mb4_bin"

// MapType maps a logical column kind into a MySQL column type.
func MapType(kind gddl.Kind, keyed bool) string {
	switch kind {
	case gddl.KindInteger:
		return "BIGINT"
	case gddl.KindReal:
		return "DOUBLE"
	default:
		if keyed {
			return keyedTextType
		}
		return "TEXT"
	}
}
