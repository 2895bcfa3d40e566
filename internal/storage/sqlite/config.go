// Package sqlite implements a SQLite-backed storage.Repository.
package sqlite

import "strings"

// Config holds SQLite repository configuration derived from storage.Config.
type Config struct {
	// DSN is a SQLite connection string or file path, e.g.:
	//   "orders_normalized.db"
	//   "file:orders.db?cache=shared"
	//   ":memory:"
	DSN string

	// Fresh removes the database file before opening it. In-memory DSNs
	// are always fresh.
	Fresh bool
}

// filePath extracts the database file from a DSN. ok is false for in-memory
// databases.
func filePath(dsn string) (path string, ok bool) {
	dsn = strings.TrimSpace(dsn)
	if dsn == "" || dsn == ":memory:" {
		return "", false
	}
	path, query, _ := strings.Cut(strings.TrimPrefix(dsn, "file:"), "?")
	if path == "" || path == ":memory:" || strings.Contains(query, "mode=memory") {
		return "", false
	}
	return path, true
}
