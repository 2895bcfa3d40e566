package sqldb

import (
	"context"
	"database/sql"
	"strings"
	"testing"

	_ "modernc.org/sqlite"

	gddl "ordersnf/internal/ddl"
)

type quoteDialect struct{}

func (quoteDialect) Name() string                           { return "test" }
func (quoteDialect) QuoteIdent(id string) string            { return `"` + id + `"` }
func (quoteDialect) ColumnType(gddl.ColumnDef, bool) string { return "TEXT" }
func (quoteDialect) AutoIncrementPK(gddl.ColumnDef) string  { return "INTEGER PRIMARY KEY" }

func isUnique(err error) bool { return strings.Contains(err.Error(), "UNIQUE constraint failed") }

// newTestStore opens a private in-memory SQLite database with a single
// people table.
func newTestStore(t *testing.T, f Flavor) *Store {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("sql.Open() error = %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	f.Dialect = quoteDialect{}
	s := NewStore(db, f)
	ctx := context.Background()
	if err := s.Exec(ctx, `CREATE TABLE "people" (
		"id" INTEGER PRIMARY KEY AUTOINCREMENT,
		"name" TEXT NOT NULL,
		"city" TEXT NOT NULL,
		"age" INTEGER,
		UNIQUE ("name", "city"))`); err != nil {
		t.Fatalf("create table: %v", err)
	}
	return s
}

func TestStoreInsertIgnoreVerbs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		flavor Flavor
	}{
		{name: "ignore verb", flavor: Flavor{Name: "sqlite", IgnoreInsert: "INSERT OR IGNORE"}},
		{name: "catch unique violation", flavor: Flavor{Name: "sqlite", IsUniqueViolation: isUnique}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := newTestStore(t, tt.flavor)
			ctx := context.Background()
			cols := []string{"name", "city", "age"}

			ok, err := s.InsertIgnore(ctx, "people", cols, []any{"ann", "oslo", int64(30)})
			if err != nil || !ok {
				t.Fatalf("first InsertIgnore() = %v, %v; want true, nil", ok, err)
			}
			ok, err = s.InsertIgnore(ctx, "people", cols, []any{"ann", "oslo", nil})
			if err != nil || ok {
				t.Fatalf("duplicate InsertIgnore() = %v, %v; want false, nil", ok, err)
			}
			n, err := s.Count(ctx, "people")
			if err != nil || n != 1 {
				t.Fatalf("Count() = %d, %v; want 1", n, err)
			}
		})
	}
}

func TestStoreInsertIgnoreSurfacesOtherErrors(t *testing.T) {
	t.Parallel()

	s := newTestStore(t, Flavor{Name: "sqlite", IsUniqueViolation: isUnique})
	_, err := s.InsertIgnore(context.Background(), "people", []string{"name", "city"}, []any{nil, "oslo"})
	if err == nil {
		t.Fatalf("InsertIgnore() with NULL name error = nil, want NOT NULL error")
	}
	if !strings.HasPrefix(err.Error(), "sqlite: insert people:") {
		t.Fatalf("error = %q, want sqlite: insert people prefix", err)
	}
}

func TestStoreInsertReturningIDAndLookup(t *testing.T) {
	t.Parallel()

	s := newTestStore(t, Flavor{Name: "sqlite"})
	ctx := context.Background()
	cols := []string{"name", "city"}

	id1, err := s.InsertReturningID(ctx, "people", "id", cols, []any{"ann", "oslo"})
	if err != nil {
		t.Fatalf("InsertReturningID() error = %v", err)
	}
	id2, err := s.InsertReturningID(ctx, "people", "id", cols, []any{"bob", "rome"})
	if err != nil {
		t.Fatalf("InsertReturningID() error = %v", err)
	}
	if id1 == id2 {
		t.Fatalf("ids not distinct: %d, %d", id1, id2)
	}

	got, found, err := s.LookupID(ctx, "people", "id", cols, []any{"bob", "rome"})
	if err != nil || !found || got != id2 {
		t.Fatalf("LookupID(bob) = %d, %v, %v; want %d, true, nil", got, found, err, id2)
	}
	_, found, err = s.LookupID(ctx, "people", "id", cols, []any{"bob", "oslo"})
	if err != nil || found {
		t.Fatalf("LookupID(missing) found = %v, err = %v; want false, nil", found, err)
	}
	if _, _, err := s.LookupID(ctx, "people", "id", cols, []any{"bob"}); err == nil {
		t.Fatalf("LookupID() with short values error = nil, want arity error")
	}
}

func TestStoreSelect(t *testing.T) {
	t.Parallel()

	s := newTestStore(t, Flavor{Name: "sqlite", IgnoreInsert: "INSERT OR IGNORE"})
	ctx := context.Background()
	cols := []string{"name", "city", "age"}
	for _, v := range [][]any{{"bob", "rome", nil}, {"ann", "oslo", int64(30)}} {
		if _, err := s.InsertIgnore(ctx, "people", cols, v); err != nil {
			t.Fatalf("InsertIgnore() error = %v", err)
		}
	}

	rows, err := s.Select(ctx, "people", []string{"id", "name", "age"}, "id")
	if err != nil {
		t.Fatalf("Select() error = %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("len(rows) = %d, want 2", len(rows))
	}
	if rows[0][1] != "bob" || rows[0][2] != nil {
		t.Fatalf("rows[0] = %v, want bob with NULL age", rows[0])
	}
	if rows[1][2] != int64(30) {
		t.Fatalf("rows[1] age = %#v, want int64(30)", rows[1][2])
	}

	if _, err := s.Select(ctx, "people", nil, ""); err == nil {
		t.Fatalf("Select() with no columns error = nil, want error")
	}
}

func TestStoreExecBlankIsNoop(t *testing.T) {
	t.Parallel()

	s := newTestStore(t, Flavor{Name: "sqlite"})
	if err := s.Exec(context.Background(), "  "); err != nil {
		t.Fatalf("Exec(blank) error = %v", err)
	}
}
