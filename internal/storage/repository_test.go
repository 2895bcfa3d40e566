package storage

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"ordersnf/internal/ddl"
)

// fakeRepo is a minimal Repository implementation for tests. Exec records
// statements; the data methods are inert.
type fakeRepo struct {
	closed bool
	stmts  []string
}

func (f *fakeRepo) Exec(ctx context.Context, sql string) error {
	f.stmts = append(f.stmts, sql)
	return nil
}
func (f *fakeRepo) InsertIgnore(context.Context, string, []string, []any) (bool, error) {
	return true, nil
}
func (f *fakeRepo) InsertReturningID(context.Context, string, string, []string, []any) (int64, error) {
	return 1, nil
}
func (f *fakeRepo) LookupID(context.Context, string, string, []string, []any) (int64, bool, error) {
	return 0, false, nil
}
func (f *fakeRepo) Count(context.Context, string) (int64, error) { return 0, nil }
func (f *fakeRepo) Select(context.Context, string, []string, string) ([][]any, error) {
	return nil, nil
}
func (f *fakeRepo) Close() { f.closed = true }

// TestRegisterAndNew_Success verifies that registering a backend enables New()
// to return the corresponding repository.
func TestRegisterAndNew_Success(t *testing.T) {
	t.Parallel()

	kind := "fake"
	Register(kind, func(ctx context.Context, cfg Config) (Repository, error) {
		return &fakeRepo{}, nil
	})

	repo, err := New(context.Background(), Config{Kind: kind})
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	if repo == nil {
		t.Fatalf("New returned nil repo")
	}

	// Ensure ListKinds contains the registered kind.
	kinds := ListKinds()
	found := false
	for _, k := range kinds {
		if k == kind {
			found = true
			break
		}
	}
	if !found {
		t.Fatalf("registered kind %q not present in ListKinds: %v", kind, kinds)
	}
}

// TestNew_Unsupported verifies that unsupported kinds return a helpful error.
func TestNew_Unsupported(t *testing.T) {
	t.Parallel()

	_, err := New(context.Background(), Config{Kind: "does-not-exist"})
	if err == nil {
		t.Fatalf("expected error for unsupported kind")
	}
	if !errors.Is(err, ErrUnknownKind) {
		t.Fatalf("error = %v, want ErrUnknownKind", err)
	}
	if !strings.Contains(err.Error(), `"does-not-exist"`) {
		t.Fatalf("error = %q, want it to name the kind", err)
	}
}

// TestRegister_Override verifies that re-registering a kind overrides the
// previous factory (useful for tests and dynamic wiring).
func TestRegister_Override(t *testing.T) {
	t.Parallel()

	kind := "override"
	calls := 0

	Register(kind, func(ctx context.Context, cfg Config) (Repository, error) {
		calls++
		return &fakeRepo{}, nil
	})
	Register(kind, func(ctx context.Context, cfg Config) (Repository, error) {
		calls += 10
		return &fakeRepo{}, nil
	})

	_, err := New(context.Background(), Config{Kind: kind})
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	if calls != 10 { // only the second factory should have been used
		t.Fatalf("factory call count = %d, want 10", calls)
	}
}

// TestListKinds_Snapshot performs a shallow sanity check that ListKinds returns
// a copy (mutations by caller do not affect internal registry).
func TestListKinds_Snapshot(t *testing.T) {
	t.Parallel()

	k := "snap"
	Register(k, func(ctx context.Context, cfg Config) (Repository, error) { return &fakeRepo{}, nil })

	a := ListKinds()
	if len(a) == 0 {
		t.Fatalf("ListKinds empty after registration")
	}
	// Mutate the returned slice; registry should be unaffected.
	a[0] = "mutated"

	b := ListKinds()
	if reflect.DeepEqual(a, b) {
		t.Fatalf("ListKinds returned same slice; want snapshot copy")
	}
}

// TestRegister_AllowsErrors shows factories can return errors that bubble up.
func TestRegister_AllowsErrors(t *testing.T) {
	t.Parallel()

	kind := "errkind"
	want := errors.New("boom")

	Register(kind, func(ctx context.Context, cfg Config) (Repository, error) {
		return nil, want
	})

	_, err := New(context.Background(), Config{Kind: kind})
	if !errors.Is(err, want) {
		t.Fatalf("want %v, got %v", want, err)
	}
}

type plainDialect struct{}

func (plainDialect) Name() string                          { return "plain" }
func (plainDialect) QuoteIdent(id string) string           { return id }
func (plainDialect) ColumnType(ddl.ColumnDef, bool) string { return "TEXT" }
func (plainDialect) AutoIncrementPK(ddl.ColumnDef) string  { return "SERIAL PRIMARY KEY" }

// TestResetSchema verifies that ResetSchema dispatches to the bootstrapper
// registered for the kind and that ApplyRecreate drops before it creates.
func TestResetSchema(t *testing.T) {
	t.Parallel()

	tables := []ddl.TableDef{
		{Name: "parent", Columns: []ddl.ColumnDef{{Name: "id", Kind: ddl.KindInteger, PrimaryKey: true, AutoIncrement: true}}},
		{Name: "child", Columns: []ddl.ColumnDef{{Name: "id", Kind: ddl.KindInteger, PrimaryKey: true}}},
	}

	RegisterDDL("plain", func(ctx context.Context, repo Repository, tables []ddl.TableDef) error {
		return ApplyRecreate(ctx, repo, tables, plainDialect{})
	})

	repo := &fakeRepo{}
	if err := ResetSchema(context.Background(), "plain", repo, tables); err != nil {
		t.Fatalf("ResetSchema() error = %v", err)
	}
	want := []string{
		"DROP TABLE IF EXISTS child;",
		"DROP TABLE IF EXISTS parent;",
	}
	if len(repo.stmts) != 4 {
		t.Fatalf("statements = %d, want 4: %q", len(repo.stmts), repo.stmts)
	}
	if !reflect.DeepEqual(repo.stmts[:2], want) {
		t.Fatalf("drops = %q, want %q", repo.stmts[:2], want)
	}
	if !strings.HasPrefix(repo.stmts[2], "CREATE TABLE parent") {
		t.Fatalf("first create = %q, want parent", repo.stmts[2])
	}

	if err := ResetSchema(context.Background(), "no-ddl", repo, tables); err == nil {
		t.Fatalf("ResetSchema() for unregistered kind error = nil, want error")
	}
}
