package postgres

import (
	"errors"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestPlaceholders(t *testing.T) {
	t.Parallel()

	tests := []struct {
		n    int
		want string
	}{
		{0, ""},
		{1, "$1"},
		{3, "$1, $2, $3"},
	}
	for _, tt := range tests {
		if got := placeholders(tt.n); got != tt.want {
			t.Errorf("placeholders(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestMapIdent(t *testing.T) {
	t.Parallel()

	got := strings.Join(mapIdent([]string{"order_id", `we"ird`}), ",")
	if want := `"order_id","we""ird"`; got != want {
		t.Fatalf("mapIdent() = %q, want %q", got, want)
	}
}

func TestWrapPgErr(t *testing.T) {
	t.Parallel()

	pgErr := &pgconn.PgError{Code: "23503", Detail: `Key (client_id)=(9) is not present in table "clients".`}
	got := wrapPgErr(pgErr)
	if !errors.Is(got, pgErr) {
		t.Fatalf("wrapPgErr() lost the original error")
	}
	if !strings.Contains(got.Error(), "23503") || !strings.Contains(got.Error(), "is not present") {
		t.Fatalf("wrapPgErr() = %q, want SQLSTATE and detail", got)
	}

	plain := errors.New("boom")
	if wrapPgErr(plain) != plain {
		t.Fatalf("wrapPgErr(plain) should return the error unchanged")
	}
}

func TestCheckArity(t *testing.T) {
	t.Parallel()

	if err := checkArity(nil, nil); err == nil {
		t.Errorf("checkArity(nil) error = nil, want error")
	}
	if err := checkArity([]string{"a"}, []any{1, 2}); err == nil {
		t.Errorf("checkArity(mismatch) error = nil, want error")
	}
	if err := checkArity([]string{"a"}, []any{1}); err != nil {
		t.Errorf("checkArity(ok) error = %v", err)
	}
}
