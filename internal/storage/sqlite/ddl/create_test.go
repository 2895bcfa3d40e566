package ddl

import (
	"strings"
	"testing"

	"ordersnf/internal/schema"
)

// TestQuoteIdent verifies that quoteIdent applies SQLite-style double-quoted
// identifier quoting and correctly escapes embedded double quotes.
func TestQuoteIdent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "simple", in: "name", want: `"name"`},
		{name: "empty", in: "", want: `""`},
		{name: "with space", in: "user name", want: `"user name"`},
		{name: "with double quote", in: `weird"name`, want: `"weird""name"`},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := quoteIdent(tt.in); got != tt.want {
				t.Fatalf("quoteIdent(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

// TestBuildCreateTableSQLSchema renders the store's tables and checks the
// SQLite-specific fragments.
func TestBuildCreateTableSQLSchema(t *testing.T) {
	t.Parallel()

	clients, err := BuildCreateTableSQL(schema.Clients)
	if err != nil {
		t.Fatalf("BuildCreateTableSQL(clients) error = %v", err)
	}
	for _, want := range []string{
		`CREATE TABLE "clients" (`,
		`"client_id" INTEGER PRIMARY KEY AUTOINCREMENT`,
		`"client_name" TEXT NOT NULL`,
		`UNIQUE ("client_name", "client_email", "client_phone")`,
	} {
		if !strings.Contains(clients, want) {
			t.Errorf("clients DDL missing %q:\n%s", want, clients)
		}
	}

	orders, err := BuildCreateTableSQL(schema.Orders)
	if err != nil {
		t.Fatalf("BuildCreateTableSQL(orders) error = %v", err)
	}
	for _, want := range []string{
		`"order_id" INTEGER NOT NULL`,
		`PRIMARY KEY ("order_id")`,
		`"price" REAL`,
		`FOREIGN KEY ("warehouse_id") REFERENCES "warehouses" ("warehouse_id")`,
	} {
		if !strings.Contains(orders, want) {
			t.Errorf("orders DDL missing %q:\n%s", want, orders)
		}
	}
	if strings.Contains(orders, `"price" REAL NOT NULL`) {
		t.Errorf("price must be nullable:\n%s", orders)
	}
}
