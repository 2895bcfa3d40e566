package ddl

import (
	"strings"
	"testing"

	"ordersnf/internal/schema"
)

func TestPgIdent(t *testing.T) {
	t.Parallel()

	if got := pgIdent(`a"b`); got != `"a""b"` {
		t.Fatalf("pgIdent() = %q", got)
	}
}

// TestBuildCreateTableSQLSchema checks the Postgres-specific fragments of the
// rendered store tables.
func TestBuildCreateTableSQLSchema(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		sql  func() (string, error)
		want []string
	}{
		{
			name: "models",
			sql:  func() (string, error) { return BuildCreateTableSQL(schema.Models) },
			want: []string{
				`"model_id" BIGINT GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY`,
				`"color" TEXT NOT NULL`,
				`UNIQUE ("model_name", "category", "brand", "size", "color")`,
			},
		},
		{
			name: "warehouses",
			sql:  func() (string, error) { return BuildCreateTableSQL(schema.Warehouses) },
			want: []string{
				`"warehouse_capacity" BIGINT,`,
				`"warehouse_shelves" BIGINT,`,
			},
		},
		{
			name: "orders",
			sql:  func() (string, error) { return BuildCreateTableSQL(schema.Orders) },
			want: []string{
				`"price" DOUBLE PRECISION,`,
				`FOREIGN KEY ("model_id") REFERENCES "models" ("model_id")`,
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := tt.sql()
			if err != nil {
				t.Fatalf("BuildCreateTableSQL() error = %v", err)
			}
			for _, w := range tt.want {
				if !strings.Contains(got, w) {
					t.Errorf("DDL missing %q:\n%s", w, got)
				}
			}
		})
	}
}
