package ddl

import (
	"strings"
	"testing"

	"ordersnf/internal/schema"
)

func TestBuildCreateTableSQLSchema(t *testing.T) {
	t.Parallel()

	got, err := BuildCreateTableSQL(schema.Warehouses)
	if err != nil {
		t.Fatalf("BuildCreateTableSQL(warehouses) error = %v", err)
	}
	for _, want := range []string{
		"CREATE TABLE `warehouses` (",
		"`warehouse_id` BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY",
		"`warehouse_name` VARCHAR(150) CHARACTER SET utf8mb4 COLLATE utf8mb4_bin NOT NULL",
		"`warehouse_address` VARCHAR(150) CHARACTER SET utf8mb4 COLLATE utf8mb4_bin NOT NULL",
		"`warehouse_capacity` BIGINT,",
		"UNIQUE (`warehouse_name`, `warehouse_address`)",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("warehouses DDL missing %q:\n%s", want, got)
		}
	}
	if q := quoteIdent("a`b"); q != "`a``b`" {
		t.Errorf("quoteIdent() = %q", q)
	}
}
