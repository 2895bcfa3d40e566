package ddl

import (
	"testing"

	gddl "ordersnf/internal/ddl"
)

func TestMapType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		kind  gddl.Kind
		keyed bool
		want  string
	}{
		{gddl.KindInteger, false, "BIGINT"},
		{gddl.KindInteger, true, "BIGINT"},
		{gddl.KindReal, false, "DOUBLE"},
		{gddl.KindText, false, "TEXT"},
		{gddl.KindText, true, "VARCHAR(150) CHARACTER SET utf8mb4 COLLATE utf8mb4_bin"},
		{"", false, "TEXT"},
	}
	for _, tt := range tests {
		if got := MapType(tt.kind, tt.keyed); got != tt.want {
			t.Errorf("MapType(%q, %v) = %q, want %q", tt.kind, tt.keyed, got, tt.want)
		}
	}
}
