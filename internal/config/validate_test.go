package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// hasIssue reports whether issues contains one with the given severity,
// field and message substring.
func hasIssue(t *testing.T, issues []Issue, sev IssueSeverity, field, msgSubstr string) bool {
	t.Helper()
	for _, iss := range issues {
		if iss.Severity == sev && iss.Field == field && strings.Contains(iss.Message, msgSubstr) {
			return true
		}
	}
	return false
}

func validConfig() Config {
	return Config{
		Input:          "sells.xlsx",
		CSVDelimiter:   ",",
		CSVOut:         "orders_normalized.csv",
		DBDriver:       "sqlite",
		DSN:            "orders_normalized.db",
		Job:            "orders_import",
		MetricsBackend: MetricsNone,
	}
}

func TestValidate_Cases(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(c *Config)
		sev     IssueSeverity
		field   string
		message string
	}{
		{"empty input", func(c *Config) { c.Input = " " }, SeverityError, "input", "must not be empty"},
		{"bad extension", func(c *Config) { c.Input = "orders.json" }, SeverityError, "input", "unsupported input extension"},
		{"long delimiter", func(c *Config) { c.CSVDelimiter = ";;" }, SeverityError, "csv_delimiter", "single character"},
		{"sheet for csv", func(c *Config) { c.Input = "a.csv"; c.Sheet = "s" }, SeverityWarning, "sheet", "ignored"},
		{"missing header map", func(c *Config) { c.HeaderMap = filepath.Join(os.TempDir(), "does-not-exist-ordersnf.json") }, SeverityError, "header_map", "does not exist"},
		{"export disabled", func(c *Config) { c.CSVOut = "" }, SeverityWarning, "csv_out", "disabled"},
		{"export overwrites input", func(c *Config) { c.Input = "x/a.csv"; c.CSVOut = "x/./a.csv" }, SeverityError, "csv_out", "overwrite the input"},
		{"skip file clash", func(c *Config) { c.Skipped = c.CSVOut }, SeverityError, "skipped", "must differ"},
		{"unknown driver", func(c *Config) { c.DBDriver = "oracle" }, SeverityError, "db_driver", "unknown driver"},
		{"empty dsn", func(c *Config) { c.DSN = "" }, SeverityError, "dsn", "must not be empty"},
		{"sqlite over input", func(c *Config) { c.DSN = c.Input }, SeverityError, "dsn", "overwrite the input"},
		{"empty job", func(c *Config) { c.Job = "" }, SeverityError, "job", "must not be empty"},
		{"unknown metrics", func(c *Config) { c.MetricsBackend = "statsd" }, SeverityError, "metrics_backend", "unknown metrics backend"},
		{"pushgateway without url", func(c *Config) { c.MetricsBackend = MetricsPushgateway }, SeverityError, "pushgateway_url", "requires a URL"},
		{"datadog without addr", func(c *Config) { c.MetricsBackend = MetricsDatadog }, SeverityError, "datadog_addr", "requires an agent address"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := validConfig()
			tt.mutate(&c)
			issues := c.Validate()
			if !hasIssue(t, issues, tt.sev, tt.field, tt.message) {
				t.Fatalf("Validate() = %v, want %s at %s containing %q", issues, tt.sev, tt.field, tt.message)
			}
		})
	}
}

func TestValidate_ValidMinimal(t *testing.T) {
	t.Parallel()

	c := validConfig()
	if issues := c.Validate(); len(issues) != 0 {
		t.Fatalf("Validate() = %v, want no issues", issues)
	}
}

func TestErrorsFiltersWarnings(t *testing.T) {
	t.Parallel()

	issues := []Issue{
		{Severity: SeverityWarning, Field: "csv_out", Message: "w"},
		{Severity: SeverityError, Field: "dsn", Message: "e"},
	}
	got := Errors(issues)
	if len(got) != 1 || got[0].Field != "dsn" {
		t.Fatalf("Errors() = %v, want the dsn error only", got)
	}
	if want := "error at -dsn: e"; got[0].Error() != want {
		t.Fatalf("Issue.Error() = %q, want %q", got[0].Error(), want)
	}
}
