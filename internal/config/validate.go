package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// IssueSeverity represents the severity of a configuration issue.
type IssueSeverity string

const (
	// SeverityError blocks the run.
	SeverityError IssueSeverity = "error"
	// SeverityWarning is reported but does not block the run.
	SeverityWarning IssueSeverity = "warning"
)

// Issue describes a single validation finding. Field is the flag name.
type Issue struct {
	Severity IssueSeverity
	Field    string
	Message  string
}

// Error implements the error interface so an Issue can be treated as a single
// error in contexts that expect error.
func (i Issue) Error() string {
	return fmt.Sprintf("%s at -%s: %s", i.Severity, i.Field, i.Message)
}

// KnownDrivers are the storage kinds the importer ships with.
var KnownDrivers = []string{"sqlite", "postgres", "mssql", "mysql"}

// Validate performs static checks over c. It does not open the database or
// read the source.
func (c *Config) Validate() []Issue {
	var issues []Issue
	add := func(sev IssueSeverity, field, format string, args ...any) {
		issues = append(issues, Issue{Severity: sev, Field: field, Message: fmt.Sprintf(format, args...)})
	}

	// Source.
	switch ext := strings.ToLower(filepath.Ext(c.Input)); {
	case strings.TrimSpace(c.Input) == "":
		add(SeverityError, "input", "input path must not be empty")
	case ext != ".xlsx" && ext != ".xlsm" && ext != ".csv" && ext != ".txt":
		add(SeverityError, "input", "unsupported input extension %q; use .xlsx, .xlsm or .csv", ext)
	}
	if d := c.CSVDelimiter; d != `\t` && utf8.RuneCountInString(d) != 1 {
		add(SeverityError, "csv_delimiter", "delimiter must be a single character, got %q", d)
	}
	if c.Sheet != "" && !strings.HasPrefix(strings.ToLower(filepath.Ext(c.Input)), ".xls") {
		add(SeverityWarning, "sheet", "sheet is ignored for non-xlsx input")
	}
	if c.HeaderMap != "" {
		if _, err := os.Stat(c.HeaderMap); errors.Is(err, fs.ErrNotExist) {
			add(SeverityError, "header_map", "header map file %q does not exist", c.HeaderMap)
		}
	}

	// Outputs.
	if strings.TrimSpace(c.CSVOut) == "" {
		add(SeverityWarning, "csv_out", "csv export is disabled")
	} else if samePath(c.CSVOut, c.Input) {
		add(SeverityError, "csv_out", "csv export would overwrite the input file")
	}
	if c.Skipped != "" && (samePath(c.Skipped, c.Input) || samePath(c.Skipped, c.CSVOut)) {
		add(SeverityError, "skipped", "skip file must differ from the input and the csv export")
	}

	// Store.
	known := false
	for _, k := range KnownDrivers {
		if c.DBDriver == k {
			known = true
			break
		}
	}
	if !known {
		add(SeverityError, "db_driver", "unknown driver %q; want one of %s", c.DBDriver, strings.Join(KnownDrivers, ", "))
	}
	if strings.TrimSpace(c.DSN) == "" {
		add(SeverityError, "dsn", "dsn must not be empty")
	} else if c.DBDriver == "sqlite" && samePath(c.DSN, c.Input) {
		add(SeverityError, "dsn", "sqlite database would overwrite the input file")
	}

	// Metrics.
	if strings.TrimSpace(c.Job) == "" {
		add(SeverityError, "job", "job must not be empty; it labels metrics and identifies runs")
	}
	switch c.MetricsBackend {
	case MetricsNone, "":
	case MetricsPushgateway:
		if c.PushgatewayURL == "" {
			add(SeverityError, "pushgateway_url", "pushgateway backend requires a URL")
		}
	case MetricsDatadog:
		if c.DatadogAddr == "" {
			add(SeverityError, "datadog_addr", "datadog backend requires an agent address")
		}
	default:
		add(SeverityError, "metrics_backend", "unknown metrics backend %q; want none, pushgateway or datadog", c.MetricsBackend)
	}

	return issues
}

// Errors returns only the error-severity issues.
func Errors(issues []Issue) []Issue {
	var out []Issue
	for _, i := range issues {
		if i.Severity == SeverityError {
			out = append(out, i)
		}
	}
	return out
}

func samePath(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return filepath.Clean(a) == filepath.Clean(b)
}
