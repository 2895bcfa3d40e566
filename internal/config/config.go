// Package config centralizes the importer's configuration. Every tunable is a
// command-line flag whose default is seeded from an environment variable, so
// `-help` shows all knobs and containers can configure the run through the
// environment alone.
//
// For tests, use LoadFromArgs to keep them hermetic:
//
//	fs := flag.NewFlagSet("test", flag.ContinueOnError)
//	getenv := func(k string) string { return testEnv[k] }
//	cfg, err := config.LoadFromArgs(fs, getenv, []string{"-db_driver=mysql"})
package config

import (
	"flag"
	"os"
	"strings"
	"unicode/utf8"

	"ordersnf/internal/parser"
)

// Metrics backend names accepted by -metrics_backend.
const (
	MetricsNone        = "none"
	MetricsPushgateway = "pushgateway"
	MetricsDatadog     = "datadog"
)

// Config holds all process configuration derived from flags and environment
// variables. It is a plain value and is not mutated after LoadFromArgs.
type Config struct {
	// Source.
	Input        string // spreadsheet path (.xlsx, .xlsm, .csv)
	Sheet        string // xlsx worksheet; empty selects the first one
	CSVDelimiter string // delimiter for .csv sources
	HeaderMap    string // optional JSON file overriding the header rename table

	// Outputs.
	CSVOut  string // flat export; empty disables it
	Skipped string // skip-file CSV; empty disables it

	// Store.
	DBDriver string // sqlite, postgres, mssql or mysql
	DSN      string // driver-specific DSN; for sqlite the database file path

	// Metrics.
	Job            string
	MetricsBackend string
	PushgatewayURL string
	DatadogAddr    string

	Verbose      bool
	ValidateOnly bool // check configuration and exit
}

// LoadFromArgs defines the importer flags on fs, seeds their defaults from
// getenv and parses args.
//
// Precedence:
//  1. Environment values seed each flag's default.
//  2. Explicit CLI flags (in args) override the seeded defaults.
func LoadFromArgs(fs *flag.FlagSet, getenv func(string) string, args []string) (*Config, error) {
	cfg := &Config{}

	envOrDefaultFn := func(k, d string) string {
		if v := getenv(k); v != "" {
			return v
		}
		return d
	}
	boolEnvOrDefaultFn := func(k string, d bool) bool {
		return parseBool(getenv(k), d)
	}

	// Source
	fs.StringVar(&cfg.Input, "input", envOrDefaultFn("INPUT_PATH", "sells.xlsx"), "Path to the orders spreadsheet (.xlsx, .xlsm or .csv)")
	fs.StringVar(&cfg.Sheet, "sheet", getenv("INPUT_SHEET"), "Worksheet to read; empty means the first sheet")
	fs.StringVar(&cfg.CSVDelimiter, "csv_delimiter", envOrDefaultFn("CSV_DELIMITER", ","), "Field delimiter for CSV sources")
	fs.StringVar(&cfg.HeaderMap, "header_map", getenv("HEADER_MAP"), "JSON file mapping source headers to field names; empty uses the built-in table")

	// Outputs
	fs.StringVar(&cfg.CSVOut, "csv_out", envOrDefaultFn("CSV_OUT", "orders_normalized.csv"), "Path of the flat CSV export; empty disables it")
	fs.StringVar(&cfg.Skipped, "skipped", getenv("SKIPPED_PATH"), "CSV file listing skipped orders; empty disables it")

	// Store
	fs.StringVar(&cfg.DBDriver, "db_driver", envOrDefaultFn("DB_DRIVER", "sqlite"), "Database driver: sqlite, postgres, mssql or mysql")
	fs.StringVar(&cfg.DSN, "dsn", envOrDefaultFn("DB_DSN", "orders_normalized.db"), "Database DSN; for sqlite the database file")

	// Metrics
	fs.StringVar(&cfg.Job, "job", envOrDefaultFn("JOB_NAME", "orders_import"), "Job name used for metrics labels")
	fs.StringVar(&cfg.MetricsBackend, "metrics_backend", envOrDefaultFn("METRICS_BACKEND", MetricsNone), "Metrics backend: none, pushgateway or datadog")
	fs.StringVar(&cfg.PushgatewayURL, "pushgateway_url", envOrDefaultFn("PUSHGATEWAY_URL", "http://localhost:9091"), "Prometheus Pushgateway base URL")
	fs.StringVar(&cfg.DatadogAddr, "datadog_addr", envOrDefaultFn("DD_AGENT_ADDR", "127.0.0.1:8125"), "DogStatsD address")

	fs.BoolVar(&cfg.Verbose, "v", boolEnvOrDefaultFn("VERBOSE", false), "Log every model created")
	fs.BoolVar(&cfg.ValidateOnly, "validate", false, "Validate configuration and exit")

	if args == nil {
		args = []string{}
	}
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load is the production entry point: process flags, os.Getenv and os.Args.
func Load() (*Config, error) {
	return LoadFromArgs(flag.CommandLine, os.Getenv, os.Args[1:])
}

// Comma returns the CSV delimiter rune, ',' when unset.
func (c *Config) Comma() rune {
	if c.CSVDelimiter == "" {
		return ','
	}
	if c.CSVDelimiter == `\t` {
		return '\t'
	}
	r, _ := utf8.DecodeRuneInString(c.CSVDelimiter)
	return r
}

// ParserOptions returns the source reader settings.
func (c *Config) ParserOptions() parser.Options {
	return parser.Options{Sheet: c.Sheet, Comma: c.Comma()}
}

// parseBool interprets common truthy/falsey forms ("1/0", "true/false",
// "yes/no", "on/off", case-insensitive); anything else yields d.
func parseBool(v string, d bool) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	}
	return d
}
