// Command importer loads an orders spreadsheet into the normalized store and
// writes a flat CSV copy of the cleaned records.
//
// Usage:
//
//	importer -input sells.xlsx -db_driver sqlite -dsn orders_normalized.db
//
// Every flag can also be set through the environment; see -help.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"

	"ordersnf/internal/config"
	"ordersnf/internal/metrics"
	"ordersnf/internal/metrics/datadog"
	"ordersnf/internal/metrics/prompush"

	// register all backends with the storage factory.
	_ "ordersnf/internal/storage/all"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fatalf("config: %v", err)
	}

	hasError := false
	for _, iss := range cfg.Validate() {
		fmt.Fprintf(os.Stderr, "%s: -%s: %s\n", iss.Severity, iss.Field, iss.Message)
		if iss.Severity == config.SeverityError {
			hasError = true
		}
	}
	if hasError {
		fatalf("configuration is invalid")
	}
	if cfg.ValidateOnly {
		log.Printf("configuration is valid")
		os.Exit(0)
	}

	runID := uuid.NewString()
	flush := setupMetrics(cfg, runID)

	start := time.Now()
	sum, err := run(context.Background(), cfg, runID)
	flush()
	if err != nil {
		fatalf("importer: run_id=%s: %v", runID, err)
	}

	log.Printf("importer: done run_id=%s orders=%d skipped=%d in %s; store %s=%s, export %s",
		runID, sum.Inserted, sum.Skipped, time.Since(start).Truncate(time.Millisecond),
		cfg.DBDriver, cfg.DSN, cfg.CSVOut)
}

// setupMetrics installs the configured metrics backend and returns the
// function that flushes it. A backend that cannot be created leaves metrics
// disabled.
func setupMetrics(cfg *config.Config, runID string) func() {
	var b metrics.Backend
	switch cfg.MetricsBackend {
	case config.MetricsPushgateway:
		pb, err := prompush.NewBackend(cfg.Job, cfg.PushgatewayURL, runID)
		if err != nil {
			log.Printf("metrics: failed to init prom push backend: %v; using nop", err)
			return func() {}
		}
		log.Printf("metrics: url=%v, backend=%v, job_name=%v", cfg.PushgatewayURL, cfg.MetricsBackend, cfg.Job)
		b = pb
	case config.MetricsDatadog:
		db, err := datadog.NewBackend(datadog.Config{
			Addr:       cfg.DatadogAddr,
			Namespace:  "orders.",
			GlobalTags: []string{"job:" + cfg.Job},
			RunID:      runID,
		})
		if err != nil {
			log.Printf("metrics: failed to init datadog backend: %v; using nop", err)
			return func() {}
		}
		log.Printf("metrics: addr=%v, backend=%v, job_name=%v", cfg.DatadogAddr, cfg.MetricsBackend, cfg.Job)
		b = db
	default:
		if cfg.Verbose {
			log.Printf("metrics: disabled (backend=%q)", cfg.MetricsBackend)
		}
		metrics.SetBackend(metrics.Nop())
		return func() {}
	}

	metrics.SetBackend(b)
	return func() {
		if err := metrics.Flush(); err != nil {
			log.Printf("metrics: flush error: %v", err)
		}
	}
}

func fatalf(format string, a ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", a...)
	os.Exit(1)
}
