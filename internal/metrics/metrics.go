// Package metrics provides a small, backend-agnostic abstraction for recording
// operational metrics from the orders import.
//
// It exposes a narrow interface (Backend) for counters and timings, with a
// global, pluggable backend that defaults to a no-op implementation so
// metrics are always safe to call. Concrete systems live in subpackages
// (prompush, datadog).
package metrics

import "time"

// Metric names emitted by the import.
const (
	StepTotal     = "import_step_total"
	StepDuration  = "import_step_duration_seconds"
	RecordsTotal  = "import_records_total"
	EntitiesTotal = "import_entities_total"
)

// Record kinds counted under RecordsTotal. KindDuplicates counts repeated
// order ids dropped while loading the sheet; KindExisting counts orders the
// store already held.
const (
	KindProcessed     = "processed"
	KindDuplicates    = "duplicates"
	KindInserted      = "inserted"
	KindExisting      = "existing"
	KindSkipped       = "skipped"
	KindModelsCreated = "models_created"
)

// Labels are string key/value pairs attached to a metric.
type Labels map[string]string

// Backend is the minimal interface for metrics backends.
type Backend interface {
	// IncCounter increments a counter by delta.
	IncCounter(name string, delta float64, labels Labels)
	// ObserveHistogram records a value in a latency/duration style metric.
	ObserveHistogram(name string, value float64, labels Labels)
	// Flush pushes or flushes metrics, if the backend needs it (e.g. Pushgateway).
	Flush() error
}

// nopBackend is used by default so metrics are optional.
type nopBackend struct{}

func (nopBackend) IncCounter(name string, delta float64, labels Labels)       {}
func (nopBackend) ObserveHistogram(name string, value float64, labels Labels) {}
func (nopBackend) Flush() error                                               { return nil }

var backend Backend = nopBackend{}

// Nop returns the backend that discards everything, the package default.
func Nop() Backend { return nopBackend{} }

// SetBackend installs a concrete backend. Passing nil keeps the existing backend.
func SetBackend(b Backend) {
	if b == nil {
		return
	}
	backend = b
}

// Flush delegates to the current backend.
func Flush() error {
	return backend.Flush()
}

// RecordStep measures latency and success/failure of one import step
// (load, export, schema, entities, orders).
func RecordStep(job, step string, err error, d time.Duration) {
	status := "success"
	if err != nil {
		status = "failure"
	}

	lbls := Labels{
		"job":    job,
		"step":   step,
		"status": status,
	}

	backend.IncCounter(StepTotal, 1, lbls)
	backend.ObserveHistogram(StepDuration, d.Seconds(), lbls)
}

// RecordRow increments a record-level counter for the given job and kind
// (one of the Kind constants).
func RecordRow(job, kind string, delta int64) {
	if delta <= 0 {
		return
	}
	backend.IncCounter(RecordsTotal, float64(delta), Labels{
		"job":  job,
		"kind": kind,
	})
}

// RecordEntities counts rows newly written to an entity table.
func RecordEntities(job, table string, delta int64) {
	if delta <= 0 {
		return
	}
	backend.IncCounter(EntitiesTotal, float64(delta), Labels{
		"job":   job,
		"table": table,
	})
}
