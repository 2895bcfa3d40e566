package datadog

import (
	"reflect"
	"testing"

	"ordersnf/internal/metrics"
)

func TestNewBackendRequiresAddr(t *testing.T) {
	t.Parallel()

	b, err := NewBackend(Config{})
	if err == nil {
		t.Fatalf("NewBackend(empty) error = nil, want error")
	}
	if b != nil {
		t.Fatalf("NewBackend(empty) backend = %v, want nil", b)
	}
}

func TestNewBackendUDP(t *testing.T) {
	t.Parallel()

	b, err := NewBackend(Config{Addr: "127.0.0.1:8125", Namespace: "orders.", RunID: "r1"})
	if err != nil {
		t.Fatalf("NewBackend() error = %v", err)
	}
	b.IncCounter(metrics.RecordsTotal, 2, metrics.Labels{"kind": "inserted"})
	b.ObserveHistogram(metrics.StepDuration, 0.25, metrics.Labels{"step": "orders"})
	if err := b.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}
}

func TestZeroBackendIsNoop(t *testing.T) {
	t.Parallel()

	var b Backend
	b.IncCounter(metrics.StepTotal, 1, nil)
	b.ObserveHistogram(metrics.StepDuration, 1, nil)
	if err := b.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}
}

func TestLabelsToTags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   metrics.Labels
		want []string
	}{
		{name: "nil", in: nil, want: nil},
		{name: "sorted", in: metrics.Labels{"step": "orders", "job": "j", "status": "success"},
			want: []string{"job:j", "status:success", "step:orders"}},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := labelsToTags(tt.in); !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("labelsToTags() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGlobalTags(t *testing.T) {
	t.Parallel()

	got := globalTags(Config{GlobalTags: []string{"env:test"}, RunID: "abc"})
	want := []string{"env:test", "run_id:abc"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("globalTags() = %v, want %v", got, want)
	}
	if got := globalTags(Config{}); len(got) != 0 {
		t.Fatalf("globalTags(empty) = %v, want none", got)
	}
}
