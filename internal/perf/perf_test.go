package perf

import (
	"testing"
	"time"
)

func resetPerfState() {
	statsMu.Lock()
	statsMap = map[string]*stat{}
	statsMu.Unlock()

	countersMu.Lock()
	counterMap = map[string]*counter{}
	countersMu.Unlock()

	lastLog.Store(0)
}

func withPerfConfig(t *testing.T, enabledValue bool, interval time.Duration) {
	t.Helper()
	prevEnabled := enabled.Load()
	prevInterval := logInterval.Load()
	enabled.Store(enabledValue)
	logInterval.Store(int64(interval))
	resetPerfState()

	t.Cleanup(func() {
		enabled.Store(prevEnabled)
		logInterval.Store(prevInterval)
		resetPerfState()
	})
}

func TestComputeP95(t *testing.T) {
	samples := []time.Duration{
		1 * time.Millisecond,
		2 * time.Millisecond,
		3 * time.Millisecond,
		4 * time.Millisecond,
		5 * time.Millisecond,
	}
	if got := computeP95(samples, len(samples), true); got != 5*time.Millisecond {
		t.Fatalf("expected p95=5ms, got %s", got)
	}

	partial := []time.Duration{9 * time.Millisecond, 1 * time.Millisecond, 5 * time.Millisecond}
	if got := computeP95(partial, 3, false); got != 9*time.Millisecond {
		t.Fatalf("expected p95=9ms for partial window, got %s", got)
	}

	if got := computeP95(nil, 0, false); got != 0 {
		t.Fatalf("expected p95=0 for empty window, got %s", got)
	}
}

func TestRecordAndSnapshot(t *testing.T) {
	withPerfConfig(t, true, 0)

	Record("op", 2*time.Millisecond)
	Record("op", 4*time.Millisecond)
	Count("events", 3)

	stats, counters := Snapshot()
	if len(stats) != 1 {
		t.Fatalf("expected 1 stat, got %d", len(stats))
	}
	if stats[0].Name != "op" || stats[0].Count != 2 {
		t.Fatalf("unexpected stat: %+v", stats[0])
	}
	if stats[0].Min != 2*time.Millisecond || stats[0].Max != 4*time.Millisecond {
		t.Fatalf("unexpected min/max: %+v", stats[0])
	}
	if len(counters) != 1 || counters[0].Name != "events" || counters[0].Value != 3 {
		t.Fatalf("unexpected counters: %+v", counters)
	}

	// Snapshot resets.
	stats, counters = Snapshot()
	if len(stats) != 0 || len(counters) != 0 {
		t.Fatalf("expected empty snapshot after reset, got %d stats %d counters", len(stats), len(counters))
	}
}

func TestDisabledRecordsNothing(t *testing.T) {
	withPerfConfig(t, false, 0)

	Record("op", time.Millisecond)
	Count("events", 1)

	stats, counters := Snapshot()
	if len(stats) != 0 || len(counters) != 0 {
		t.Fatalf("expected nothing recorded while disabled")
	}
}

func TestTimeReturnsNoopWhenDisabled(t *testing.T) {
	withPerfConfig(t, false, 0)
	done := Time("op")
	done()

	stats, _ := Snapshot()
	if len(stats) != 0 {
		t.Fatalf("expected no samples while disabled")
	}
}
