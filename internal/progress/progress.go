// Package progress tracks per-stage items/sec and ETA for long-running
// search stages, and formats that into stderr progress lines with ISO
// time, stage name, counts, and an ETA derived from the observed rate.
package progress

import (
	"fmt"
	"sync"
	"time"
)

// Tracker accumulates completed-item counts for one pipeline stage and
// derives a throughput-based ETA. Safe for concurrent use: workers call Add
// as they finish units of work, the orchestrator calls Snapshot/Line to
// report.
type Tracker struct {
	mu    sync.Mutex
	stage string
	total int64 // 0 means unknown/unbounded
	done  int64
	start time.Time
}

// NewTracker starts a tracker for a named stage. total is the expected item
// count; pass 0 if it is not known in advance (ETA is then omitted).
func NewTracker(stage string, total int64) *Tracker {
	return &Tracker{stage: stage, total: total, start: time.Now()}
}

// Add records n additional completed items (n may be negative to correct
// an overcount, but never drives done below zero).
func (t *Tracker) Add(n int64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.done += n
	if t.done < 0 {
		t.done = 0
	}
}

// Snapshot returns the current done/total counts, the items/sec rate
// observed since the tracker started, and the estimated remaining
// duration. eta is zero if total is unknown or the rate is zero.
func (t *Tracker) Snapshot() (done, total int64, rate float64, eta time.Duration) {
	t.mu.Lock()
	done, total = t.done, t.total
	elapsed := time.Since(t.start)
	t.mu.Unlock()

	if elapsed <= 0 {
		return done, total, 0, 0
	}
	rate = float64(done) / elapsed.Seconds()
	if total > 0 && rate > 0 {
		remaining := total - done
		if remaining < 0 {
			remaining = 0
		}
		eta = time.Duration(float64(remaining)/rate) * time.Second
	}
	return done, total, rate, eta
}

// Line formats one stderr progress line: ISO-8601 time, stage name, counts,
// and ETA.
func (t *Tracker) Line() string {
	done, total, rate, eta := t.Snapshot()
	ts := time.Now().UTC().Format(time.RFC3339Nano)
	if total > 0 {
		return fmt.Sprintf("%s stage=%s done=%d total=%d rate=%.1f/s eta=%s",
			ts, t.stage, done, total, rate, eta.Truncate(time.Millisecond))
	}
	return fmt.Sprintf("%s stage=%s done=%d rate=%.1f/s", ts, t.stage, done, rate)
}
