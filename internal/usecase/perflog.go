package usecase

import (
	"sync"
	"time"

	"StockCast/internal/domain/models"
)

const defaultLogCapacity = 10000

// PerformanceLog is a bounded ring of per-request timing records. It is
// owned by the process, injected where needed, and lost on restart.
type PerformanceLog struct {
	mu      sync.Mutex
	records []models.PerformanceRecord
	cap     int
	subs    map[chan models.PerformanceRecord]struct{}
}

// NewPerformanceLog creates a log keeping at most capacity records.
func NewPerformanceLog(capacity int) *PerformanceLog {
	if capacity <= 0 {
		capacity = defaultLogCapacity
	}
	return &PerformanceLog{
		cap:  capacity,
		subs: make(map[chan models.PerformanceRecord]struct{}),
	}
}

// Append records one (path, elapsed) pair and notifies subscribers.
func (l *PerformanceLog) Append(path string, seconds float64) {
	rec := models.PerformanceRecord{Path: path, ProcessTime: seconds}

	l.mu.Lock()
	if len(l.records) == l.cap {
		copy(l.records, l.records[1:])
		l.records = l.records[:l.cap-1]
	}
	l.records = append(l.records, rec)
	for ch := range l.subs {
		select {
		case ch <- rec:
		default: // slow subscriber, drop
		}
	}
	l.mu.Unlock()
}

// Snapshot returns a copy of the recorded entries, oldest first.
func (l *PerformanceLog) Snapshot() []models.PerformanceRecord {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]models.PerformanceRecord, len(l.records))
	copy(out, l.records)
	return out
}

// Len returns the current number of records.
func (l *PerformanceLog) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.records)
}

// Subscribe returns a channel receiving every new record and a cancel func.
func (l *PerformanceLog) Subscribe() (<-chan models.PerformanceRecord, func()) {
	ch := make(chan models.PerformanceRecord, 16)

	l.mu.Lock()
	l.subs[ch] = struct{}{}
	l.mu.Unlock()

	cancel := func() {
		l.mu.Lock()
		delete(l.subs, ch)
		l.mu.Unlock()
	}
	return ch, cancel
}

// AccuracyLog keeps the most recent accuracy measurements for reporting.
type AccuracyLog struct {
	mu      sync.Mutex
	samples []models.AccuracySample
	cap     int
}

// NewAccuracyLog creates a log keeping at most capacity samples.
func NewAccuracyLog(capacity int) *AccuracyLog {
	if capacity <= 0 {
		capacity = defaultLogCapacity
	}
	return &AccuracyLog{cap: capacity}
}

// Append records one accuracy sample.
func (l *AccuracyLog) Append(horizon int, accuracy float64) {
	l.mu.Lock()
	if len(l.samples) == l.cap {
		copy(l.samples, l.samples[1:])
		l.samples = l.samples[:l.cap-1]
	}
	l.samples = append(l.samples, models.AccuracySample{
		At:       time.Now(),
		Horizon:  horizon,
		Accuracy: accuracy,
	})
	l.mu.Unlock()
}

// Snapshot returns a copy of the samples, oldest first.
func (l *AccuracyLog) Snapshot() []models.AccuracySample {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]models.AccuracySample, len(l.samples))
	copy(out, l.samples)
	return out
}
