package sparseknn

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
//
// Example Prometheus integration:
//
//	type PrometheusCollector struct {
//	    extendCounter   prometheus.Counter
//	    extendHistogram prometheus.Histogram
//	}
//
//	func (p *PrometheusCollector) RecordExtend(rows, entries int, duration time.Duration, err error) {
//	    p.extendCounter.Inc()
//	    // ... record error state, duration, etc.
//	}
type MetricsCollector interface {
	// RecordExtend is called after each graph extension.
	// rows is the number of output rows processed, entries the number of
	// emitted triplets, duration the total time taken; err is nil on success.
	RecordExtend(rows, entries int, duration time.Duration, err error)

	// RecordLowerRank is called after each rank reduction.
	// kept and dropped count input entries retained and discarded.
	RecordLowerRank(rows, kept, dropped int, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordExtend(int, int, time.Duration, error)         {}
func (NoopMetricsCollector) RecordLowerRank(int, int, int, time.Duration, error) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	ExtendCount        atomic.Int64
	ExtendErrors       atomic.Int64
	ExtendEntries      atomic.Int64
	ExtendTotalNanos   atomic.Int64
	LowerRankCount     atomic.Int64
	LowerRankErrors    atomic.Int64
	LowerRankKept      atomic.Int64
	LowerRankDropped   atomic.Int64
	LowerRankTotalNano atomic.Int64
}

// RecordExtend implements MetricsCollector.
func (b *BasicMetricsCollector) RecordExtend(rows, entries int, duration time.Duration, err error) {
	b.ExtendCount.Add(1)
	b.ExtendEntries.Add(int64(entries))
	b.ExtendTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.ExtendErrors.Add(1)
	}
}

// RecordLowerRank implements MetricsCollector.
func (b *BasicMetricsCollector) RecordLowerRank(rows, kept, dropped int, duration time.Duration, err error) {
	b.LowerRankCount.Add(1)
	b.LowerRankKept.Add(int64(kept))
	b.LowerRankDropped.Add(int64(dropped))
	b.LowerRankTotalNano.Add(duration.Nanoseconds())
	if err != nil {
		b.LowerRankErrors.Add(1)
	}
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector counters.
type BasicMetricsStats struct {
	ExtendCount      int64
	ExtendErrors     int64
	ExtendEntries    int64
	ExtendAvgNanos   int64
	LowerRankCount   int64
	LowerRankErrors  int64
	LowerRankKept    int64
	LowerRankDropped int64
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		ExtendCount:      b.ExtendCount.Load(),
		ExtendErrors:     b.ExtendErrors.Load(),
		ExtendEntries:    b.ExtendEntries.Load(),
		ExtendAvgNanos:   b.getAvgExtendNanos(),
		LowerRankCount:   b.LowerRankCount.Load(),
		LowerRankErrors:  b.LowerRankErrors.Load(),
		LowerRankKept:    b.LowerRankKept.Load(),
		LowerRankDropped: b.LowerRankDropped.Load(),
	}
}

func (b *BasicMetricsCollector) getAvgExtendNanos() int64 {
	count := b.ExtendCount.Load()
	if count == 0 {
		return 0
	}
	return b.ExtendTotalNanos.Load() / count
}
