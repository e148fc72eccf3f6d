package datrie

import (
	"sync/atomic"
	"time"
)

// QueryKind identifies a query operation for metrics collection.
type QueryKind uint8

const (
	QueryExactMatch QueryKind = iota
	QueryPrefixSearch
	QueryTraverse
)

func (k QueryKind) String() string {
	switch k {
	case QueryExactMatch:
		return "exact_match"
	case QueryPrefixSearch:
		return "prefix_search"
	case QueryTraverse:
		return "traverse"
	default:
		return "unknown"
	}
}

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
type MetricsCollector interface {
	// RecordBuild is called after each build. numUnits is 0 on failure.
	RecordBuild(numKeys, numUnits int, duration time.Duration, err error)

	// RecordQuery is called after each query operation. hit reports whether
	// the query produced a match.
	RecordQuery(kind QueryKind, duration time.Duration, hit bool)

	// RecordSave is called after each save operation.
	RecordSave(bytes int, duration time.Duration, err error)

	// RecordLoad is called after each load operation.
	RecordLoad(bytes int, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordBuild(int, int, time.Duration, error) {}
func (NoopMetricsCollector) RecordQuery(QueryKind, time.Duration, bool) {}
func (NoopMetricsCollector) RecordSave(int, time.Duration, error)       {}
func (NoopMetricsCollector) RecordLoad(int, time.Duration, error)       {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	BuildCount      atomic.Int64
	BuildErrors     atomic.Int64
	BuildTotalNanos atomic.Int64
	QueryCount      atomic.Int64
	QueryHits       atomic.Int64
	QueryTotalNanos atomic.Int64
	SaveCount       atomic.Int64
	SaveErrors      atomic.Int64
	LoadCount       atomic.Int64
	LoadErrors      atomic.Int64
}

func (c *BasicMetricsCollector) RecordBuild(numKeys, numUnits int, duration time.Duration, err error) {
	c.BuildCount.Add(1)
	c.BuildTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		c.BuildErrors.Add(1)
	}
}

func (c *BasicMetricsCollector) RecordQuery(kind QueryKind, duration time.Duration, hit bool) {
	c.QueryCount.Add(1)
	c.QueryTotalNanos.Add(duration.Nanoseconds())
	if hit {
		c.QueryHits.Add(1)
	}
}

func (c *BasicMetricsCollector) RecordSave(bytes int, duration time.Duration, err error) {
	c.SaveCount.Add(1)
	if err != nil {
		c.SaveErrors.Add(1)
	}
}

func (c *BasicMetricsCollector) RecordLoad(bytes int, duration time.Duration, err error) {
	c.LoadCount.Add(1)
	if err != nil {
		c.LoadErrors.Add(1)
	}
}

// Stats is a snapshot of BasicMetricsCollector counters.
type Stats struct {
	BuildCount    int64
	BuildErrors   int64
	BuildAvgNanos int64
	QueryCount    int64
	QueryHits     int64
	QueryAvgNanos int64
	SaveCount     int64
	SaveErrors    int64
	LoadCount     int64
	LoadErrors    int64
}

// GetStats returns a consistent-enough snapshot of the collected counters.
func (c *BasicMetricsCollector) GetStats() Stats {
	s := Stats{
		BuildCount:  c.BuildCount.Load(),
		BuildErrors: c.BuildErrors.Load(),
		QueryCount:  c.QueryCount.Load(),
		QueryHits:   c.QueryHits.Load(),
		SaveCount:   c.SaveCount.Load(),
		SaveErrors:  c.SaveErrors.Load(),
		LoadCount:   c.LoadCount.Load(),
		LoadErrors:  c.LoadErrors.Load(),
	}
	if s.BuildCount > 0 {
		s.BuildAvgNanos = c.BuildTotalNanos.Load() / s.BuildCount
	}
	if s.QueryCount > 0 {
		s.QueryAvgNanos = c.QueryTotalNanos.Load() / s.QueryCount
	}
	return s
}
