// Package metrics keeps in-process counters for the catalog server.
package metrics

import (
	"sync/atomic"
	"time"
)

type Counter struct {
	value atomic.Uint64
}

func (c *Counter) Inc() { c.value.Add(1) }

func (c *Counter) Add(n uint64) { c.value.Add(n) }

func (c *Counter) Load() uint64 { return c.value.Load() }

func (c *Counter) Reset() { c.value.Store(0) }

// Timer measures one operation and folds it into a latency counter.
type Timer struct {
	start time.Time
}

func StartTimer() Timer {
	return Timer{start: time.Now()}
}

func (t Timer) Elapsed() time.Duration {
	return time.Since(t.start)
}

// ObserveInto adds the elapsed microseconds to total and returns the elapsed time.
func (t Timer) ObserveInto(total *Counter) time.Duration {
	d := t.Elapsed()
	total.Add(uint64(d.Microseconds()))
	return d
}

// Process-wide counters. *Micros counters accumulate latency.
var (
	Requests        Counter
	ServerErrors    Counter
	CacheHits       Counter
	CacheMisses     Counter
	RequestMicros   Counter
	PageQueries     Counter
	PageQueryMicros Counter
)

// Snapshot reads every counter. Values are read one by one, not atomically as a set.
func Snapshot() map[string]uint64 {
	return map[string]uint64{
		"requests":      Requests.Load(),
		"server_errors": ServerErrors.Load(),
		"cache_hits":    CacheHits.Load(),
		"cache_misses":  CacheMisses.Load(),
		"request_us":    RequestMicros.Load(),
		"page_queries":  PageQueries.Load(),
		"page_query_us": PageQueryMicros.Load(),
	}
}

// ObserveResponse counts one served request timed by t.
func ObserveResponse(status int, t Timer) time.Duration {
	d := t.ObserveInto(&RequestMicros)
	Requests.Inc()
	if status >= 500 {
		ServerErrors.Inc()
	}
	return d
}
