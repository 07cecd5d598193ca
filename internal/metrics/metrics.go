package metrics

import (
	"sync/atomic"
	"time"
)

// MetricID indexes one counter or histogram slot.
type MetricID uint16

const (
	// MetricLoginSuccess counts successful logins.
	MetricLoginSuccess MetricID = iota
	// MetricLoginFailure counts logins rejected by the backend or transport.
	MetricLoginFailure
	// MetricLoginRejected counts logins rejected client-side before any network call.
	MetricLoginRejected
	// MetricLogout counts explicit logout calls that cleared a session.
	MetricLogout
	// MetricSessionRehydrated counts completed rehydrations, authenticated or not.
	MetricSessionRehydrated
	// MetricSessionRevoked counts 401-triggered session clears.
	MetricSessionRevoked
	// MetricRequestFailure counts non-401 error responses from the backend.
	MetricRequestFailure
	// MetricNetworkFailure counts requests that produced no response at all.
	MetricNetworkFailure
	// MetricPushRegistered counts device tokens saved to the backend.
	MetricPushRegistered
	// MetricPushPermissionDenied counts push flows aborted on permission denial.
	MetricPushPermissionDenied
	// MetricPushSaveFailure counts failed token-save calls.
	MetricPushSaveFailure
	// MetricRequestLatency is the API round-trip latency histogram.
	MetricRequestLatency
	// MetricIDCount is the number of defined metric IDs.
	MetricIDCount
)

const (
	histBucketCount = 8
	cacheLineSize   = 64
)

type metricHistogram struct {
	buckets [histBucketCount]uint64
}

type paddedCounter struct {
	value uint64
	_     [cacheLineSize - 8]byte
}

// Config controls which metric paths are live.
type Config struct {
	Enabled       bool
	EnableLatency bool
}

// Metrics holds the counter and histogram storage. A nil or disabled
// Metrics is safe to use; every operation becomes a no-op.
type Metrics struct {
	enabled       bool
	enableLatency bool
	counters      [MetricIDCount]paddedCounter
	histograms    [MetricIDCount]metricHistogram
}

// Snapshot is a point-in-time deep copy of all metric values.
type Snapshot struct {
	Counters   map[MetricID]uint64
	Histograms map[MetricID][]uint64
}

// New creates a Metrics instance for the given config.
func New(cfg Config) *Metrics {
	return &Metrics{
		enabled:       cfg.Enabled,
		enableLatency: cfg.Enabled && cfg.EnableLatency,
	}
}

// Enabled reports whether counters are live.
func (m *Metrics) Enabled() bool {
	return m != nil && m.enabled
}

// LatencyEnabled reports whether the latency histogram is live.
func (m *Metrics) LatencyEnabled() bool {
	return m != nil && m.enableLatency
}

// Inc atomically increments one counter.
func (m *Metrics) Inc(id MetricID) {
	if m == nil || !m.enabled || id >= MetricIDCount {
		return
	}
	atomic.AddUint64(&m.counters[id].value, 1)
}

// Observe records one request round-trip duration. Only
// [MetricRequestLatency] carries a histogram.
func (m *Metrics) Observe(id MetricID, d time.Duration) {
	if m == nil || !m.enabled || !m.enableLatency || id >= MetricIDCount {
		return
	}
	if id != MetricRequestLatency {
		return
	}

	b := bucketIndex(d)
	atomic.AddUint64(&m.histograms[id].buckets[b], 1)
}

// Value reads one counter.
func (m *Metrics) Value(id MetricID) uint64 {
	if m == nil || id >= MetricIDCount {
		return 0
	}
	return atomic.LoadUint64(&m.counters[id].value)
}

// Snapshot copies every live counter and histogram.
func (m *Metrics) Snapshot() Snapshot {
	if m == nil || !m.enabled {
		return Snapshot{
			Counters:   map[MetricID]uint64{},
			Histograms: map[MetricID][]uint64{},
		}
	}

	s := Snapshot{
		Counters:   make(map[MetricID]uint64, int(MetricIDCount)),
		Histograms: make(map[MetricID][]uint64, 1),
	}

	for id := MetricID(0); id < MetricIDCount; id++ {
		s.Counters[id] = atomic.LoadUint64(&m.counters[id].value)
	}

	if m.enableLatency {
		buckets := make([]uint64, histBucketCount)
		for i := 0; i < histBucketCount; i++ {
			buckets[i] = atomic.LoadUint64(&m.histograms[MetricRequestLatency].buckets[i])
		}
		s.Histograms[MetricRequestLatency] = buckets
	}

	return s
}

// BucketBounds returns the upper bound in milliseconds of each histogram
// bucket; the final bucket is unbounded and reported as -1.
func BucketBounds() []int64 {
	return []int64{5, 10, 25, 50, 100, 250, 500, -1}
}

func bucketIndex(d time.Duration) int {
	ms := d.Milliseconds()

	switch {
	case ms <= 5:
		return 0
	case ms <= 10:
		return 1
	case ms <= 25:
		return 2
	case ms <= 50:
		return 3
	case ms <= 100:
		return 4
	case ms <= 250:
		return 5
	case ms <= 500:
		return 6
	default:
		return 7
	}
}
