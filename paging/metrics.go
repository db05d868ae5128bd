package paging

import (
	"log/slog"
	"math"
	"slices"
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

// Histogram tracks a sample distribution with percentile support
type Histogram struct {
	samples []float64 // Insertion order, oldest first
	mu      sync.RWMutex
	maxSize int // Maximum samples to retain
}

// NewHistogram creates a new histogram with a max sample size
func NewHistogram(maxSize int) *Histogram {
	if maxSize <= 0 {
		maxSize = 10000 // Default: keep last 10k samples
	}
	return &Histogram{
		samples: make([]float64, 0, maxSize),
		maxSize: maxSize,
	}
}

// Record adds a sample
func (h *Histogram) Record(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()

	// If at capacity, drop the oldest sample
	if len(h.samples) >= h.maxSize {
		copy(h.samples, h.samples[1:])
		h.samples = h.samples[:len(h.samples)-1]
	}

	h.samples = append(h.samples, value)
}

// Percentile calculates the given percentile (0-100).
// Samples are sorted in a copy so Record keeps dropping the oldest one.
func (h *Histogram) Percentile(p float64) float64 {
	h.mu.RLock()
	samples := slices.Clone(h.samples)
	h.mu.RUnlock()

	if len(samples) == 0 {
		return 0
	}
	sort.Float64s(samples)

	rank := (p / 100.0) * float64(len(samples)-1)
	lower := int(math.Floor(rank))
	upper := int(math.Ceil(rank))

	if lower == upper {
		return samples[lower]
	}

	// Linear interpolation between lower and upper
	weight := rank - float64(lower)
	return samples[lower]*(1-weight) + samples[upper]*weight
}

// Mean calculates the average sample
func (h *Histogram) Mean() float64 {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if len(h.samples) == 0 {
		return 0
	}

	sum := 0.0
	for _, v := range h.samples {
		sum += v
	}
	return sum / float64(len(h.samples))
}

// Max returns the largest sample
func (h *Histogram) Max() float64 {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if len(h.samples) == 0 {
		return 0
	}

	max := h.samples[0]
	for _, v := range h.samples {
		if v > max {
			max = v
		}
	}
	return max
}

// Count returns the number of samples
func (h *Histogram) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.samples)
}

// Reset clears all samples
func (h *Histogram) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.samples = h.samples[:0]
}

// HistogramSnapshot holds current percentile statistics
type HistogramSnapshot struct {
	Count int
	Max   float64
	Mean  float64
	P50   float64
	P95   float64
	P99   float64
}

// Snapshot captures current histogram statistics
func (h *Histogram) Snapshot() HistogramSnapshot {
	return HistogramSnapshot{
		Count: h.Count(),
		Max:   h.Max(),
		Mean:  h.Mean(),
		P50:   h.Percentile(50),
		P95:   h.Percentile(95),
		P99:   h.Percentile(99),
	}
}

// Metrics tracks simulator activity across runs. All methods are safe for
// concurrent use, so one instance can back parallel comparisons.
type Metrics struct {
	runs                atomic.Uint64
	failedRuns          atomic.Uint64
	references          atomic.Uint64
	hits                atomic.Uint64
	faults              atomic.Uint64
	evictions           atomic.Uint64
	invariantViolations atomic.Uint64

	runLatency *Histogram // Run duration in microseconds
	scanLength *Histogram // References inspected per victim selection

	startTime time.Time
}

// NewMetrics creates a new metrics tracker
func NewMetrics() *Metrics {
	return &Metrics{
		startTime:  time.Now(),
		runLatency: NewHistogram(10000),
		scanLength: NewHistogram(10000),
	}
}

// RecordReferences records the hits and faults of a completed run
func (m *Metrics) RecordReferences(hits, faults int) {
	m.references.Add(uint64(hits + faults))
	m.hits.Add(uint64(hits))
	m.faults.Add(uint64(faults))
}

// RecordEviction records an eviction and the length of the scan that chose it
func (m *Metrics) RecordEviction(scanned int) {
	m.evictions.Add(1)
	m.scanLength.Record(float64(scanned))
}

// RecordRun records a finished run
func (m *Metrics) RecordRun(duration time.Duration, err error) {
	m.runs.Add(1)
	m.runLatency.Record(float64(duration.Microseconds()))
	if err == nil {
		return
	}
	m.failedRuns.Add(1)
	if IsInvariantViolation(err) {
		m.invariantViolations.Add(1)
	}
}

// Getters

func (m *Metrics) GetRuns() uint64 {
	return m.runs.Load()
}

func (m *Metrics) GetFailedRuns() uint64 {
	return m.failedRuns.Load()
}

func (m *Metrics) GetReferences() uint64 {
	return m.references.Load()
}

func (m *Metrics) GetHits() uint64 {
	return m.hits.Load()
}

func (m *Metrics) GetFaults() uint64 {
	return m.faults.Load()
}

func (m *Metrics) GetEvictions() uint64 {
	return m.evictions.Load()
}

func (m *Metrics) GetInvariantViolations() uint64 {
	return m.invariantViolations.Load()
}

func (m *Metrics) GetHitRate() float64 {
	total := m.references.Load()
	if total == 0 {
		return 0.0
	}
	return float64(m.hits.Load()) / float64(total)
}

func (m *Metrics) GetUptime() time.Duration {
	return time.Since(m.startTime)
}

// GetRunLatency returns snapshot of run latency distribution
func (m *Metrics) GetRunLatency() HistogramSnapshot {
	return m.runLatency.Snapshot()
}

// GetScanLength returns snapshot of victim scan length distribution
func (m *Metrics) GetScanLength() HistogramSnapshot {
	return m.scanLength.Snapshot()
}

// LogMetrics logs all metrics using structured logging
func (m *Metrics) LogMetrics(logger *slog.Logger) {
	runLatency := m.GetRunLatency()
	scanLength := m.GetScanLength()

	logger.Info("Simulator Metrics",
		slog.Group("runs",
			slog.Uint64("total", m.GetRuns()),
			slog.Uint64("failed", m.GetFailedRuns()),
			slog.Uint64("invariant_violations", m.GetInvariantViolations()),
		),
		slog.Group("references",
			slog.Uint64("total", m.GetReferences()),
			slog.Uint64("hits", m.GetHits()),
			slog.Uint64("faults", m.GetFaults()),
			slog.Float64("hit_rate", m.GetHitRate()),
			slog.Uint64("evictions", m.GetEvictions()),
		),
		slog.Group("run_latency_us",
			slog.Int("count", runLatency.Count),
			slog.Float64("mean", runLatency.Mean),
			slog.Float64("p50", runLatency.P50),
			slog.Float64("p99", runLatency.P99),
		),
		slog.Group("scan_length",
			slog.Float64("mean", scanLength.Mean),
			slog.Float64("p95", scanLength.P95),
			slog.Float64("max", scanLength.Max),
		),
		slog.Duration("uptime", m.GetUptime()),
	)
}
