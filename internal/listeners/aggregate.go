// Package listeners implements SampleListener/TestCollectionListener
// capabilities consumed by a compiled SamplePackage (spec.md §4.5, §6).
// AggregateListener is grounded directly on the teacher's
// pkg/core/tools/performance_engine/metrics.go MetricsCollector/
// ExecutionMetrics, generalized from a single fixed run to per-sampler-name
// buckets and fed by the worker runtime's SampleOccurred notifications
// instead of a captive LoadTestRunner.
package listeners

import (
	"sort"
	"sync"
	"time"

	"github.com/blackcoderx/surge/internal/core"
	"github.com/blackcoderx/surge/internal/result"
)

// SamplerStats mirrors ExecutionMetrics, scoped to one sampler name.
type SamplerStats struct {
	Total       int
	Success     int
	Fail        int
	SuccessRate float64
	AvgLatency  time.Duration
	Min         time.Duration
	Max         time.Duration
	P50         time.Duration
	P95         time.Duration
	P99         time.Duration
	RPS         float64
}

// AggregateListener accumulates per-sampler-name latency/success
// statistics across an entire test run (JMeter's Summariser/aggregate
// report, per SPEC_FULL.md §4's supplemented features).
type AggregateListener struct {
	mu        sync.Mutex
	latencies map[string][]time.Duration
	successes map[string]int
	start     time.Time
}

func NewAggregateListener() *AggregateListener {
	return &AggregateListener{
		latencies: map[string][]time.Duration{},
		successes: map[string]int{},
		start:     time.Now(),
	}
}

func (l *AggregateListener) SampleStarted(core.Sampler) {}
func (l *AggregateListener) SampleEnded(*result.SampleResult) {}

func (l *AggregateListener) SampleOccurred(res *result.SampleResult) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.latencies[res.Name] = append(l.latencies[res.Name], res.Elapsed())
	if res.Success {
		l.successes[res.Name]++
	}
}

// Finalize computes SamplerStats for every sampler name observed so far,
// per the teacher's MetricsCollector.Finalize.
func (l *AggregateListener) Finalize() map[string]SamplerStats {
	l.mu.Lock()
	defer l.mu.Unlock()

	elapsed := time.Since(l.start).Seconds()
	out := make(map[string]SamplerStats, len(l.latencies))
	for name, samples := range l.latencies {
		if len(samples) == 0 {
			continue
		}
		sorted := append([]time.Duration(nil), samples...)
		sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

		var total time.Duration
		min, max := sorted[0], sorted[0]
		for _, d := range sorted {
			total += d
			if d < min {
				min = d
			}
			if d > max {
				max = d
			}
		}
		count := len(sorted)
		success := l.successes[name]

		stats := SamplerStats{
			Total:       count,
			Success:     success,
			Fail:        count - success,
			SuccessRate: float64(success) / float64(count) * 100,
			AvgLatency:  total / time.Duration(count),
			Min:         min,
			Max:         max,
			P50:         percentile(sorted, 0.50),
			P95:         percentile(sorted, 0.95),
			P99:         percentile(sorted, 0.99),
		}
		if elapsed > 0 {
			stats.RPS = float64(count) / elapsed
		}
		out[name] = stats
	}
	return out
}

func percentile(sorted []time.Duration, p float64) time.Duration {
	idx := int(float64(len(sorted)) * p)
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}
