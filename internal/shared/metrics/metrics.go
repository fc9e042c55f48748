package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/gin-gonic/gin"
)

var (
	analysisStartedTotal   atomic.Uint64
	analysisCompletedTotal atomic.Uint64
	analysisFailedTotal    atomic.Uint64

	analysisDuration = newHistogram([]float64{10, 25, 50, 100, 250, 500, 1000, 2500, 5000, 10000})

	tierMu     sync.Mutex
	tierCounts = map[string]uint64{}
)

// IncAnalysisStarted increments the started counter.
func IncAnalysisStarted() {
	analysisStartedTotal.Add(1)
}

// IncAnalysisCompleted increments the completed counter and the
// per-tier verdict counter.
func IncAnalysisCompleted(tier string) {
	analysisCompletedTotal.Add(1)
	tierMu.Lock()
	tierCounts[tier]++
	tierMu.Unlock()
}

// IncAnalysisFailed increments the failed counter.
func IncAnalysisFailed() {
	analysisFailedTotal.Add(1)
}

// ObserveAnalysisDurationMs records an analysis duration in milliseconds.
func ObserveAnalysisDurationMs(value float64) {
	if value < 0 {
		value = 0
	}
	analysisDuration.Observe(value)
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/plain; version=0.0.4")
		c.String(http.StatusOK, Render())
	}
}

// Render renders metrics in Prometheus text format.
func Render() string {
	var buf bytes.Buffer
	writeCounter(&buf, "analysis_started_total", "Total analyses started", analysisStartedTotal.Load())
	writeCounter(&buf, "analysis_completed_total", "Total analyses completed", analysisCompletedTotal.Load())
	writeCounter(&buf, "analysis_failed_total", "Total analyses failed", analysisFailedTotal.Load())
	writeTierCounters(&buf)
	writeHistogram(&buf, "analysis_duration_ms", "Analysis duration in milliseconds", analysisDuration.Snapshot())
	return buf.String()
}

func writeCounter(buf *bytes.Buffer, name, help string, value uint64) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	fmt.Fprintf(buf, "%s %d\n", name, value)
}

func writeTierCounters(buf *bytes.Buffer) {
	tierMu.Lock()
	tiers := make([]string, 0, len(tierCounts))
	for tier := range tierCounts {
		tiers = append(tiers, tier)
	}
	sort.Strings(tiers)
	fmt.Fprintf(buf, "# HELP analysis_tier_total Analyses by risk tier\n")
	fmt.Fprintf(buf, "# TYPE analysis_tier_total counter\n")
	for _, tier := range tiers {
		fmt.Fprintf(buf, "analysis_tier_total{tier=%q} %d\n", tier, tierCounts[tier])
	}
	tierMu.Unlock()
}

type histogram struct {
	mu      sync.Mutex
	bounds  []float64
	buckets []uint64
	count   uint64
	sum     float64
}

type histogramSnapshot struct {
	bounds  []float64
	buckets []uint64
	count   uint64
	sum     float64
}

func newHistogram(bounds []float64) *histogram {
	return &histogram{
		bounds:  bounds,
		buckets: make([]uint64, len(bounds)),
	}
}

func (h *histogram) Observe(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	h.sum += value
	for i, bound := range h.bounds {
		if value <= bound {
			h.buckets[i]++
		}
	}
}

func (h *histogram) Snapshot() histogramSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	buckets := make([]uint64, len(h.buckets))
	copy(buckets, h.buckets)
	return histogramSnapshot{
		bounds:  h.bounds,
		buckets: buckets,
		count:   h.count,
		sum:     h.sum,
	}
}

func writeHistogram(buf *bytes.Buffer, name, help string, snap histogramSnapshot) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s histogram\n", name)
	for i, bound := range snap.bounds {
		fmt.Fprintf(buf, "%s_bucket{le=%q} %d\n", name, strconv.FormatFloat(bound, 'f', -1, 64), snap.buckets[i])
	}
	fmt.Fprintf(buf, "%s_bucket{le=\"+Inf\"} %d\n", name, snap.count)
	fmt.Fprintf(buf, "%s_sum %g\n", name, snap.sum)
	fmt.Fprintf(buf, "%s_count %d\n", name, snap.count)
}
