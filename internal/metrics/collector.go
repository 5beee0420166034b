// Package metrics keeps in-process counters about served completions.
package metrics

import (
	"sort"
	"sync"
	"time"

	"github.com/VighneshDev1411/mockllm/pkg/types"
)

// Collector aggregates completion metrics. Safe for concurrent use.
type Collector struct {
	config        Config
	latencies     []time.Duration
	modelMetrics  map[string]*ModelMetrics
	finishReasons map[string]int64
	errorCounts   map[string]int64
	lastError     string
	lastErrorTime time.Time
	totalRequests int64
	totalErrors   int64
	startTime     time.Time
	mu            sync.RWMutex
}

// NewCollector creates a new metrics collector
func NewCollector(config Config) *Collector {
	if config.MaxDataPoints <= 0 {
		config.MaxDataPoints = DefaultConfig().MaxDataPoints
	}
	return &Collector{
		config:        config,
		latencies:     make([]time.Duration, 0, config.MaxDataPoints),
		modelMetrics:  make(map[string]*ModelMetrics),
		finishReasons: make(map[string]int64),
		errorCounts:   make(map[string]int64),
		startTime:     time.Now(),
	}
}

// RecordCompletion records a served completion
func (c *Collector) RecordCompletion(resp *types.CompletionResponse, latency time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.totalRequests++
	c.latencies = append(c.latencies, latency)

	m, ok := c.modelMetrics[resp.Model]
	if !ok {
		m = &ModelMetrics{ModelName: resp.Model}
		c.modelMetrics[resp.Model] = m
	}
	m.RequestCount++
	m.ChoiceCount += int64(len(resp.Choices))
	m.PromptTokens += int64(resp.Usage.PromptTokens)
	m.CompletionTokens += int64(resp.Usage.CompletionTokens)
	m.TotalLatency += latency
	m.AvgLatency = m.TotalLatency / time.Duration(m.RequestCount)
	m.LastUsed = time.Now()

	for _, choice := range resp.Choices {
		c.finishReasons[string(choice.FinishReason)]++
	}

	c.cleanup()
}

// RecordError records a rejected request. param is the failing field, or a
// short reason such as "body" when the payload could not be decoded.
func (c *Collector) RecordError(param, message string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.totalRequests++
	c.totalErrors++
	c.errorCounts[param]++
	c.lastError = message
	c.lastErrorTime = time.Now()
}

// Latency returns latency statistics over the retained samples
func (c *Collector) Latency() LatencyMetrics {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.latencyLocked()
}

func (c *Collector) latencyLocked() LatencyMetrics {
	if len(c.latencies) == 0 {
		return LatencyMetrics{}
	}

	sorted := make([]time.Duration, len(c.latencies))
	copy(sorted, c.latencies)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i] < sorted[j]
	})

	var total time.Duration
	for _, lat := range sorted {
		total += lat
	}

	return LatencyMetrics{
		P50:   calculatePercentile(sorted, 0.50),
		P90:   calculatePercentile(sorted, 0.90),
		P95:   calculatePercentile(sorted, 0.95),
		P99:   calculatePercentile(sorted, 0.99),
		Min:   sorted[0],
		Max:   sorted[len(sorted)-1],
		Mean:  total / time.Duration(len(sorted)),
		Count: int64(len(sorted)),
	}
}

// Throughput returns request throughput since start or the last reset
func (c *Collector) Throughput() ThroughputMetrics {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.throughputLocked()
}

func (c *Collector) throughputLocked() ThroughputMetrics {
	elapsed := time.Since(c.startTime)
	var rps float64
	if s := elapsed.Seconds(); s > 0 {
		rps = float64(c.totalRequests) / s
	}

	return ThroughputMetrics{
		RequestsPerSecond: rps,
		TotalRequests:     c.totalRequests,
		Period:            elapsed,
	}
}

// Errors returns rejection statistics
func (c *Collector) Errors() ErrorMetrics {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.errorsLocked()
}

func (c *Collector) errorsLocked() ErrorMetrics {
	rate := float64(0)
	if c.totalRequests > 0 {
		rate = float64(c.totalErrors) / float64(c.totalRequests) * 100
	}

	byParam := make(map[string]int64, len(c.errorCounts))
	for k, v := range c.errorCounts {
		byParam[k] = v
	}

	return ErrorMetrics{
		TotalErrors:   c.totalErrors,
		ErrorRate:     rate,
		ErrorsByParam: byParam,
		LastError:     c.lastError,
		LastErrorTime: c.lastErrorTime,
	}
}

// Snapshot returns a copy of every metric taken at a single instant
func (c *Collector) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()

	snap := Snapshot{
		Timestamp:  time.Now(),
		Latency:    c.latencyLocked(),
		Throughput: c.throughputLocked(),
		Errors:     c.errorsLocked(),
	}

	snap.FinishReasons = make(map[string]int64, len(c.finishReasons))
	for k, v := range c.finishReasons {
		snap.FinishReasons[k] = v
	}
	snap.Models = make(map[string]*ModelMetrics, len(c.modelMetrics))
	for name, m := range c.modelMetrics {
		mCopy := *m
		snap.Models[name] = &mCopy
	}
	return snap
}

// Reset clears all metrics
func (c *Collector) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.latencies = make([]time.Duration, 0, c.config.MaxDataPoints)
	c.modelMetrics = make(map[string]*ModelMetrics)
	c.finishReasons = make(map[string]int64)
	c.errorCounts = make(map[string]int64)
	c.lastError = ""
	c.lastErrorTime = time.Time{}
	c.totalRequests = 0
	c.totalErrors = 0
	c.startTime = time.Now()
}

// cleanup drops the oldest latency samples beyond MaxDataPoints
func (c *Collector) cleanup() {
	if over := len(c.latencies) - c.config.MaxDataPoints; over > 0 {
		c.latencies = c.latencies[over:]
	}
}

// calculatePercentile calculates the given percentile from sorted data
func calculatePercentile(sorted []time.Duration, percentile float64) time.Duration {
	if len(sorted) == 0 {
		return 0
	}
	index := int(float64(len(sorted)-1) * percentile)
	return sorted[index]
}
