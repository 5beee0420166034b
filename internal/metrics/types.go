package metrics

import "time"

// LatencyMetrics tracks request latency statistics
type LatencyMetrics struct {
	P50   time.Duration
	P90   time.Duration
	P95   time.Duration
	P99   time.Duration
	Min   time.Duration
	Max   time.Duration
	Mean  time.Duration
	Count int64
}

// ThroughputMetrics tracks request throughput
type ThroughputMetrics struct {
	RequestsPerSecond float64
	TotalRequests     int64
	Period            time.Duration
}

// ErrorMetrics tracks rejected requests by the field or reason that failed
type ErrorMetrics struct {
	TotalErrors   int64
	ErrorRate     float64
	ErrorsByParam map[string]int64
	LastError     string
	LastErrorTime time.Time
}

// ModelMetrics tracks per-model statistics
type ModelMetrics struct {
	ModelName        string
	RequestCount     int64
	ChoiceCount      int64
	PromptTokens     int64
	CompletionTokens int64
	TotalLatency     time.Duration
	AvgLatency       time.Duration
	LastUsed         time.Time
}

// Snapshot is the collector state at a point in time
type Snapshot struct {
	Timestamp     time.Time
	Latency       LatencyMetrics
	Throughput    ThroughputMetrics
	Errors        ErrorMetrics
	FinishReasons map[string]int64
	Models        map[string]*ModelMetrics
}

// Config holds metrics configuration
type Config struct {
	// MaxDataPoints caps the latency samples kept for percentiles
	MaxDataPoints int
}

// DefaultConfig returns default metrics configuration
func DefaultConfig() Config {
	return Config{MaxDataPoints: 1000}
}
