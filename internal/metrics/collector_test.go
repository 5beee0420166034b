package metrics

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VighneshDev1411/mockllm/pkg/types"
)

func response(model string, reasons ...types.FinishReason) *types.CompletionResponse {
	resp := &types.CompletionResponse{Model: model, Usage: types.Usage{PromptTokens: 2, CompletionTokens: 3, TotalTokens: 5}}
	for i, r := range reasons {
		resp.Choices = append(resp.Choices, types.Choice{Index: i, FinishReason: r})
	}
	return resp
}

func TestCollector_RecordCompletion(t *testing.T) {
	c := NewCollector(DefaultConfig())

	c.RecordCompletion(response("gpt-4", types.FinishReasonStop, types.FinishReasonLength), 10*time.Millisecond)
	c.RecordCompletion(response("gpt-4", types.FinishReasonContent), 30*time.Millisecond)

	snap := c.Snapshot()
	assert.Equal(t, int64(2), snap.Throughput.TotalRequests)
	assert.Equal(t, map[string]int64{"stop": 1, "length": 1, "content": 1}, snap.FinishReasons)

	m := snap.Models["gpt-4"]
	require.NotNil(t, m)
	assert.Equal(t, int64(2), m.RequestCount)
	assert.Equal(t, int64(3), m.ChoiceCount)
	assert.Equal(t, int64(4), m.PromptTokens)
	assert.Equal(t, 20*time.Millisecond, m.AvgLatency)

	assert.Equal(t, 10*time.Millisecond, snap.Latency.Min)
	assert.Equal(t, 30*time.Millisecond, snap.Latency.Max)
	assert.Equal(t, int64(2), snap.Latency.Count)
}

func TestCollector_RecordError(t *testing.T) {
	c := NewCollector(DefaultConfig())

	c.RecordCompletion(response("gpt-4", types.FinishReasonContent), time.Millisecond)
	c.RecordError("temperature", "Temperature must be between 0.0 and 2.0, got 3")

	errs := c.Errors()
	assert.Equal(t, int64(1), errs.TotalErrors)
	assert.Equal(t, 50.0, errs.ErrorRate)
	assert.Equal(t, int64(1), errs.ErrorsByParam["temperature"])
	assert.Contains(t, errs.LastError, "Temperature")
}

func TestCollector_TrimsLatencySamples(t *testing.T) {
	c := NewCollector(Config{MaxDataPoints: 3})

	for i := 1; i <= 5; i++ {
		c.RecordCompletion(response("m"), time.Duration(i)*time.Millisecond)
	}

	lat := c.Latency()
	assert.Equal(t, int64(3), lat.Count)
	assert.Equal(t, 3*time.Millisecond, lat.Min)
}

func TestCollector_Reset(t *testing.T) {
	c := NewCollector(DefaultConfig())
	c.RecordCompletion(response("m", types.FinishReasonStop), time.Millisecond)
	c.RecordError("n", "bad")

	c.Reset()

	snap := c.Snapshot()
	assert.Zero(t, snap.Throughput.TotalRequests)
	assert.Empty(t, snap.Models)
	assert.Empty(t, snap.FinishReasons)
	assert.Zero(t, snap.Errors.TotalErrors)
}

func TestCollector_SnapshotIsConsistentUnderWrites(t *testing.T) {
	c := NewCollector(Config{MaxDataPoints: 10000})

	var wg sync.WaitGroup
	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 500; i++ {
				c.RecordCompletion(response("m", types.FinishReasonContent), time.Millisecond)
			}
		}()
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	for {
		snap := c.Snapshot()
		var modelRequests int64
		if m, ok := snap.Models["m"]; ok {
			modelRequests = m.RequestCount
		}
		require.Equal(t, snap.Throughput.TotalRequests, snap.Latency.Count)
		require.Equal(t, snap.Throughput.TotalRequests, modelRequests)
		require.Equal(t, snap.Throughput.TotalRequests, snap.FinishReasons["content"])

		select {
		case <-done:
			assert.Equal(t, int64(2000), c.Snapshot().Throughput.TotalRequests)
			return
		default:
		}
	}
}

func TestCalculatePercentile(t *testing.T) {
	sorted := []time.Duration{1, 2, 3, 4, 5}
	assert.Equal(t, time.Duration(3), calculatePercentile(sorted, 0.5))
	assert.Equal(t, time.Duration(5), calculatePercentile(sorted, 1))
	assert.Zero(t, calculatePercentile(nil, 0.5))
}
