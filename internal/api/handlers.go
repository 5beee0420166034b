package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/VighneshDev1411/mockllm/internal/tokenizer"
	"github.com/VighneshDev1411/mockllm/pkg/types"
)

// HealthCheck returns the health status of the API
func (r *Router) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, types.HealthResponse{
		Status:    "healthy",
		Service:   "mockllm",
		Version:   r.version,
		Uptime:    int64(time.Since(r.startTime).Seconds()),
		Timestamp: time.Now(),
	})
}

// ListModels returns the models the tokenizer table knows about
func (r *Router) ListModels(c *gin.Context) {
	known := tokenizer.KnownModels()
	list := types.ModelList{
		Object: types.ObjectList,
		Data:   make([]types.Model, 0, len(known)),
	}
	for _, m := range known {
		list.Data = append(list.Data, types.Model{
			ID:       m.Name,
			Object:   types.ObjectModel,
			Created:  r.startTime.Unix(),
			OwnedBy:  "mockllm",
			Encoding: string(m.Encoding),
		})
	}
	c.JSON(http.StatusOK, list)
}

// GetMetrics returns a metrics snapshot
func (r *Router) GetMetrics(c *gin.Context) {
	snap := r.collector.Snapshot()

	models := make(map[string]interface{}, len(snap.Models))
	for name, m := range snap.Models {
		models[name] = gin.H{
			"requests":          m.RequestCount,
			"choices":           m.ChoiceCount,
			"prompt_tokens":     m.PromptTokens,
			"completion_tokens": m.CompletionTokens,
			"avg_latency_ms":    m.AvgLatency.Milliseconds(),
			"last_used":         m.LastUsed,
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"timestamp": snap.Timestamp,
		"latency": gin.H{
			"p50_us":  snap.Latency.P50.Microseconds(),
			"p90_us":  snap.Latency.P90.Microseconds(),
			"p95_us":  snap.Latency.P95.Microseconds(),
			"p99_us":  snap.Latency.P99.Microseconds(),
			"min_us":  snap.Latency.Min.Microseconds(),
			"max_us":  snap.Latency.Max.Microseconds(),
			"mean_us": snap.Latency.Mean.Microseconds(),
			"count":   snap.Latency.Count,
		},
		"throughput": gin.H{
			"requests_per_second": snap.Throughput.RequestsPerSecond,
			"total_requests":      snap.Throughput.TotalRequests,
			"period":              snap.Throughput.Period.String(),
		},
		"errors": gin.H{
			"total_errors":    snap.Errors.TotalErrors,
			"error_rate":      snap.Errors.ErrorRate,
			"errors_by_param": snap.Errors.ErrorsByParam,
			"last_error":      snap.Errors.LastError,
		},
		"finish_reasons": snap.FinishReasons,
		"models":         models,
	})
}

// ResetMetrics clears the collector so a test run can start from zero
func (r *Router) ResetMetrics(c *gin.Context) {
	r.collector.Reset()
	r.logger.Info("Metrics reset", "client_ip", c.ClientIP())
	c.Status(http.StatusNoContent)
}
