package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/invopop/jsonschema"

	"github.com/VighneshDev1411/mockllm/internal/completion"
	"github.com/VighneshDev1411/mockllm/internal/metrics"
	"github.com/VighneshDev1411/mockllm/internal/validation"
	"github.com/VighneshDev1411/mockllm/pkg/types"
	"github.com/VighneshDev1411/mockllm/pkg/utils"
)

const invalidBodyMessage = "We could not parse the JSON body of your request. Expected a completion request object."

// CompletionHandlers serves the completions endpoints
type CompletionHandlers struct {
	service   *completion.Service
	collector *metrics.Collector
	logger    *utils.Logger
}

// NewCompletionHandlers creates completion handlers
func NewCompletionHandlers(service *completion.Service, collector *metrics.Collector, logger *utils.Logger) *CompletionHandlers {
	return &CompletionHandlers{
		service:   service,
		collector: collector,
		logger:    logger,
	}
}

// CreateCompletion handles POST /v1/completions
func (h *CompletionHandlers) CreateCompletion(c *gin.Context) {
	start := time.Now()

	var req types.CompletionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Debug("Rejected completion body", "error", err)
		h.collector.RecordError("body", err.Error())
		c.JSON(http.StatusBadRequest, types.NewInvalidRequest(invalidBodyMessage, ""))
		return
	}

	resp, err := h.service.Complete(&req)
	if err != nil {
		var vErr *validation.ValidationError
		if errors.As(err, &vErr) {
			h.logger.Debug("Rejected completion request", "model", req.Model, "param", vErr.Param, "reason", vErr.Message)
			h.collector.RecordError(vErr.Param, vErr.Message)
			c.JSON(http.StatusBadRequest, types.NewInvalidRequest(vErr.Message, vErr.Param))
			return
		}

		h.logger.Error("Completion failed", "model", req.Model, "error", err)
		h.collector.RecordError("internal", err.Error())
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{Error: types.ErrorDetail{
			Message: "The server had an error while processing your request.",
			Type:    "server_error",
		}})
		return
	}

	latency := time.Since(start)
	h.collector.RecordCompletion(resp, latency)
	h.logger.Debug("Completion served",
		"id", resp.ID,
		"model", resp.Model,
		"choices", len(resp.Choices),
		"total_tokens", resp.Usage.TotalTokens,
	)

	c.JSON(http.StatusOK, resp)
}

// GetSchema handles GET /v1/completions/schema
func (h *CompletionHandlers) GetSchema(c *gin.Context) {
	c.JSON(http.StatusOK, CompletionRequestSchema())
}

// CompletionRequestSchema reflects the JSON Schema of a completion request
func CompletionRequestSchema() *jsonschema.Schema {
	r := &jsonschema.Reflector{DoNotReference: true}
	schema := r.Reflect(&types.CompletionRequest{})
	schema.Title = "CompletionRequest"
	return schema
}
