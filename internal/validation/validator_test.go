package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VighneshDev1411/mockllm/pkg/types"
)

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }

func validRequest() *types.CompletionRequest {
	return &types.CompletionRequest{Model: "gpt-3.5-turbo", Prompt: "test prompt"}
}

func requireParam(t *testing.T, err error, param string) *ValidationError {
	t.Helper()
	var vErr *ValidationError
	require.True(t, errors.As(err, &vErr), "expected *ValidationError, got %v", err)
	assert.Equal(t, param, vErr.Param)
	return vErr
}

func TestValidate_AcceptsDefaults(t *testing.T) {
	assert.NoError(t, Validate(validRequest()))
}

func TestValidate_EmptyModel(t *testing.T) {
	for _, model := range []string{"", "   ", "\t\n"} {
		req := validRequest()
		req.Model = model

		err := requireParam(t, Validate(req), "model")
		assert.Equal(t, "model field must not be empty", err.Error())
	}
}

func TestValidate_ModelCheckedBeforeOptionalFields(t *testing.T) {
	req := validRequest()
	req.Model = ""
	req.Temperature = floatPtr(5)

	requireParam(t, Validate(req), "model")
}

func TestValidate_Ranges(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*types.CompletionRequest)
		param   string
		message string
	}{
		{"temperature low", func(r *types.CompletionRequest) { r.Temperature = floatPtr(-0.1) }, "temperature", "Temperature must be between 0.0 and 2.0, got -0.1"},
		{"temperature high", func(r *types.CompletionRequest) { r.Temperature = floatPtr(2.1) }, "temperature", "Temperature must be between 0.0 and 2.0, got 2.1"},
		{"top_p low", func(r *types.CompletionRequest) { r.TopP = floatPtr(-0.1) }, "top_p", "Top_p must be between 0.0 and 1.0, got -0.1"},
		{"top_p high", func(r *types.CompletionRequest) { r.TopP = floatPtr(1.1) }, "top_p", "Top_p must be between 0.0 and 1.0, got 1.1"},
		{"n zero", func(r *types.CompletionRequest) { r.N = intPtr(0) }, "n", "n must be a positive integer, got 0"},
		{"n negative", func(r *types.CompletionRequest) { r.N = intPtr(-1) }, "n", "n must be a positive integer, got -1"},
		{"n above cap", func(r *types.CompletionRequest) { r.N = intPtr(types.MaxN + 1) }, "n", "n must be at most 128, got 129"},
		{"n huge", func(r *types.CompletionRequest) { r.N = intPtr(1 << 42) }, "n", "n must be at most 128, got 4398046511104"},
		{"max_tokens zero", func(r *types.CompletionRequest) { r.MaxTokens = intPtr(0) }, "max_tokens", "max_tokens must be a positive integer, got 0"},
		{"presence low", func(r *types.CompletionRequest) { r.PresencePenalty = floatPtr(-2.5) }, "presence_penalty", "Presence penalty must be between -2.0 and 2.0, got -2.5"},
		{"presence high", func(r *types.CompletionRequest) { r.PresencePenalty = floatPtr(2.5) }, "presence_penalty", "Presence penalty must be between -2.0 and 2.0, got 2.5"},
		{"frequency low", func(r *types.CompletionRequest) { r.FrequencyPenalty = floatPtr(-3) }, "frequency_penalty", "Frequency penalty must be between -2.0 and 2.0, got -3"},
		{"frequency high", func(r *types.CompletionRequest) { r.FrequencyPenalty = floatPtr(2.01) }, "frequency_penalty", "Frequency penalty must be between -2.0 and 2.0, got 2.01"},
		{"logprobs negative", func(r *types.CompletionRequest) { r.Logprobs = intPtr(-1) }, "logprobs", "logprobs must be a non-negative integer, got -1"},
		{"stop empty string", func(r *types.CompletionRequest) { r.Stop = types.SingleStop("") }, "stop", "Stop sequence cannot be empty"},
		{"stop empty array", func(r *types.CompletionRequest) { r.Stop = types.StopList() }, "stop", "Stop sequences array cannot be empty"},
		{"stop empty element", func(r *types.CompletionRequest) { r.Stop = types.StopList("a", "") }, "stop", "Stop sequence at index 1 cannot be empty"},
		{"best_of zero", func(r *types.CompletionRequest) { r.BestOf = intPtr(0) }, "best_of", "best_of must be a positive integer, got 0"},
		{"best_of above cap", func(r *types.CompletionRequest) { r.BestOf = intPtr(types.MaxN + 1) }, "best_of", "best_of must be at most 128, got 129"},
		{"best_of below n", func(r *types.CompletionRequest) { r.BestOf = intPtr(2); r.N = intPtr(3) }, "best_of", "best_of must be greater than or equal to n, got best_of=2 and n=3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)

			err := requireParam(t, Validate(req), tt.param)
			assert.Equal(t, tt.message, err.Message)
		})
	}
}

func TestValidate_Boundaries(t *testing.T) {
	req := validRequest()
	req.Temperature = floatPtr(2)
	req.TopP = floatPtr(0)
	req.N = intPtr(2)
	req.MaxTokens = intPtr(1)
	req.PresencePenalty = floatPtr(-2)
	req.FrequencyPenalty = floatPtr(2)
	req.Logprobs = intPtr(0)
	req.Stop = types.StopList("\n", "END")
	req.BestOf = intPtr(2)

	assert.NoError(t, Validate(req))

	req.N = intPtr(types.MaxN)
	req.BestOf = intPtr(types.MaxN)
	assert.NoError(t, Validate(req))
}

func TestValidate_BestOfAgainstDefaultN(t *testing.T) {
	req := validRequest()
	req.BestOf = intPtr(1)

	assert.NoError(t, Validate(req))
}

func TestValidate_ReportsInPriorityOrder(t *testing.T) {
	req := validRequest()
	req.BestOf = intPtr(0)
	req.Stop = types.SingleStop("")
	req.MaxTokens = intPtr(0)
	req.TopP = floatPtr(9)

	requireParam(t, Validate(req), "top_p")

	req.TopP = nil
	requireParam(t, Validate(req), "max_tokens")

	req.MaxTokens = nil
	requireParam(t, Validate(req), "stop")

	req.Stop = nil
	requireParam(t, Validate(req), "best_of")
}

func TestReportingOrder(t *testing.T) {
	assert.Equal(t, []string{
		"temperature", "top_p", "n", "max_tokens", "presence_penalty",
		"frequency_penalty", "logprobs", "stop", "best_of",
	}, params())
}
