// Package validation checks completion requests against the limits of the
// real completions API. Checks run in a fixed order and the first failure is
// reported, so the same bad request always yields the same message.
package validation

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/VighneshDev1411/mockllm/pkg/types"
)

var validate = validator.New()

var maxNTag = fmt.Sprintf("lte=%d", types.MaxN)

// check inspects one field and returns nil when it is acceptable
type check struct {
	param string
	run   func(req *types.CompletionRequest) *ValidationError
}

// optionalChecks is ordered by reporting priority
var optionalChecks = []check{
	{"temperature", checkTemperature},
	{"top_p", checkTopP},
	{"n", checkN},
	{"max_tokens", checkMaxTokens},
	{"presence_penalty", checkPresencePenalty},
	{"frequency_penalty", checkFrequencyPenalty},
	{"logprobs", checkLogprobs},
	{"stop", checkStop},
	{"best_of", checkBestOf},
}

// Validate returns the first failing constraint as a *ValidationError, or
// nil when the request is acceptable.
func Validate(req *types.CompletionRequest) error {
	if err := ValidateRequired(req); err != nil {
		return err
	}
	for _, c := range optionalChecks {
		if err := c.run(req); err != nil {
			return err
		}
	}
	return nil
}

// ValidateRequired checks the fields every request must carry
func ValidateRequired(req *types.CompletionRequest) error {
	if validate.Var(strings.TrimSpace(req.Model), "required") != nil {
		return newError("model", "model field must not be empty")
	}
	return nil
}

// params lists the optional fields in the order they are reported
func params() []string {
	out := make([]string, len(optionalChecks))
	for i, c := range optionalChecks {
		out[i] = c.param
	}
	return out
}

func passes(v interface{}, tag string) bool {
	return validate.Var(v, tag) == nil
}

func checkTemperature(req *types.CompletionRequest) *ValidationError {
	if req.Temperature != nil && !passes(*req.Temperature, "gte=0,lte=2") {
		return newError("temperature", fmt.Sprintf("Temperature must be between 0.0 and 2.0, got %v", *req.Temperature))
	}
	return nil
}

func checkTopP(req *types.CompletionRequest) *ValidationError {
	if req.TopP != nil && !passes(*req.TopP, "gte=0,lte=1") {
		return newError("top_p", fmt.Sprintf("Top_p must be between 0.0 and 1.0, got %v", *req.TopP))
	}
	return nil
}

func checkN(req *types.CompletionRequest) *ValidationError {
	if req.N == nil {
		return nil
	}
	if !passes(*req.N, "gt=0") {
		return newError("n", fmt.Sprintf("n must be a positive integer, got %d", *req.N))
	}
	if !passes(*req.N, maxNTag) {
		return newError("n", fmt.Sprintf("n must be at most %d, got %d", types.MaxN, *req.N))
	}
	return nil
}

func checkMaxTokens(req *types.CompletionRequest) *ValidationError {
	if req.MaxTokens != nil && !passes(*req.MaxTokens, "gt=0") {
		return newError("max_tokens", fmt.Sprintf("max_tokens must be a positive integer, got %d", *req.MaxTokens))
	}
	return nil
}

func checkPresencePenalty(req *types.CompletionRequest) *ValidationError {
	if req.PresencePenalty != nil && !passes(*req.PresencePenalty, "gte=-2,lte=2") {
		return newError("presence_penalty", fmt.Sprintf("Presence penalty must be between -2.0 and 2.0, got %v", *req.PresencePenalty))
	}
	return nil
}

func checkFrequencyPenalty(req *types.CompletionRequest) *ValidationError {
	if req.FrequencyPenalty != nil && !passes(*req.FrequencyPenalty, "gte=-2,lte=2") {
		return newError("frequency_penalty", fmt.Sprintf("Frequency penalty must be between -2.0 and 2.0, got %v", *req.FrequencyPenalty))
	}
	return nil
}

func checkLogprobs(req *types.CompletionRequest) *ValidationError {
	if req.Logprobs != nil && !passes(*req.Logprobs, "gte=0") {
		return newError("logprobs", fmt.Sprintf("logprobs must be a non-negative integer, got %d", *req.Logprobs))
	}
	return nil
}

func checkStop(req *types.CompletionRequest) *ValidationError {
	if req.Stop == nil {
		return nil
	}

	if !req.Stop.List {
		if len(req.Stop.Values) == 0 || !passes(req.Stop.Values[0], "required") {
			return newError("stop", "Stop sequence cannot be empty")
		}
		return nil
	}

	if !passes(req.Stop.Values, "min=1") {
		return newError("stop", "Stop sequences array cannot be empty")
	}
	for i, s := range req.Stop.Values {
		if !passes(s, "required") {
			return newError("stop", fmt.Sprintf("Stop sequence at index %d cannot be empty", i))
		}
	}
	return nil
}

func checkBestOf(req *types.CompletionRequest) *ValidationError {
	if req.BestOf == nil {
		return nil
	}

	bestOf := *req.BestOf
	if !passes(bestOf, "gt=0") {
		return newError("best_of", fmt.Sprintf("best_of must be a positive integer, got %d", bestOf))
	}
	if !passes(bestOf, maxNTag) {
		return newError("best_of", fmt.Sprintf("best_of must be at most %d, got %d", types.MaxN, bestOf))
	}

	n := req.NOrDefault()
	if validate.VarWithValue(bestOf, n, "gtefield") != nil {
		return newError("best_of", fmt.Sprintf(
			"best_of must be greater than or equal to n, got best_of=%d and n=%d", bestOf, n))
	}
	return nil
}
