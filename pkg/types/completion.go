package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/invopop/jsonschema"
)

// Defaults applied when a request omits the field
const (
	DefaultMaxTokens = 16
	DefaultN         = 1

	// MaxN caps n and best_of, matching the real API
	MaxN = 128
)

// Object tag carried by every completion response
const ObjectTextCompletion = "text_completion"

// CompletionRequest represents a request to the legacy completions endpoint.
// Optional numeric fields are pointers so that an explicit zero can be told
// apart from an absent value during validation.
type CompletionRequest struct {
	Model            string         `json:"model" jsonschema:"required,description=ID of the model to use"`
	Prompt           Prompt         `json:"prompt,omitempty"`
	Suffix           *string        `json:"suffix,omitempty"`
	MaxTokens        *int           `json:"max_tokens,omitempty" jsonschema:"default=16"`
	Temperature      *float64       `json:"temperature,omitempty" jsonschema:"default=1"`
	TopP             *float64       `json:"top_p,omitempty" jsonschema:"default=1"`
	N                *int           `json:"n,omitempty" jsonschema:"default=1"`
	Stream           bool           `json:"stream,omitempty"`
	Logprobs         *int           `json:"logprobs,omitempty"`
	Echo             bool           `json:"echo,omitempty"`
	Stop             *StopSequences `json:"stop,omitempty"`
	PresencePenalty  *float64       `json:"presence_penalty,omitempty" jsonschema:"default=0"`
	FrequencyPenalty *float64       `json:"frequency_penalty,omitempty" jsonschema:"default=0"`
	BestOf           *int           `json:"best_of,omitempty"`
	LogitBias        map[string]int `json:"logit_bias,omitempty"`
	User             string         `json:"user,omitempty"`
}

// MaxTokensOrDefault returns max_tokens, or 16 when absent
func (r *CompletionRequest) MaxTokensOrDefault() int {
	if r.MaxTokens == nil {
		return DefaultMaxTokens
	}
	return *r.MaxTokens
}

// NOrDefault returns n, or 1 when absent
func (r *CompletionRequest) NOrDefault() int {
	if r.N == nil {
		return DefaultN
	}
	return *r.N
}

// Stops returns the normalized stop sequences in the order supplied
func (r *CompletionRequest) Stops() []string {
	if r.Stop == nil {
		return nil
	}
	return r.Stop.Values
}

// Prompt is the prompt text. The wire form may be a string or an array of
// strings; arrays are joined with newlines.
type Prompt string

// UnmarshalJSON accepts a string, an array of strings or null
func (p *Prompt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*p = ""
		return nil
	}

	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*p = Prompt(single)
		return nil
	}

	var parts []string
	if err := json.Unmarshal(data, &parts); err != nil {
		return fmt.Errorf("prompt must be a string or an array of strings")
	}
	*p = Prompt(strings.Join(parts, "\n"))
	return nil
}

// JSONSchema describes the string-or-array form
func (Prompt) JSONSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Description: "The prompt to generate completions for",
		OneOf: []*jsonschema.Schema{
			{Type: "string"},
			{Type: "array", Items: &jsonschema.Schema{Type: "string"}},
		},
	}
}

// StopSequences holds the stop field. The wire form is either a single string
// or an array of strings; both are normalized into Values in order.
type StopSequences struct {
	Values []string
	// List records that the client sent the array form
	List bool
}

// SingleStop builds the string form
func SingleStop(s string) *StopSequences {
	return &StopSequences{Values: []string{s}}
}

// StopList builds the array form
func StopList(values ...string) *StopSequences {
	return &StopSequences{Values: values, List: true}
}

// UnmarshalJSON accepts a string or an array of strings
func (s *StopSequences) UnmarshalJSON(data []byte) error {
	s.Values = nil
	s.List = false

	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		s.Values = []string{single}
		return nil
	}

	var values []string
	if err := json.Unmarshal(data, &values); err != nil {
		return fmt.Errorf("stop must be a string or an array of strings")
	}
	s.Values = values
	s.List = true
	return nil
}

// MarshalJSON writes back the form the value was built with
func (s StopSequences) MarshalJSON() ([]byte, error) {
	if !s.List && len(s.Values) == 1 {
		return json.Marshal(s.Values[0])
	}
	if s.Values == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(s.Values)
}

// JSONSchema describes the string-or-array form
func (StopSequences) JSONSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Description: "Sequences where generation stops",
		OneOf: []*jsonschema.Schema{
			{Type: "string", MinLength: uint64Ptr(1)},
			{Type: "array", Items: &jsonschema.Schema{Type: "string", MinLength: uint64Ptr(1)}},
		},
	}
}

func uint64Ptr(v uint64) *uint64 { return &v }

// FinishReason tells why generation stopped for a choice
type FinishReason string

const (
	FinishReasonStop    FinishReason = "stop"
	FinishReasonLength  FinishReason = "length"
	FinishReasonContent FinishReason = "content"
)

// Choice is a single generated completion
type Choice struct {
	Text         string       `json:"text"`
	Index        int          `json:"index"`
	Logprobs     *Logprobs    `json:"logprobs"`
	FinishReason FinishReason `json:"finish_reason,omitempty"`
}

// Logprobs carries per-token log probabilities and alternatives
type Logprobs struct {
	Tokens        []string             `json:"tokens"`
	TokenLogprobs []float64            `json:"token_logprobs"`
	TextOffset    []int                `json:"text_offset"`
	TopLogprobs   []map[string]float64 `json:"top_logprobs"`
}

// Usage reports token accounting for a response
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// CompletionResponse is the success envelope of POST /v1/completions
type CompletionResponse struct {
	ID      string   `json:"id"`
	Object  string   `json:"object"`
	Created int64    `json:"created"`
	Model   string   `json:"model"`
	Choices []Choice `json:"choices"`
	Usage   Usage    `json:"usage"`
}
