// Package completion synthesizes completion choices and assembles the
// response envelope. No model is involved: choice text is derived from the
// prompt and shaped by the stop and length rules of the real API.
package completion

import (
	"errors"
	"strings"

	"github.com/VighneshDev1411/mockllm/internal/tokenizer"
	"github.com/VighneshDev1411/mockllm/pkg/types"
	"github.com/VighneshDev1411/mockllm/pkg/utils"
)

// CounterFunc returns a token counter for a model
type CounterFunc func(model string) (*tokenizer.Counter, error)

// Params are the request fields that shape each choice
type Params struct {
	Model     string
	Prompt    string
	Stops     []string
	MaxTokens int
	Echo      bool
	// Logprobs is the number of alternatives per token; nil disables logprobs
	Logprobs *int
}

// ParamsFromRequest extracts generation parameters with defaults applied
func ParamsFromRequest(req *types.CompletionRequest) Params {
	return Params{
		Model:     req.Model,
		Prompt:    string(req.Prompt),
		Stops:     req.Stops(),
		MaxTokens: req.MaxTokensOrDefault(),
		Echo:      req.Echo,
		Logprobs:  req.Logprobs,
	}
}

// Generator produces completion choices
type Generator struct {
	rng      RandSource
	counters CounterFunc
}

// GeneratorOption configures a Generator
type GeneratorOption func(*Generator)

// WithRandSource sets the source behind mock log-probabilities
func WithRandSource(rng RandSource) GeneratorOption {
	return func(g *Generator) {
		if rng != nil {
			g.rng = rng
		}
	}
}

// WithCounters replaces how token counters are obtained
func WithCounters(fn CounterFunc) GeneratorOption {
	return func(g *Generator) {
		if fn != nil {
			g.counters = fn
		}
	}
}

// NewGenerator creates a generator using the shared tokenizer registry
func NewGenerator(opts ...GeneratorOption) *Generator {
	g := &Generator{
		rng:      globalSource{},
		counters: tokenizer.New,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// CreateChoices returns exactly n choices indexed 0..n-1
func (g *Generator) CreateChoices(p Params, n int) []types.Choice {
	var choices []types.Choice
	for i := 0; i < n; i++ {
		choices = append(choices, g.GenerateChoice(i, p))
	}
	return choices
}

// GenerateChoice builds one choice. A stop sequence wins over the length
// cap; stop sequences are tried in the order supplied and the first one
// present in the text cuts it at that sequence's first occurrence.
func (g *Generator) GenerateChoice(index int, p Params) types.Choice {
	choice := types.Choice{Index: index}

	text := ""
	if p.Echo {
		text = p.Prompt
	}

	for _, stop := range p.Stops {
		if stop == "" {
			continue
		}
		if i := strings.Index(text, stop); i >= 0 {
			choice.Text = text[:i]
			choice.FinishReason = types.FinishReasonStop
			return choice
		}
	}

	choice.Text = text
	choice.FinishReason = types.FinishReasonContent

	if truncated, ok := g.truncateToLength(text, p); ok {
		choice.Text = truncated
		choice.FinishReason = types.FinishReasonLength
	}

	if p.Logprobs != nil {
		choice.Logprobs = mockLogprobs(g.rng, choice.Text, *p.Logprobs)
	}

	return choice
}

// truncateToLength applies the max_tokens cap. It reports false when the
// text is under the cap or when no counter is available, in which case the
// text is left untouched. A cut inside a multibyte character backs off to the
// longest shorter prefix that decodes to valid UTF-8.
func (g *Generator) truncateToLength(text string, p Params) (string, bool) {
	counter, err := g.counters(p.Model)
	if err != nil {
		utils.Error("token counter unavailable for model %q: %v", p.Model, err)
		return text, false
	}

	if counter.Count(text) < p.MaxTokens {
		return text, false
	}

	for n := p.MaxTokens; n > 0; n-- {
		out, err := counter.TruncateTo(text, n)
		if err == nil {
			return out, true
		}
		var encErr *tokenizer.EncodingError
		if !errors.As(err, &encErr) {
			utils.Warn("skipping length truncation for model %q: %v", p.Model, err)
			return text, false
		}
		utils.Debug("prefix of %d tokens splits a character for model %q, backing off", n, p.Model)
	}
	return "", true
}
