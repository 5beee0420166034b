package completion

import (
	"strings"
	"time"

	"github.com/VighneshDev1411/mockllm/internal/tokenizer"
	"github.com/VighneshDev1411/mockllm/pkg/types"
)

// Usage totals prompt tokens and the tokens of every choice. Without a
// counter, whitespace-separated words are counted instead.
func Usage(counter *tokenizer.Counter, prompt string, choices []types.Choice) types.Usage {
	count := wordCount
	if counter != nil {
		count = counter.Count
	}

	completionTokens := 0
	for _, c := range choices {
		completionTokens += count(c.Text)
	}
	return tokenizer.UsageOf(count(prompt), completionTokens)
}

func wordCount(text string) int {
	return len(strings.Fields(text))
}

// Assemble packages choices into the response envelope
func Assemble(id, model string, created time.Time, choices []types.Choice, usage types.Usage) *types.CompletionResponse {
	if choices == nil {
		choices = []types.Choice{}
	}
	return &types.CompletionResponse{
		ID:      id,
		Object:  types.ObjectTextCompletion,
		Created: created.Unix(),
		Model:   model,
		Choices: choices,
		Usage:   usage,
	}
}
