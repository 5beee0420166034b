// Package tokenizer counts, encodes and truncates text with the byte-pair
// encoding a model would use.
package tokenizer

import (
	"errors"
	"unicode/utf8"

	"github.com/VighneshDev1411/mockllm/pkg/types"
)

// allSpecial enables every special token while encoding
var allSpecial = []string{"all"}

// tokensPerMessage is the chat framing overhead per message
const tokensPerMessage = 3

var errInvalidUTF8 = errors.New("truncated tokens do not decode to valid UTF-8")

// Counter counts tokens for one model
type Counter struct {
	model string
	info  ModelInfo
	bpe   bpe
}

// Model returns the model name the counter was built for
func (c *Counter) Model() string { return c.model }

// Encoding returns the encoding actually in use, after any fallback
func (c *Counter) Encoding() Encoding { return c.info.Encoding }

// ContextLength returns the model's context window
func (c *Counter) ContextLength() int { return c.info.ContextLength }

// Encode returns the token ids of text, special tokens enabled
func (c *Counter) Encode(text string) []int {
	return c.bpe.Encode(text, allSpecial, nil)
}

// Count returns the number of tokens in text
func (c *Counter) Count(text string) int {
	return len(c.Encode(text))
}

// TruncateTo returns text cut to its first maxTokens tokens. Text that
// already fits is returned as is.
func (c *Counter) TruncateTo(text string, maxTokens int) (string, error) {
	tokens := c.Encode(text)
	if len(tokens) <= maxTokens {
		return text, nil
	}
	if maxTokens <= 0 {
		return "", nil
	}

	out := c.bpe.Decode(tokens[:maxTokens])
	if !utf8.ValidString(out) {
		return "", &EncodingError{Model: c.model, Encoding: c.info.Encoding, Op: "decode", Err: errInvalidUTF8}
	}
	return out, nil
}

// Usage counts prompt and completion tokens for a response
func (c *Counter) Usage(prompt, completion string) types.Usage {
	return UsageOf(c.Count(prompt), c.Count(completion))
}

// UsageOf builds a Usage whose total is the sum of its parts
func UsageOf(promptTokens, completionTokens int) types.Usage {
	return types.Usage{
		PromptTokens:     promptTokens,
		CompletionTokens: completionTokens,
		TotalTokens:      promptTokens + completionTokens,
	}
}

// CountMessages counts chat messages including per-message framing
func (c *Counter) CountMessages(messages []types.ChatMessage) int {
	total := 0
	for _, m := range messages {
		total += c.Count(m.Role) + c.Count(m.Content) + tokensPerMessage
	}
	return total
}
