package tokenizer

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VighneshDev1411/mockllm/pkg/types"
)

// byteBPE treats every byte as one token
type byteBPE struct{}

func (byteBPE) Encode(text string, _ []string, _ []string) []int {
	out := make([]int, len(text))
	for i := 0; i < len(text); i++ {
		out[i] = int(text[i])
	}
	return out
}

func (byteBPE) Decode(tokens []int) string {
	b := make([]byte, len(tokens))
	for i, t := range tokens {
		b[i] = byte(t)
	}
	return string(b)
}

func TestLookupModel(t *testing.T) {
	tests := []struct {
		model string
		want  Encoding
		known bool
	}{
		{"gpt-4", CL100KBase, true},
		{"gpt-3.5-turbo", CL100KBase, true},
		{"text-embedding-ada-002", CL100KBase, true},
		{"gpt-4o", O200KBase, true},
		{"gpt-4o-mini", O200KBase, true},
		{"gpt-4o-2024-08-06", O200KBase, true},
		{"gpt-4o-mini-2024-07-18", O200KBase, true},
		{"gpt-4-0613", CL100KBase, true},
		{"text-davinci-003", P50KBase, true},
		{"text-davinci-001", P50KBase, true},
		{"llama-2", DefaultEncoding, false},
		{"", DefaultEncoding, false},
	}

	for _, tt := range tests {
		t.Run(tt.model, func(t *testing.T) {
			info, known := LookupModel(tt.model)
			assert.Equal(t, tt.want, info.Encoding)
			assert.Equal(t, tt.known, known)
		})
	}
}

func TestKnownModelsSorted(t *testing.T) {
	list := KnownModels()
	require.Len(t, list, len(models))
	for i := 1; i < len(list); i++ {
		assert.Less(t, list[i-1].Name, list[i].Name)
	}
}

func TestCounter_CountCL100K(t *testing.T) {
	c, err := New("gpt-3.5-turbo")
	require.NoError(t, err)

	assert.Equal(t, CL100KBase, c.Encoding())
	assert.Equal(t, 3, c.Count("hello world end"))
	assert.Equal(t, 0, c.Count(""))
}

func TestCounter_SpecialTokensAreSingleTokens(t *testing.T) {
	c, err := New("gpt-4")
	require.NoError(t, err)

	assert.Equal(t, 1, c.Count("<|endoftext|>"))
}

func TestCounter_TruncateTo(t *testing.T) {
	c, err := New("gpt-4")
	require.NoError(t, err)

	out, err := c.TruncateTo("hello world end", 2)
	require.NoError(t, err)
	assert.Equal(t, "hello world", out)
	assert.Equal(t, 2, c.Count(out))
}

func TestCounter_TruncateRoundTrip(t *testing.T) {
	for _, model := range []string{"gpt-4", "text-davinci-003", "unknown-model"} {
		c, err := New(model)
		require.NoError(t, err)

		for _, text := range []string{"", "hello", "The quick brown fox jumps over the lazy dog.", "naïve café 東京"} {
			out, err := c.TruncateTo(text, c.Count(text))
			require.NoError(t, err)
			assert.Equal(t, text, out, "model %s", model)
		}
	}
}

func TestCounter_TruncateDecodeErrorSurfaces(t *testing.T) {
	r := newRegistry(func(Encoding) (bpe, error) { return byteBPE{}, nil })
	c, err := r.Counter("gpt-4")
	require.NoError(t, err)

	_, err = c.TruncateTo("héllo", 2)

	var encErr *EncodingError
	require.True(t, errors.As(err, &encErr))
	assert.Equal(t, "decode", encErr.Op)
	assert.ErrorIs(t, err, errInvalidUTF8)
}

func TestRegistry_FallsBackToDefaultEncoding(t *testing.T) {
	r := newRegistry(func(enc Encoding) (bpe, error) {
		if enc == O200KBase {
			return nil, errors.New("table missing")
		}
		return byteBPE{}, nil
	})

	c, err := r.Counter("gpt-4o")
	require.NoError(t, err)
	assert.Equal(t, DefaultEncoding, c.Encoding())
	assert.Equal(t, "gpt-4o", c.Model())
}

func TestRegistry_DefaultFailureIsEncodingError(t *testing.T) {
	r := newRegistry(func(Encoding) (bpe, error) { return nil, errors.New("no tables") })

	_, err := r.Counter("gpt-4o")

	var encErr *EncodingError
	require.ErrorAs(t, err, &encErr)
	assert.Equal(t, DefaultEncoding, encErr.Encoding)
	assert.Equal(t, "load", encErr.Op)
}

func TestRegistry_LoadsEachTableOnce(t *testing.T) {
	calls := 0
	r := newRegistry(func(Encoding) (bpe, error) {
		calls++
		return byteBPE{}, nil
	})

	for i := 0; i < 3; i++ {
		_, err := r.Counter("gpt-4")
		require.NoError(t, err)
	}
	require.NoError(t, r.Warm(CL100KBase))

	assert.Equal(t, 1, calls)
}

func TestCounter_UsageAndMessages(t *testing.T) {
	r := newRegistry(func(Encoding) (bpe, error) { return byteBPE{}, nil })
	c, err := r.Counter("gpt-4")
	require.NoError(t, err)

	u := c.Usage("abc", "de")
	assert.Equal(t, types.Usage{PromptTokens: 3, CompletionTokens: 2, TotalTokens: 5}, u)

	n := c.CountMessages([]types.ChatMessage{{Role: "user", Content: "hi"}})
	assert.Equal(t, 4+2+tokensPerMessage, n)
}
