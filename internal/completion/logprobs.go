package completion

import (
	"fmt"
	"strings"

	"github.com/VighneshDev1411/mockllm/pkg/types"
)

const (
	// maxTokenLogprob bounds real token log-probabilities to (-5, 0]
	maxTokenLogprob = 5.0
	// maxAltLogprob bounds alternative log-probabilities to (-10, 0]
	maxAltLogprob = 10.0
	// altTokenNames is how many distinct token_<i> alternatives exist
	altTokenNames = 100
)

// mockLogprobs builds whitespace-token log-probabilities for text with k
// alternatives per token
func mockLogprobs(rng RandSource, text string, k int) *types.Logprobs {
	tokens := strings.Fields(text)

	lp := &types.Logprobs{
		Tokens:        tokens,
		TokenLogprobs: make([]float64, len(tokens)),
		TextOffset:    make([]int, len(tokens)),
		TopLogprobs:   make([]map[string]float64, len(tokens)),
	}

	offset := 0
	for i, tok := range tokens {
		lp.TextOffset[i] = offset
		offset += len(tok) + 1
	}

	for i := range tokens {
		lp.TokenLogprobs[i] = 0 - rng.Float64()*maxTokenLogprob
	}

	alts := min(max(k, 0), altTokenNames)
	for i := range tokens {
		top := make(map[string]float64, alts)
		for len(top) < alts {
			name := fmt.Sprintf("token_%d", rng.IntN(altTokenNames))
			if _, seen := top[name]; seen {
				continue
			}
			top[name] = 0 - rng.Float64()*maxAltLogprob
		}
		lp.TopLogprobs[i] = top
	}

	return lp
}
