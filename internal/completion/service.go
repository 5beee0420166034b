package completion

import (
	"time"

	"github.com/VighneshDev1411/mockllm/internal/validation"
	"github.com/VighneshDev1411/mockllm/pkg/types"
	"github.com/VighneshDev1411/mockllm/pkg/utils"
)

// Service runs a request through validation, choice generation and
// response assembly
type Service struct {
	generator *Generator
	counters  CounterFunc
	now       func() time.Time
	newID     func() string
}

// NewService creates a service. The generator options also decide which
// counters are used for usage accounting.
func NewService(opts ...GeneratorOption) *Service {
	g := NewGenerator(opts...)
	return &Service{
		generator: g,
		counters:  g.counters,
		now:       time.Now,
		newID:     utils.NewCompletionID,
	}
}

// Complete returns the response for req, or a *validation.ValidationError
// describing the first invalid field
func (s *Service) Complete(req *types.CompletionRequest) (*types.CompletionResponse, error) {
	if err := validation.Validate(req); err != nil {
		return nil, err
	}

	params := ParamsFromRequest(req)
	choices := s.generator.CreateChoices(params, req.NOrDefault())

	counter, err := s.counters(req.Model)
	if err != nil {
		utils.Warn("usage falls back to word counts for model %q: %v", req.Model, err)
		counter = nil
	}
	usage := Usage(counter, params.Prompt, choices)

	return Assemble(s.newID(), req.Model, s.now(), choices, usage), nil
}
