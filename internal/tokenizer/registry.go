package tokenizer

import (
	"sync"

	"github.com/pkoukk/tiktoken-go"
	tiktoken_loader "github.com/pkoukk/tiktoken-go-loader"

	"github.com/VighneshDev1411/mockllm/pkg/utils"
)

func init() {
	// Tables ship embedded in the loader module; nothing is fetched at runtime.
	tiktoken.SetBpeLoader(tiktoken_loader.NewOfflineLoader())
}

// bpe is the part of *tiktoken.Tiktoken the counter relies on
type bpe interface {
	Encode(text string, allowedSpecial []string, disallowedSpecial []string) []int
	Decode(tokens []int) string
}

// loadFunc builds the BPE table for an encoding
type loadFunc func(Encoding) (bpe, error)

func loadTiktoken(enc Encoding) (bpe, error) {
	return tiktoken.GetEncoding(string(enc))
}

// Registry hands out counters backed by encoding tables that are built at
// most once per encoding and never mutated afterwards.
type Registry struct {
	load loadFunc

	mu     sync.Mutex
	tables map[Encoding]bpe
}

// NewRegistry creates a registry using the embedded tiktoken tables
func NewRegistry() *Registry {
	return newRegistry(loadTiktoken)
}

func newRegistry(load loadFunc) *Registry {
	return &Registry{
		load:   load,
		tables: make(map[Encoding]bpe),
	}
}

var defaultRegistry = NewRegistry()

// New returns a counter for model from the shared registry
func New(model string) (*Counter, error) {
	return defaultRegistry.Counter(model)
}

// Counter resolves model to an encoding and returns a counter for it. When
// the model's own table is unavailable the default encoding is used instead;
// an error is returned only if that also fails.
func (r *Registry) Counter(model string) (*Counter, error) {
	info, _ := LookupModel(model)

	table, err := r.table(info.Encoding)
	if err != nil && info.Encoding != DefaultEncoding {
		utils.Warn("encoding %s unavailable for model %q, falling back to %s: %v",
			info.Encoding, model, DefaultEncoding, err)
		info.Encoding = DefaultEncoding
		table, err = r.table(DefaultEncoding)
	}
	if err != nil {
		return nil, &EncodingError{Model: model, Encoding: info.Encoding, Op: "load", Err: err}
	}

	return &Counter{model: model, info: info, bpe: table}, nil
}

func (r *Registry) table(enc Encoding) (bpe, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if t, ok := r.tables[enc]; ok {
		return t, nil
	}

	t, err := r.load(enc)
	if err != nil {
		return nil, err
	}
	r.tables[enc] = t
	utils.Debug("encoding table %s loaded", enc)
	return t, nil
}

// Warm builds the tables for the given encodings ahead of the first request
func (r *Registry) Warm(encodings ...Encoding) error {
	for _, enc := range encodings {
		if _, err := r.table(enc); err != nil {
			return &EncodingError{Encoding: enc, Op: "load", Err: err}
		}
	}
	return nil
}

// Warm preloads tables in the shared registry
func Warm(encodings ...Encoding) error {
	return defaultRegistry.Warm(encodings...)
}
