package tokenizer

import (
	"sort"
	"strings"
)

// Encoding names a byte-pair encoding table
type Encoding string

const (
	CL100KBase Encoding = "cl100k_base"
	O200KBase  Encoding = "o200k_base"
	P50KBase   Encoding = "p50k_base"

	// DefaultEncoding serves unrecognized models and is the fallback when
	// a model's own table cannot be loaded
	DefaultEncoding = CL100KBase

	// DefaultContextLength is reported for models missing from the table
	DefaultContextLength = 4096
)

// ModelInfo is one row of the model table
type ModelInfo struct {
	Name          string
	Encoding      Encoding
	ContextLength int
}

// models maps exact model names to their encoding. New families are added
// here, nowhere else.
var models = map[string]ModelInfo{
	"gpt-4":                  {Name: "gpt-4", Encoding: CL100KBase, ContextLength: 8192},
	"gpt-3.5-turbo":          {Name: "gpt-3.5-turbo", Encoding: CL100KBase, ContextLength: 16385},
	"text-embedding-ada-002": {Name: "text-embedding-ada-002", Encoding: CL100KBase, ContextLength: 8191},
	"gpt-4o":                 {Name: "gpt-4o", Encoding: O200KBase, ContextLength: 128000},
	"gpt-4o-mini":            {Name: "gpt-4o-mini", Encoding: O200KBase, ContextLength: 128000},
	"text-davinci-002":       {Name: "text-davinci-002", Encoding: P50KBase, ContextLength: 4097},
	"text-davinci-003":       {Name: "text-davinci-003", Encoding: P50KBase, ContextLength: 4097},
}

// modelPrefixes resolves dated or suffixed variants such as
// "gpt-4o-2024-08-06". Longer prefixes come first.
var modelPrefixes = []struct {
	prefix string
	base   string
}{
	{"gpt-4o-mini-", "gpt-4o-mini"},
	{"gpt-4o-", "gpt-4o"},
	{"gpt-4-", "gpt-4"},
	{"gpt-3.5-turbo-", "gpt-3.5-turbo"},
	{"text-davinci-", "text-davinci-003"},
}

// LookupModel resolves a model name by exact match, then by prefix. The
// second result is false when the name is unknown and defaults apply.
func LookupModel(model string) (ModelInfo, bool) {
	name := strings.TrimSpace(model)
	if info, ok := models[name]; ok {
		return info, true
	}
	for _, p := range modelPrefixes {
		if strings.HasPrefix(name, p.prefix) {
			info := models[p.base]
			info.Name = name
			return info, true
		}
	}
	return ModelInfo{Name: name, Encoding: DefaultEncoding, ContextLength: DefaultContextLength}, false
}

// KnownModels lists the exact entries of the model table sorted by name
func KnownModels() []ModelInfo {
	out := make([]ModelInfo, 0, len(models))
	for _, info := range models {
		out = append(out, info)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})
	return out
}
