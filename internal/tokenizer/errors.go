package tokenizer

import "fmt"

// EncodingError reports a failure inside the BPE layer: a table that could
// not be built or a token prefix that does not decode to valid text.
type EncodingError struct {
	Model    string
	Encoding Encoding
	Op       string
	Err      error
}

func (e *EncodingError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("tokenizer: %s %s (model=%s): %v", e.Op, e.Encoding, e.Model, e.Err)
}

func (e *EncodingError) Unwrap() error {
	return e.Err
}
