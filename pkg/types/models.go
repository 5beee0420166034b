package types

// ObjectModel and ObjectList tag the model listing payloads
const (
	ObjectModel = "model"
	ObjectList  = "list"
)

// Model describes one model the server answers for
type Model struct {
	ID       string `json:"id"`
	Object   string `json:"object"`
	Created  int64  `json:"created"`
	OwnedBy  string `json:"owned_by"`
	Encoding string `json:"encoding"`
}

// ModelList is the payload of GET /v1/models
type ModelList struct {
	Object string  `json:"object"`
	Data   []Model `json:"data"`
}

// TokenizeRequest is the body of POST /tokenize. Messages, when present,
// are counted with chat framing instead of the prompt.
type TokenizeRequest struct {
	Model    string        `json:"model"`
	Prompt   Prompt        `json:"prompt,omitempty"`
	Messages []ChatMessage `json:"messages,omitempty"`
}

// ChatMessage is a role/content pair
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// TokenizeResponse reports the encoded prompt
type TokenizeResponse struct {
	Model    string `json:"model"`
	Encoding string `json:"encoding"`
	Count    int    `json:"count"`
	Tokens   []int  `json:"tokens,omitempty"`
	MaxLen   int    `json:"max_model_len"`
}
