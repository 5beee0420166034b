package utils

import "github.com/google/uuid"

// CompletionIDPrefix prefixes every completion id handed out by the server.
const CompletionIDPrefix = "cmpl-mock-id-"

// NewCompletionID returns a fresh completion identifier.
func NewCompletionID() string {
	return CompletionIDPrefix + uuid.New().String()
}
