package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/VighneshDev1411/mockllm/internal/tokenizer"
	"github.com/VighneshDev1411/mockllm/pkg/types"
	"github.com/VighneshDev1411/mockllm/pkg/utils"
)

// TokenizeHandlers serves token counting for clients that budget prompts
type TokenizeHandlers struct {
	logger *utils.Logger
}

// NewTokenizeHandlers creates tokenize handlers
func NewTokenizeHandlers(logger *utils.Logger) *TokenizeHandlers {
	return &TokenizeHandlers{logger: logger}
}

// Tokenize handles POST /tokenize. Chat messages are counted with framing
// overhead; a plain prompt also returns its token ids.
func (h *TokenizeHandlers) Tokenize(c *gin.Context) {
	var req types.TokenizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.NewInvalidRequest(invalidBodyMessage, ""))
		return
	}
	if strings.TrimSpace(req.Model) == "" {
		c.JSON(http.StatusBadRequest, types.NewInvalidRequest("model field must not be empty", "model"))
		return
	}

	counter, err := tokenizer.New(req.Model)
	if err != nil {
		var encErr *tokenizer.EncodingError
		if errors.As(err, &encErr) {
			h.logger.Error("Tokenizer unavailable", "model", req.Model, "encoding", string(encErr.Encoding), "error", err)
		}
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{Error: types.ErrorDetail{
			Message: "Tokenizer unavailable for model " + req.Model,
			Type:    "server_error",
		}})
		return
	}

	resp := types.TokenizeResponse{
		Model:    req.Model,
		Encoding: string(counter.Encoding()),
		MaxLen:   counter.ContextLength(),
	}
	if len(req.Messages) > 0 {
		resp.Count = counter.CountMessages(req.Messages)
	} else {
		resp.Tokens = counter.Encode(string(req.Prompt))
		resp.Count = len(resp.Tokens)
	}

	c.JSON(http.StatusOK, resp)
}
