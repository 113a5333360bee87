// README: Base handler utilities (JSON helpers, error mapping).
package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"chichat/internal/ai"
	"chichat/internal/service"
)

const (
	msgInvalidJSON        = "invalid json"
	msgMissingMessage     = "Missing 'message' in request body."
	msgMissingCredentials = "LLM API key is not set on the server."
	msgGenerationError    = "Generation service error"
	msgInternalError      = "Server error processing request."
)

type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}

func writeChatError(c *gin.Context, err error) {
	var upErr *ai.UpstreamError
	switch {
	case errors.Is(err, service.ErrMissingMessage):
		writeError(c, http.StatusBadRequest, msgMissingMessage)
	case errors.Is(err, service.ErrMissingCredentials):
		writeError(c, http.StatusInternalServerError, msgMissingCredentials)
	case errors.As(err, &upErr):
		writeJSON(c, http.StatusInternalServerError, errorResponse{Error: msgGenerationError, Details: upErr.Body})
	default:
		log.Printf("chat: %v", err)
		writeError(c, http.StatusInternalServerError, msgInternalError)
	}
}
