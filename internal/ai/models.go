package ai

import "encoding/json"

// Default model settings used when config leaves them blank.
const (
	DefaultClaudeModel = "claude-3-haiku-20240307"
	DefaultGeminiModel = "gemini-2.0-flash"
	DefaultMaxTokens   = 600
)

// FallbackReply is returned when the service answered but carried no usable text.
const FallbackReply = "Sorry, I had trouble generating a reply."

// messagesRequest is the Anthropic Messages API request body.
type messagesRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	System    string    `json:"system"`
	Messages  []message `json:"messages"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// messagesResponse keeps content raw: it is normally an array of blocks but
// older gateways return a plain string.
type messagesResponse struct {
	Content json.RawMessage `json:"content"`
}

type contentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// replyText extracts the first text block, then a bare string, then falls back.
func (r messagesResponse) replyText() string {
	if len(r.Content) == 0 {
		return FallbackReply
	}

	var blocks []contentBlock
	if err := json.Unmarshal(r.Content, &blocks); err == nil {
		if len(blocks) > 0 && blocks[0].Text != "" {
			return blocks[0].Text
		}
		return FallbackReply
	}

	var s string
	if err := json.Unmarshal(r.Content, &s); err == nil {
		return s
	}
	return FallbackReply
}
