package advisor

import "encoding/json"

// ChatMessage is one entry of a chat-completion conversation.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatCompletionRequest is the body POSTed to every advisor endpoint.
type ChatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []ChatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
	Stream      bool          `json:"stream"`
}

// chatCompletionResponse holds only what is read back. Pointers tell an absent
// field apart from an empty one.
type chatCompletionResponse struct {
	Choices []struct {
		Message *struct {
			Content *string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// parseStructured extracts choices[0].message.content. ok is false when body is
// not a JSON object or the field is missing.
func parseStructured(body []byte) (content string, ok bool) {
	var resp chatCompletionResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", false
	}
	if len(resp.Choices) == 0 {
		return "", false
	}
	msg := resp.Choices[0].Message
	if msg == nil || msg.Content == nil {
		return "", false
	}
	return *msg.Content, true
}

// ParseResponse returns the analysis text carried by body. Endpoints that answer
// with plain text instead of a chat-completion payload are used verbatim.
func ParseResponse(body []byte) string {
	if content, ok := parseStructured(body); ok {
		return content
	}
	return string(body)
}
