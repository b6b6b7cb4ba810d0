package models

// ChatRole is the author of a chat message.
type ChatRole string

const (
	RoleUser      ChatRole = "user"
	RoleAssistant ChatRole = "assistant"
)

// Valid reports whether r is one of the known chat roles.
func (r ChatRole) Valid() bool {
	return r == RoleUser || r == RoleAssistant
}

type ChatMessage struct {
	Role    ChatRole `json:"role"`
	Content string   `json:"content"`
}

// ChatRequest is the body accepted by the chat endpoint.
type ChatRequest struct {
	Destination string        `json:"destination" binding:"required"`
	Country     string        `json:"country"`
	Messages    []ChatMessage `json:"messages" binding:"required"`
}
