package models

// Chat roles accepted in conversation history.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage is one prior turn of a conversation. History is owned by the
// caller and passed by value into each agent invocation; the agent never
// mutates or persists it.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
