package models

// Chat message roles in the provider-neutral format.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage is one turn of an LLM conversation in provider-neutral form.
// Providers translate roles into their own wire formats.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
