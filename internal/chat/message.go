// Package chat relays companion conversations to an OpenAI-compatible
// completion API.
package chat

// Message roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// Message is one turn of the conversation as sent by the client.
type Message struct {
	ID        string `json:"id"`
	Role      string `json:"role"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp,omitempty"`
	IsImage   bool   `json:"isImage,omitempty"`
	ImageURL  string `json:"imageUrl,omitempty"`
}

// Reply is the assistant turn returned to the client.
type Reply struct {
	ID        string `json:"id"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
	IsImage   bool   `json:"isImage,omitempty"`
	ImageURL  string `json:"imageUrl,omitempty"`
}
