package dto

import "github.com/spec-kit/companion-service/internal/chat"

// ChatRequest is a conversation to continue.
type ChatRequest struct {
	Messages     []chat.Message `json:"messages"`
	SystemPrompt string         `json:"systemPrompt"`
}
