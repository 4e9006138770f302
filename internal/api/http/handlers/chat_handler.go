package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/companion-service/internal/api/dto"
	"github.com/spec-kit/companion-service/internal/chat"
)

// ChatHandler relays conversations to the completion API.
type ChatHandler struct {
	relay  *chat.Relay
	logger *zap.Logger
}

// NewChatHandler constructs handler.
func NewChatHandler(relay *chat.Relay, logger *zap.Logger) *ChatHandler {
	return &ChatHandler{relay: relay, logger: logger.Named("chat_handler")}
}

// Send handles POST /api/chat. Failures surface as a canned reply with 200.
func (h *ChatHandler) Send(c *fiber.Ctx) error {
	var req dto.ChatRequest
	if err := c.BodyParser(&req); err != nil {
		h.logger.Warn("invalid chat payload", zap.Error(err))
	}
	return c.JSON(h.relay.Send(c.UserContext(), req.Messages, req.SystemPrompt))
}
