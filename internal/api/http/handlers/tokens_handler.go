package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/companion-service/internal/api/dto"
	"github.com/spec-kit/companion-service/internal/auth"
	"github.com/spec-kit/companion-service/internal/service"
)

// TokensHandler reports token balances.
type TokensHandler struct {
	purchases *service.PurchaseService
	logger    *zap.Logger
}

// NewTokensHandler constructs handler.
func NewTokensHandler(purchases *service.PurchaseService, logger *zap.Logger) *TokensHandler {
	return &TokensHandler{purchases: purchases, logger: logger.Named("tokens_handler")}
}

// Balance handles GET /api/user-token-balance?userId=. Without the query
// parameter the session user is used.
func (h *TokensHandler) Balance(c *fiber.Ctx) error {
	userID := c.Query("userId")
	if userID == "" {
		principal, ok := auth.PrincipalFromContext(c)
		if !ok {
			return c.Status(http.StatusUnauthorized).JSON(dto.BalanceResponse{Error: "Unauthorized"})
		}
		userID = principal.UserID
	}

	balance, err := h.purchases.Balance(c.UserContext(), userID)
	if err != nil {
		h.logger.Error("Error fetching token balance", zap.String("user_id", userID), zap.Error(err))
		return c.Status(http.StatusInternalServerError).JSON(dto.BalanceResponse{Error: "Failed to fetch token balance"})
	}
	return c.JSON(dto.BalanceResponse{Success: true, Balance: &balance})
}
