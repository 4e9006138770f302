package errorutil

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
)

func TestToDomainError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantCode   string
		wantStatus int
	}{
		{"domain error passes through", NewForbidden("nope"), "FORBIDDEN", http.StatusForbidden},
		{"wrapped domain error", fmt.Errorf("ctx: %w", NewUnauthorized("x")), "UNAUTHORIZED", http.StatusUnauthorized},
		{"fiber error", fiber.NewError(http.StatusBadRequest, "bad"), "VALIDATION_FAILED", http.StatusBadRequest},
		{"no rows", pgx.ErrNoRows, "NOT_FOUND", http.StatusNotFound},
		{"deadline", fmt.Errorf("query: %w", context.DeadlineExceeded), "TIMEOUT", http.StatusGatewayTimeout},
		{"generic", errors.New("boom"), "INTERNAL_ERROR", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			de := ToDomainError(tt.err)
			assert.Equal(t, tt.wantCode, de.Code)
			assert.Equal(t, tt.wantStatus, de.HTTPStatus)
		})
	}
}

func TestNewUpstreamError_SurfacesRawMessage(t *testing.T) {
	err := NewUpstreamError(errors.New("relation \"plan_features\" does not exist"))
	de := ToDomainError(err)
	assert.Equal(t, `relation "plan_features" does not exist`, de.Message)
	assert.Equal(t, http.StatusInternalServerError, de.HTTPStatus)
}

func TestMapError_Nil(t *testing.T) {
	assert.NoError(t, MapError(nil))
	assert.Nil(t, ToDomainError(nil))
}
