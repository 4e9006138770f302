package chat

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"

	"github.com/spec-kit/companion-service/internal/repository"
)

// APIKeySetting is the settings row that overrides the configured API key.
const (
	APIKeySetting = "novita_api_key"
	DemoAPIKey    = "demo-api-key"
)

var ErrNoChoices = errors.New("completion returned no choices")

// ClientConfig configures the completion API client.
type ClientConfig struct {
	APIKey        string
	BaseURL       string
	Timeout       time.Duration
	MaxConcurrent int64
}

// Client calls an OpenAI-compatible chat completion endpoint behind a
// circuit breaker.
type Client struct {
	client  openai.Client
	breaker *gobreaker.CircuitBreaker
	sem     *semaphore.Weighted
	logger  *zap.Logger
}

// NewClient creates the completion client.
func NewClient(cfg ClientConfig, logger *zap.Logger) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}
	if cfg.MaxConcurrent <= 0 {
		cfg.MaxConcurrent = 16
	}
	logger = logger.Named("chat_client")

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithRequestTimeout(cfg.Timeout),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	settings := gobreaker.Settings{
		Name:        "completions",
		MaxRequests: 1,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 10 && failureRatio >= 0.6
		},
		OnStateChange: func(_ string, from gobreaker.State, to gobreaker.State) {
			logger.Warn("Circuit breaker state changed",
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
	}

	return &Client{
		client:  openai.NewClient(opts...),
		breaker: gobreaker.NewCircuitBreaker(settings),
		sem:     semaphore.NewWeighted(cfg.MaxConcurrent),
		logger:  logger,
	}
}

// Complete implements Completer.
func (c *Client) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	params := openai.ChatCompletionNewParams{
		Messages:    toParams(req.Messages),
		Model:       req.Model,
		Temperature: openai.Float(req.Temperature),
		MaxTokens:   openai.Int(req.MaxTokens),
	}

	if err := c.sem.Acquire(ctx, 1); err != nil {
		return "", fmt.Errorf("failed to acquire semaphore: %w", err)
	}
	defer c.sem.Release(1)

	result, err := c.breaker.Execute(func() (any, error) {
		return c.client.Chat.Completions.New(ctx, params)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) {
			c.logger.Warn("Completion skipped, circuit breaker open")
		}
		return "", err
	}

	resp, ok := result.(*openai.ChatCompletion)
	if !ok || resp == nil || len(resp.Choices) == 0 {
		return "", ErrNoChoices
	}
	return resp.Choices[0].Message.Content, nil
}

func toParams(messages []Message) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages))
	for _, m := range messages {
		switch m.Role {
		case RoleSystem:
			out = append(out, openai.SystemMessage(m.Content))
		case RoleAssistant:
			out = append(out, openai.AssistantMessage(m.Content))
		default:
			out = append(out, openai.UserMessage(m.Content))
		}
	}
	return out
}

// ResolveAPIKey picks the API key: the stored setting, then envKey, then the
// demo key. A settings lookup failure is logged and skipped.
func ResolveAPIKey(ctx context.Context, settings repository.SettingRepository, envKey string, logger *zap.Logger) string {
	if settings != nil {
		key, err := settings.Get(ctx, APIKeySetting)
		if err != nil {
			logger.Warn("Could not fetch API key from database", zap.Error(err))
		} else if key != "" {
			return key
		}
	}
	if envKey != "" {
		return envKey
	}
	return DemoAPIKey
}
