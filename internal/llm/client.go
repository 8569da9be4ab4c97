// Package llm предоставляет интеграцию с OpenAI для генерации инсайтов по логам.
// Включает rate limiting и санитизацию данных перед отправкой.
package llm

import (
	"context"
	"errors"
	"fmt"

	"qakit/internal/sanitizer"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

var ErrNoAPIKey = errors.New("OPENAI_API_KEY не задан, инсайты недоступны")

type Client struct {
	client      *openai.Client
	model       string
	maxTokens   int
	log         *zap.Logger
	sanitizer   *sanitizer.DataSanitizer
	rateLimiter *RateLimiter
}

func NewClient(apiKey, model string, maxTokens int, log *zap.Logger) *Client {
	return NewClientWithRateLimit(apiKey, model, maxTokens, log, 60, 90000)
}

func NewClientWithRateLimit(apiKey, model string, maxTokens int, log *zap.Logger, requestsPerMinute, tokensPerHour int) *Client {
	return &Client{
		client:      openai.NewClient(apiKey),
		model:       model,
		maxTokens:   maxTokens,
		log:         log,
		sanitizer:   sanitizer.New(),
		rateLimiter: NewRateLimiter(requestsPerMinute, tokensPerHour),
	}
}

// createChatCompletion выполняет запрос с проверкой rate limit.
func (c *Client) createChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	if err := c.rateLimiter.AllowRequest(ctx); err != nil {
		return openai.ChatCompletionResponse{}, err
	}

	// Грубая оценка: ~4 символа на токен, плюс токены ответа.
	estimatedTokens := req.MaxTokens
	for _, msg := range req.Messages {
		estimatedTokens += len(msg.Content) / 4
	}

	if err := c.rateLimiter.AllowTokens(ctx, estimatedTokens); err != nil {
		return openai.ChatCompletionResponse{}, err
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return resp, fmt.Errorf("запрос к OpenAI: %w", err)
	}

	// Корректируем бюджет по фактическому расходу.
	if resp.Usage.TotalTokens > estimatedTokens {
		c.rateLimiter.ConsumeTokens(resp.Usage.TotalTokens - estimatedTokens)
	}

	c.log.Debug("LLM запрос выполнен",
		zap.String("model", c.model),
		zap.Int("tokens", resp.Usage.TotalTokens),
	)
	return resp, nil
}
