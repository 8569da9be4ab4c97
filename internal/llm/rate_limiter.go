package llm

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// RateLimiter — token bucket на два лимита: запросы в минуту и токены в час.
type RateLimiter struct {
	mu sync.Mutex

	requestsPerMinute int
	tokensPerHour     int

	requestBudget int
	tokenBudget   int
	lastRefill    time.Time
}

func NewRateLimiter(requestsPerMinute, tokensPerHour int) *RateLimiter {
	if requestsPerMinute <= 0 {
		requestsPerMinute = 60
	}
	if tokensPerHour <= 0 {
		tokensPerHour = 90000
	}

	return &RateLimiter{
		requestsPerMinute: requestsPerMinute,
		tokensPerHour:     tokensPerHour,
		requestBudget:     requestsPerMinute,
		tokenBudget:       tokensPerHour,
		lastRefill:        time.Now(),
	}
}

// refill пополняет оба бюджета пропорционально прошедшему времени.
func (rl *RateLimiter) refill() {
	now := time.Now()
	elapsed := now.Sub(rl.lastRefill)

	rl.requestBudget += int(elapsed.Minutes() * float64(rl.requestsPerMinute))
	if rl.requestBudget > rl.requestsPerMinute {
		rl.requestBudget = rl.requestsPerMinute
	}

	rl.tokenBudget += int(elapsed.Hours() * float64(rl.tokensPerHour))
	if rl.tokenBudget > rl.tokensPerHour {
		rl.tokenBudget = rl.tokensPerHour
	}

	rl.lastRefill = now
}

// AllowRequest проверяет, можно ли выполнить ещё один запрос.
func (rl *RateLimiter) AllowRequest(ctx context.Context) error {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	rl.refill()

	if rl.requestBudget <= 0 {
		return fmt.Errorf("превышен лимит запросов (%d RPM), повторите позже", rl.requestsPerMinute)
	}

	rl.requestBudget--
	return nil
}

// AllowTokens проверяет, хватает ли бюджета на указанное количество токенов.
func (rl *RateLimiter) AllowTokens(ctx context.Context, tokens int) error {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	rl.refill()

	if rl.tokenBudget < tokens {
		return fmt.Errorf("превышен лимит токенов (%d TPH): требуется %d, доступно %d",
			rl.tokensPerHour, tokens, rl.tokenBudget)
	}

	rl.tokenBudget -= tokens
	return nil
}

// ConsumeTokens списывает токены после запроса, когда известен фактический расход.
func (rl *RateLimiter) ConsumeTokens(tokens int) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	rl.tokenBudget -= tokens
	if rl.tokenBudget < 0 {
		rl.tokenBudget = 0
	}
}
