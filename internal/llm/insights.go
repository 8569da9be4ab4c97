package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// maxExcerptChars ограничивает размер фрагмента лога, уходящего в модель.
const maxExcerptChars = 8000

const insightsSystemPrompt = `Ты — помощник QA-инженера. Тебе дают сводку и фрагмент лога приложения.
Кратко опиши: 1) вероятные первопричины ошибок, 2) на какие строки смотреть в первую очередь,
3) что проверить или исправить. Отвечай по-русски, без преамбулы, максимум 10 пунктов.`

// LogInsights отправляет сводку и санитизированный фрагмент лога в модель
// и возвращает её текстовый разбор. Один stateless запрос без повторов.
func (c *Client) LogInsights(ctx context.Context, summary, excerpt string) (string, error) {
	excerpt = tailExcerpt(excerpt, maxExcerptChars)
	excerpt = c.sanitizer.Sanitize(excerpt)

	req := openai.ChatCompletionRequest{
		Model:     c.model,
		MaxTokens: c.maxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: insightsSystemPrompt},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: fmt.Sprintf("Сводка:\n%s\nФрагмент лога:\n%s", summary, excerpt),
			},
		},
	}

	resp, err := c.createChatCompletion(ctx, req)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("пустой ответ модели")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// tailExcerpt возвращает хвост текста: конец лога обычно информативнее начала.
func tailExcerpt(text string, limit int) string {
	if len(text) <= limit {
		return text
	}
	tail := text[len(text)-limit:]
	if i := strings.IndexByte(tail, '\n'); i >= 0 && i < len(tail)-1 {
		tail = tail[i+1:]
	}
	return tail
}
