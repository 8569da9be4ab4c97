package sanitizer

import "regexp"

type PhoneSanitizer struct{}

var phonePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\+7\s?\(?\d{3}\)?\s?\d{3}[-.\s]?\d{2}[-.\s]?\d{2}`),
	regexp.MustCompile(`8\s?\(?\d{3}\)?\s?\d{3}[-.\s]?\d{2}[-.\s]?\d{2}`),
	regexp.MustCompile(`(?i)(phone|телефон|тел\.?)\s*[:=]\s*["']?([+\d\s\-()]{7,})["']?`),
}

func (s *PhoneSanitizer) Sanitize(text string) string {
	for _, pattern := range phonePatterns {
		text = pattern.ReplaceAllString(text, `[FILTERED_PHONE]`)
	}
	return text
}
