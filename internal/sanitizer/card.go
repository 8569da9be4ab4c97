package sanitizer

import "regexp"

type CardSanitizer struct{}

var cardPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b\d{4}[-\s]?\d{4}[-\s]?\d{4}[-\s]?\d{4}\b`),
	regexp.MustCompile(`(?i)(card[_-]?number|номер[_-]?карты)\s*[:=]\s*["']?(\d{13,19})["']?`),
	regexp.MustCompile(`(?i)(cvv2?|cvc2?)\s*[:=]\s*["']?(\d{3,4})["']?`),
}

func (s *CardSanitizer) Sanitize(text string) string {
	for _, pattern := range cardPatterns {
		text = pattern.ReplaceAllString(text, `[FILTERED]`)
	}
	return text
}
