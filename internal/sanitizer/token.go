package sanitizer

import "regexp"

type TokenSanitizer struct{}

var tokenPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(token|токен)\s*[:=]\s*["']?([a-zA-Z0-9_.-]{20,})["']?`),
	regexp.MustCompile(`(?i)(api[_-]?key|api[_-]?token|secret[_-]?key|access[_-]?token)\s*[:=]\s*["']?([a-zA-Z0-9_.-]{20,})["']?`),
	regexp.MustCompile(`(?i)(bearer\s+)([a-zA-Z0-9_.-]{20,})`),
	regexp.MustCompile(`sk-[a-zA-Z0-9]{32,}`),
	regexp.MustCompile(`pk_[a-zA-Z0-9]{32,}`),
	regexp.MustCompile(`ghp_[a-zA-Z0-9]{30,}`),
	regexp.MustCompile(`eyJ[a-zA-Z0-9_-]{10,}\.[a-zA-Z0-9_-]{10,}\.[a-zA-Z0-9_-]{10,}`),
}

func (s *TokenSanitizer) Sanitize(text string) string {
	for _, pattern := range tokenPatterns {
		text = pattern.ReplaceAllString(text, `${1}[FILTERED]`)
	}
	return text
}
