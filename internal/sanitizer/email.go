package sanitizer

import "regexp"

type EmailSanitizer struct{}

var emailPattern = regexp.MustCompile(`\b[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}\b`)

func (s *EmailSanitizer) Sanitize(text string) string {
	return emailPattern.ReplaceAllString(text, `[FILTERED_EMAIL]`)
}
