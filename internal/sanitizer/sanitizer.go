// Package sanitizer вычищает секреты и персональные данные из фрагментов
// логов перед отправкой во внешнюю LLM. Правила применяются цепочкой.
package sanitizer

type DataSanitizer struct {
	rules []SanitizerRule
}

type SanitizerRule interface {
	Sanitize(text string) string
}

func New() *DataSanitizer {
	return &DataSanitizer{
		rules: []SanitizerRule{
			&PasswordSanitizer{},
			&TokenSanitizer{},
			&CookieSanitizer{},
			&CardSanitizer{},
			&EmailSanitizer{},
			&PhoneSanitizer{},
		},
	}
}

func (s *DataSanitizer) Sanitize(text string) string {
	if text == "" {
		return text
	}

	result := text
	for _, rule := range s.rules {
		result = rule.Sanitize(result)
	}

	return result
}
